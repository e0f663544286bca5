// Package ui provides shared widgets for the TUI: modal overlays,
// dialogs, pickers, and content preview renderers.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// dimStyle grays out background content behind a modal. Existing ANSI
// codes are stripped first; SGR faint does not combine reliably with
// colored text in most terminals.
var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// Overlay centers modal over background, dimming everything the modal
// does not cover.
func Overlay(background, modal string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")

	modalWidth := 0
	for _, line := range modalLines {
		if w := ansi.StringWidth(line); w > modalWidth {
			modalWidth = w
		}
	}
	startX := (width - modalWidth) / 2
	startY := (height - len(modalLines)) / 2
	if startX < 0 {
		startX = 0
	}
	if startY < 0 {
		startY = 0
	}

	rows := make([]string, 0, height)
	for y := 0; y < height; y++ {
		bgLine := ""
		if y < len(bgLines) {
			bgLine = bgLines[y]
		}
		i := y - startY
		if i < 0 || i >= len(modalLines) {
			rows = append(rows, dimStyle.Render(ansi.Strip(bgLine)))
			continue
		}
		rows = append(rows, overlayRow(bgLine, modalLines[i], startX, modalWidth, width))
	}
	return strings.Join(rows, "\n")
}

// overlayRow composites one modal line onto one background line:
// dimmed left segment, the modal line, dimmed right segment.
func overlayRow(bgLine, modalLine string, startX, modalWidth, totalWidth int) string {
	stripped := ansi.Strip(bgLine)
	bgWidth := ansi.StringWidth(stripped)

	var b strings.Builder
	if startX > 0 {
		left := ansi.Truncate(stripped, startX, "")
		b.WriteString(dimStyle.Render(left))
		if w := ansi.StringWidth(left); w < startX {
			b.WriteString(strings.Repeat(" ", startX-w))
		}
	}
	b.WriteString(modalLine)
	if right := startX + modalWidth; right < totalWidth && bgWidth > right {
		b.WriteString(dimStyle.Render(ansi.Cut(stripped, right, bgWidth)))
	}
	return b.String()
}
