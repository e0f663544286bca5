package app

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/inkwell/internal/editor"
	"github.com/marcus/inkwell/internal/note"
	"github.com/marcus/inkwell/internal/styles"
	"github.com/marcus/inkwell/internal/ui"
	"github.com/marcus/inkwell/internal/vault"
)

const (
	cardWidth   = 30
	snippetLen  = 80
	listRowWide = 100
)

// View renders the active screen with any modal composited on top.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var base string
	if m.screen == ScreenEditor {
		base = m.renderEditor()
	} else {
		base = m.renderList()
	}

	if modal := m.modalView(); modal != "" {
		return ui.Overlay(base, modal, m.width, m.height)
	}
	return base
}

// --- list screen ---

func (m Model) renderList() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString("\n" + styles.Muted.Render(m.emptyText()) + "\n")
	} else if m.gridLayout {
		b.WriteString(m.renderGrid())
	} else {
		b.WriteString(m.renderRows())
	}

	content := b.String()
	footer := m.renderFooter()
	gap := m.height - lipgloss.Height(content) - lipgloss.Height(footer)
	if gap > 0 {
		content += strings.Repeat("\n", gap)
	}
	return content + footer
}

func (m Model) renderHeader() string {
	logo := styles.Logo.Render("✒ inkwell")
	label := styles.Title.Render(m.view.Label(m.store.Folders()))
	if m.view.Kind == note.ViewVault {
		label = styles.Title.Render("🔓 Secret")
	}

	parts := []string{logo, "  ", label}
	if m.sel.Active() {
		parts = append(parts, "  ", styles.KeyHint.Render(fmt.Sprintf("%d selected", m.sel.Count())))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Center, parts...)

	if m.searching || m.query != "" {
		search := m.searchInput.View()
		pad := m.width - ansi.StringWidth(left) - ansi.StringWidth(search) - 2
		if pad < 1 {
			pad = 1
		}
		return left + strings.Repeat(" ", pad) + search
	}
	count := styles.Muted.Render(fmt.Sprintf("%d notes", len(m.visible)))
	pad := m.width - ansi.StringWidth(left) - ansi.StringWidth(count) - 2
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + count
}

func (m Model) emptyText() string {
	if m.query != "" {
		return fmt.Sprintf("no notes match %q", m.query)
	}
	return "no notes here yet. press n to write one."
}

// gridColumns is how many cards fit in one row.
func (m *Model) gridColumns() int {
	cols := m.width / (cardWidth + 2)
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m Model) renderGrid() string {
	cols := m.gridColumns()
	var rows []string
	for start := 0; start < len(m.visible); start += cols {
		end := min(start+cols, len(m.visible))
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(m.visible[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCard(n note.Note, focused bool) string {
	inner := cardWidth - 2

	title := noteTitle(n)
	if n.Favorite {
		title = "★ " + title
	}
	// Highlighting inserts escape sequences, so truncate width-aware.
	titleLine := ansi.Truncate(styles.CardTitle.Render(m.highlight(title)), inner, "…")

	snippet := m.filter.Plain(n)
	snippet = strings.ReplaceAll(snippet, "\n", " ")
	line1 := styles.CardSnippet.Render(runewidth.Truncate(snippet, inner, "…"))

	meta := n.UpdatedAt.Format("Jan 2")
	metaLine := lipgloss.NewStyle().Foreground(styles.CategoryColor(n.Category)).Render("● ") +
		styles.CardMeta.Render(runewidth.Truncate(meta, inner-2, "…"))
	if m.sel.Selected(n.ID) {
		metaLine = styles.CardCheck.Render("✓ ") + metaLine
	}

	style := styles.CardNormal
	if focused {
		style = styles.CardSelected
	}
	if bg, ok := styles.PaperColorValues[n.PaperColor]; ok && n.PaperColor != "default" {
		style = style.Background(bg)
	}
	return style.Width(cardWidth).Render(titleLine + "\n" + line1 + "\n" + metaLine)
}

func (m Model) renderRows() string {
	var b strings.Builder
	for i, n := range m.visible {
		b.WriteString(m.renderRow(n, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(n note.Note, focused bool) string {
	cursor := "  "
	if focused {
		cursor = styles.Logo.Render("▸ ")
	}
	check := "  "
	if m.sel.Selected(n.ID) {
		check = styles.CardCheck.Render("✓ ")
	}

	title := noteTitle(n)
	star := "  "
	if n.Favorite {
		star = "★ "
	}

	width := min(m.width-4, listRowWide)
	titleCol := m.highlight(runewidth.FillRight(runewidth.Truncate(title, 32, "…"), 32))
	snippet := strings.ReplaceAll(m.filter.Plain(n), "\n", " ")
	snippetCol := runewidth.Truncate(snippet, max(8, width-52), "…")

	return cursor + check + star +
		lipgloss.NewStyle().Foreground(styles.CategoryColor(n.Category)).Render("● ") +
		titleCol + "  " +
		styles.CardSnippet.Render(snippetCol) + "  " +
		styles.CardMeta.Render(n.UpdatedAt.Format("Jan 2 15:04"))
}

// noteTitle is the list display title: code notes read like a file
// name with their language as the extension.
func noteTitle(n note.Note) string {
	title := n.Title
	if title == "" {
		title = "Untitled"
	}
	if lang := n.Body.Language(); lang != "" {
		title += "." + lang
	}
	return title
}

// highlight wraps the first case-insensitive query match in the
// search highlight style.
func (m Model) highlight(text string) string {
	if m.query == "" {
		return text
	}
	start, end := foldIndex(text, m.query)
	if start < 0 {
		return text
	}
	return text[:start] + styles.Highlight.Render(text[start:end]) + text[end:]
}

// foldIndex finds the first case-insensitive match of query in text,
// comparing rune by rune so the byte offsets always land on rune
// boundaries of the original string. Lowering the whole string first
// can change byte lengths (İ) and then offsets into the lowered copy
// may split runes of the original.
func foldIndex(text, query string) (start, end int) {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return -1, -1
	}
	rs := []rune(text)
	for i := 0; i+len(q) <= len(rs); i++ {
		match := true
		for j, qr := range q {
			if unicode.ToLower(rs[i+j]) != qr {
				match = false
				break
			}
		}
		if match {
			start = len(string(rs[:i]))
			return start, start + len(string(rs[i:i+len(q)]))
		}
	}
	return -1, -1
}

func (m Model) renderFooter() string {
	hints := "n new · enter open · / search · tab views · v select · d delete · s vault · q quit"
	if m.sel.Active() {
		hints = "space toggle · d delete · m move · esc done"
	}
	bar := styles.StatusBar.Width(m.width).Render(runewidth.Truncate(hints, m.width-2, "…"))
	if toast := m.renderToast(); toast != "" {
		return toast + "\n" + bar
	}
	return bar
}

func (m Model) renderToast() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusIsError {
		return styles.ToastError.Render(m.statusMsg)
	}
	return styles.ToastSuccess.Render(m.statusMsg)
}

// --- editor screen ---

func (m Model) renderEditor() string {
	if m.session == nil {
		return ""
	}

	var title string
	if m.editingTitle {
		title = m.titleInput.View()
	} else {
		t := m.session.Title()
		if t == "" {
			t = "Untitled"
		}
		title = styles.Title.Render(t)
	}
	cat := lipgloss.NewStyle().
		Foreground(styles.CategoryColor(m.session.Note().Category)).
		Render("● " + string(m.session.Note().Category))
	header := title + "  " + cat

	var body string
	if m.preview {
		body = m.renderPreview()
	} else {
		body = m.body.View()
	}

	status := m.renderEditorStatus()
	gap := m.height - lipgloss.Height(header) - lipgloss.Height(body) - lipgloss.Height(status) - 1
	if gap < 0 {
		gap = 0
	}
	return header + "\n" + body + strings.Repeat("\n", gap+1) + status
}

func (m Model) renderPreview() string {
	out := ""
	if m.attachment != nil && m.attachment.IsImage() {
		img, err := ui.RenderImage(m.attachment.Path)
		if err != nil {
			img = styles.Muted.Render("could not preview " + m.attachment.Name)
		}
		out = img + "\n"
	}
	if m.session.Mode() == editor.ModeCode {
		return out + ui.RenderCode(m.session.Content(), m.session.Language())
	}
	return out + ui.RenderMarkdown(m.session.Content(), m.width-4)
}

func (m Model) renderEditorStatus() string {
	chars, words := m.session.Stats()
	parts := []string{
		fmt.Sprintf("%d chars", chars),
		fmt.Sprintf("%d words", words),
		fmt.Sprintf("%d min read", m.session.ReadingMinutes()),
	}
	if m.session.Mode() == editor.ModeCode {
		parts = append(parts, m.session.Language())
	} else {
		parts = append(parts, "rich text")
	}
	if m.session.Dirty() {
		parts = append(parts, "●")
	}
	if m.attachment != nil {
		parts = append(parts, "📎 "+m.attachment.Name)
	}
	if m.speechActive {
		parts = append(parts, "🎙 dictating")
	}
	left := strings.Join(parts, " · ")

	hints := "esc close · ^s save · ^p preview · ^a assistant · ^t title"
	pad := m.width - runewidth.StringWidth(left) - runewidth.StringWidth(hints) - 2
	if pad < 1 {
		pad = 1
	}
	bar := styles.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", pad) + hints)
	if toast := m.renderToast(); toast != "" {
		return toast + "\n" + bar
	}
	return bar
}

// --- modals ---

func (m Model) modalView() string {
	switch m.modal {
	case ModalConfirm:
		return m.confirm.View()
	case ModalPassword:
		title := "Unlock vault"
		hint := "enter submit · esc cancel"
		if m.vault.Mode() == vault.ModeSet {
			title = "Set vault password"
			hint = "at least 4 characters · enter submit · esc cancel"
		}
		return ui.InputFrame(title, m.passwordInput.View(), hint)
	case ModalNewFolder:
		return ui.InputFrame("New folder", m.folderInput.View(), "enter create · esc cancel")
	case ModalPrompt:
		title := "Ask the assistant"
		if m.promptFor == promptForAttach {
			title = "Attach a file"
		}
		return ui.InputFrame(title, m.promptInput.View(), "enter submit · esc cancel")
	case ModalPicker:
		return m.picker.View()
	case ModalNotice:
		return styles.PanelActive.Width(ui.ModalWidth).Render(
			styles.Title.Render("Assistant") + "\n\n" + m.notice + "\n\n" +
				styles.Muted.Render("any key to dismiss"))
	}
	return ""
}
