package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/inkwell/internal/styles"
)

// PickerItem is one selectable row in a Picker.
type PickerItem struct {
	Label string
	Value string
}

// Picker is a minimal vertical list modal: move, pick, dismiss. Used
// for folders, categories, languages, paper presets, and the
// assistant menu.
type Picker struct {
	Title  string
	Items  []PickerItem
	Cursor int
}

func NewPicker(title string, items []PickerItem) Picker {
	return Picker{Title: title, Items: items}
}

func (p *Picker) Up() {
	if p.Cursor > 0 {
		p.Cursor--
	}
}

func (p *Picker) Down() {
	if p.Cursor < len(p.Items)-1 {
		p.Cursor++
	}
}

// Selected returns the item under the cursor.
func (p *Picker) Selected() (PickerItem, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return PickerItem{}, false
	}
	return p.Items[p.Cursor], true
}

func (p Picker) View() string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderActive).
		Padding(1, 2).
		Width(ModalWidth)

	selected := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 1)
	normal := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Padding(0, 1)

	rows := []string{styles.Title.Render(p.Title), ""}
	for i, item := range p.Items {
		if i == p.Cursor {
			rows = append(rows, selected.Render("> "+item.Label))
		} else {
			rows = append(rows, normal.Render("  "+item.Label))
		}
	}
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
