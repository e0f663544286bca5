package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/inkwell/internal/styles"
)

// ModalWidth is the default dialog width.
const ModalWidth = 50

// ConfirmDialog is a yes/no confirmation modal. Destructive actions
// set Danger so the border and confirm button render in the error
// color.
type ConfirmDialog struct {
	Title   string
	Message string
	Danger  bool
	// ConfirmFocused tracks which button the cursor is on.
	ConfirmFocused bool
}

// NewConfirmDialog creates a dialog with the confirm button focused.
func NewConfirmDialog(title, message string, danger bool) ConfirmDialog {
	return ConfirmDialog{Title: title, Message: message, Danger: danger, ConfirmFocused: true}
}

// ToggleFocus moves between the confirm and cancel buttons.
func (d *ConfirmDialog) ToggleFocus() {
	d.ConfirmFocused = !d.ConfirmFocused
}

// View renders the dialog.
func (d ConfirmDialog) View() string {
	borderColor := styles.BorderActive
	confirmBg := styles.Primary
	if d.Danger {
		borderColor = styles.Error
		confirmBg = styles.Error
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(ModalWidth)

	focused := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(confirmBg).
		Padding(0, 2)
	blurred := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Background(styles.BgTertiary).
		Padding(0, 2)

	confirm := blurred.Render("Confirm")
	cancel := blurred.Render("Cancel")
	if d.ConfirmFocused {
		confirm = focused.Render("Confirm")
	} else {
		cancel = focused.Render("Cancel")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel)

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(d.Title),
		"",
		d.Message,
		"",
		buttons,
	)
	return frame.Render(body)
}

// InputFrame wraps a text-input view in a titled modal frame. The
// input widget itself is owned and rendered by the caller.
func InputFrame(title, inputView, hint string) string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderActive).
		Padding(1, 2).
		Width(ModalWidth)

	parts := []string{styles.Title.Render(title), "", inputView}
	if hint != "" {
		parts = append(parts, "", styles.Muted.Render(hint))
	}
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
