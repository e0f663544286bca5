// Package msg defines messages shared across screens.
package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultToastDuration is how long a toast stays up unless overridden.
const DefaultToastDuration = 3 * time.Second

// ToastMsg displays a temporary status message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool // true for error toasts (red), false for success (green)
}

// ShowToast returns a command to show a toast message.
func ShowToast(message string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: message, Duration: DefaultToastDuration}
	}
}

// ShowError returns a command to show an error toast.
func ShowError(message string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: message, Duration: DefaultToastDuration, IsError: true}
	}
}
