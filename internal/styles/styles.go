// Package styles holds the shared lipgloss palette and styles.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/inkwell/internal/note"
)

// Color palette - default dark theme
var (
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Accent    = lipgloss.Color("#F59E0B") // Amber

	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red

	TextPrimary   = lipgloss.Color("#F9FAFB")
	TextSecondary = lipgloss.Color("#9CA3AF")
	TextMuted     = lipgloss.Color("#6B7280")

	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#7C3AED")
)

// CategoryColors maps each note category to its accent color.
var CategoryColors = map[note.Category]lipgloss.Color{
	note.CategoryPersonal: lipgloss.Color("#3B82F6"),
	note.CategoryWork:     lipgloss.Color("#10B981"),
	note.CategoryIdeas:    lipgloss.Color("#F59E0B"),
	note.CategoryJournal:  lipgloss.Color("#EC4899"),
	note.CategorySecret:   lipgloss.Color("#EF4444"),
}

// CategoryColor returns the accent for a category, falling back to the
// primary color.
func CategoryColor(c note.Category) lipgloss.Color {
	if col, ok := CategoryColors[c]; ok {
		return col
	}
	return Primary
}

// PaperColorValues maps the paper color presets to terminal colors
// used when rendering a note card.
var PaperColorValues = map[string]lipgloss.Color{
	"default":  BgSecondary,
	"cream":    lipgloss.Color("#423d2e"),
	"mint":     lipgloss.Color("#2e4238"),
	"sky":      lipgloss.Color("#2e3a42"),
	"lavender": lipgloss.Color("#3a2e42"),
	"rose":     lipgloss.Color("#422e35"),
}

// Card styles for the note list.
var (
	CardNormal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderNormal).
			Padding(0, 1)

	CardSelected = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderActive).
			Padding(0, 1)

	CardTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimary)

	CardSnippet = lipgloss.NewStyle().
			Foreground(TextSecondary)

	CardMeta = lipgloss.NewStyle().
			Foreground(TextMuted)

	CardCheck = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)
)

// Panel styles
var (
	PanelActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderActive).
			Padding(0, 1)

	PanelInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderNormal).
			Padding(0, 1)
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Highlight = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(Accent)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	Logo = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
)

// Status bar and toast styles
var (
	StatusBar = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Background(BgSecondary).
			Padding(0, 1)

	ToastSuccess = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(Success).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Error).
			Padding(0, 1)
)
