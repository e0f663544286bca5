package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestOverlayCentersModal(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat("aaaaaaaaaa\n", 5), "\n")
	out := Overlay(bg, "MODAL", 10, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("height = %d, want 5", len(lines))
	}
	mid := ansi.Strip(lines[2])
	if !strings.Contains(mid, "MODAL") {
		t.Errorf("middle row = %q, modal missing", mid)
	}
	// Background shows on both sides of the centered modal.
	if !strings.HasPrefix(mid, "aa") || !strings.HasSuffix(mid, "aaa") {
		t.Errorf("middle row = %q, background not preserved around modal", mid)
	}
}

func TestOverlayKeepsBackgroundText(t *testing.T) {
	out := Overlay("colored\nrows\nhere", "X", 7, 3)
	lines := strings.Split(out, "\n")
	if ansi.Strip(lines[0]) != "colored" {
		t.Errorf("top row text = %q", ansi.Strip(lines[0]))
	}
	if !strings.Contains(ansi.Strip(lines[1]), "X") {
		t.Errorf("modal row = %q", ansi.Strip(lines[1]))
	}
}

func TestPickerNavigation(t *testing.T) {
	p := NewPicker("Move to", []PickerItem{
		{Label: "All Notes", Value: ""},
		{Label: "Work", Value: "f1"},
	})
	p.Up() // clamped at the top
	if p.Cursor != 0 {
		t.Errorf("cursor = %d after Up at top", p.Cursor)
	}
	p.Down()
	p.Down() // clamped at the bottom
	if p.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", p.Cursor)
	}
	item, ok := p.Selected()
	if !ok || item.Value != "f1" {
		t.Errorf("Selected = %+v ok=%v", item, ok)
	}
}

func TestConfirmDialogFocus(t *testing.T) {
	d := NewConfirmDialog("Delete note", "This cannot be undone.", true)
	if !d.ConfirmFocused {
		t.Error("confirm should start focused")
	}
	d.ToggleFocus()
	if d.ConfirmFocused {
		t.Error("ToggleFocus should move to cancel")
	}
	if !strings.Contains(ansi.Strip(d.View()), "Delete note") {
		t.Error("dialog view missing title")
	}
}
