package app

import (
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/inkwell/internal/note"
)

func TestNoteTitleLanguageSuffix(t *testing.T) {
	code := note.Note{Title: "query", Body: note.CodeBody{Source: "select 1", Lang: "sql"}}
	if got := noteTitle(code); got != "query.sql" {
		t.Errorf("code title = %q, want %q", got, "query.sql")
	}
	rich := note.Note{Body: note.RichBody{Markup: "x"}}
	if got := noteTitle(rich); got != "Untitled" {
		t.Errorf("rich title = %q, want %q", got, "Untitled")
	}
}

func TestFoldIndexOffsets(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		query string
		start int
		end   int
	}{
		{"ascii", "hello world", "WORLD", 6, 11},
		{"match after multibyte capital", "İstanbul zip", "zip", 10, 13},
		{"match spans multibyte rune", "ZİP file", "zip", 0, 4},
		{"query folds to match", "İstanbul", "istanbul", 0, 9},
		{"no match", "plain", "zzz", -1, -1},
		{"empty query", "plain", "", -1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := foldIndex(tc.text, tc.query)
			if start != tc.start || end != tc.end {
				t.Fatalf("foldIndex(%q, %q) = %d,%d, want %d,%d",
					tc.text, tc.query, start, end, tc.start, tc.end)
			}
			if start < 0 {
				return
			}
			if !utf8.ValidString(tc.text[start:end]) {
				t.Fatalf("offsets %d:%d split a rune of %q", start, end, tc.text)
			}
		})
	}
}

func TestHighlightPreservesText(t *testing.T) {
	m := newTestModel(t, nil)
	m.query = "zip"
	got := m.highlight("ZİP file")
	if !utf8.ValidString(got) {
		t.Fatalf("highlight produced invalid UTF-8: %q", got)
	}
	if stripped := ansi.Strip(got); stripped != "ZİP file" {
		t.Fatalf("highlight changed the text: %q", stripped)
	}
}
