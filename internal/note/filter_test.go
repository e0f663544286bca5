package note

import (
	"testing"
	"time"
)

func testNotes() []Note {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Note{
		{
			ID: "n1", Title: "groceries", Category: CategoryPersonal,
			Body:      RichBody{Markup: "milk and *eggs*"},
			UpdatedAt: base.Add(1 * time.Hour),
		},
		{
			ID: "n2", Title: "standup", Category: CategoryWork, FolderID: "f1",
			Body:      RichBody{Markup: "<b>deploy</b> on friday"},
			UpdatedAt: base.Add(3 * time.Hour),
		},
		{
			ID: "n3", Title: "diary", Category: CategorySecret,
			Body:      RichBody{Markup: "met the deploy team"},
			UpdatedAt: base.Add(2 * time.Hour),
		},
		{
			ID: "n4", Title: "snippet", Category: CategoryIdeas, FolderID: "f1",
			Body:      CodeBody{Source: "SELECT * FROM eggs", Lang: "sql"},
			UpdatedAt: base.Add(4 * time.Hour),
		},
	}
}

func ids(notes []Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVisibleIsolation(t *testing.T) {
	f := NewFilter()
	notes := testNotes()

	tests := []struct {
		name     string
		view     View
		query    string
		unlocked bool
		want     []string
	}{
		{"all hides secret", AllView(), "", false, []string{"n4", "n2", "n1"}},
		{"vault shows only secret", VaultView(), "", true, []string{"n3"}},
		{"vault locked is empty", VaultView(), "", false, nil},
		{"search never surfaces secret", AllView(), "deploy", false, []string{"n2"}},
		{"vault search stays inside", VaultView(), "deploy", true, []string{"n3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(f.Visible(notes, tt.view, tt.query, tt.unlocked))
			if !equalIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleScope(t *testing.T) {
	f := NewFilter()
	notes := testNotes()

	if got := ids(f.Visible(notes, FolderView("f1"), "", false)); !equalIDs(got, []string{"n4", "n2"}) {
		t.Errorf("folder scope: got %v", got)
	}
	if got := ids(f.Visible(notes, CategoryView(CategoryWork), "", false)); !equalIDs(got, []string{"n2"}) {
		t.Errorf("category scope: got %v", got)
	}
	// Search bypasses scope entirely: n1 is not in f1 but still matches.
	if got := ids(f.Visible(notes, FolderView("f1"), "eggs", false)); !equalIDs(got, []string{"n4", "n1"}) {
		t.Errorf("global search: got %v", got)
	}
}

func TestVisibleSearchBody(t *testing.T) {
	f := NewFilter()
	notes := testNotes()

	// Matches markup-stripped body text, case-insensitively.
	if got := ids(f.Visible(notes, AllView(), "DEPLOY", false)); !equalIDs(got, []string{"n2"}) {
		t.Errorf("stripped body search: got %v", got)
	}
	// Code bodies are searched verbatim.
	if got := ids(f.Visible(notes, AllView(), "select *", false)); !equalIDs(got, []string{"n4"}) {
		t.Errorf("code body search: got %v", got)
	}
}

func TestVisibleSortOrder(t *testing.T) {
	f := NewFilter()
	got := f.Visible(testNotes(), AllView(), "", false)
	for i := 1; i < len(got); i++ {
		if got[i-1].UpdatedAt.Before(got[i].UpdatedAt) {
			t.Fatalf("result not sorted: %s before %s", got[i-1].ID, got[i].ID)
		}
	}
}

func TestPlainCaching(t *testing.T) {
	f := NewFilter()
	n := Note{Body: RichBody{Markup: "# Heading\n\nbody"}}
	first := f.Plain(n)
	second := f.Plain(n)
	if first != second || first != "Heading\nbody" {
		t.Errorf("Plain = %q then %q, want %q", first, second, "Heading\nbody")
	}
}
