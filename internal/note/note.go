// Package note defines the core data model: notes, folders, categories,
// view selectors, and the plain-text projection used for search and stats.
package note

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category classifies a note. Secret notes live in the password-gated
// private area and are filtered out of every other view.
type Category string

const (
	CategoryPersonal Category = "PERSONAL"
	CategoryWork     Category = "WORK"
	CategoryIdeas    Category = "IDEAS"
	CategoryJournal  Category = "JOURNAL"
	CategorySecret   Category = "SECRET"
)

// Categories lists the public categories in display order. Secret is
// deliberately absent: it is only reachable through the vault.
func Categories() []Category {
	return []Category{CategoryPersonal, CategoryWork, CategoryIdeas, CategoryJournal}
}

// Valid reports whether c is a known category, including Secret.
func (c Category) Valid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryIdeas, CategoryJournal, CategorySecret:
		return true
	}
	return false
}

// Languages is the fixed tag set selectable for code notes.
var Languages = []string{
	"javascript", "typescript", "python", "java", "c", "cpp", "csharp",
	"go", "rust", "ruby", "php", "swift", "kotlin", "sql", "html", "css",
	"shell", "json", "yaml", "markdown",
}

// IsLanguage reports whether tag is a member of the fixed language set.
func IsLanguage(tag string) bool {
	for _, l := range Languages {
		if l == tag {
			return true
		}
	}
	return false
}

// Body is a note's content in exactly one interpretation: markup or raw
// code. A note is never in both at once.
type Body interface {
	// Raw returns the stored text: markup for rich bodies, source for code.
	Raw() string
	// Language returns the code language tag, or "" for rich bodies.
	Language() string
}

// RichBody is formatted text. The markup dialect is markdown; stray
// inline HTML is tolerated and stripped by the plain-text projection.
type RichBody struct {
	Markup string
}

func (b RichBody) Raw() string      { return b.Markup }
func (b RichBody) Language() string { return "" }

// CodeBody is raw source text tagged with a language. Its content is
// never interpreted as markup.
type CodeBody struct {
	Source string
	Lang   string
}

func (b CodeBody) Raw() string      { return b.Source }
func (b CodeBody) Language() string { return b.Lang }

// Note is a single note. Body carries the content-mode tag; everything
// else is plain metadata.
type Note struct {
	ID         string
	Title      string
	Body       Body
	Category   Category
	FolderID   string // empty means unfiled
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Favorite   bool
	PaperColor string
	PaperStyle string
}

// Folder is a user-defined grouping of notes.
type Folder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PaperColors and PaperStyles are the presentation presets offered when
// editing a note. The core treats the chosen values as opaque strings.
var (
	PaperColors = []string{"default", "cream", "mint", "sky", "lavender", "rose"}
	PaperStyles = []string{"plain", "ruled", "grid", "dotted"}
)

// noteJSON is the wire form. The body variant flattens to content plus
// an optional codeLanguage tag.
type noteJSON struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CodeLanguage string    `json:"codeLanguage,omitempty"`
	Category     Category  `json:"category"`
	FolderID     string    `json:"folderId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Favorite     bool      `json:"isFavorite,omitempty"`
	PaperColor   string    `json:"paperColor,omitempty"`
	PaperStyle   string    `json:"paperStyle,omitempty"`
}

func (n Note) MarshalJSON() ([]byte, error) {
	w := noteJSON{
		ID:         n.ID,
		Title:      n.Title,
		Category:   n.Category,
		FolderID:   n.FolderID,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
		Favorite:   n.Favorite,
		PaperColor: n.PaperColor,
		PaperStyle: n.PaperStyle,
	}
	if n.Body != nil {
		w.Content = n.Body.Raw()
		w.CodeLanguage = n.Body.Language()
	}
	return json.Marshal(w)
}

func (n *Note) UnmarshalJSON(data []byte) error {
	var w noteJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode note: %w", err)
	}
	n.ID = w.ID
	n.Title = w.Title
	n.Category = w.Category
	n.FolderID = w.FolderID
	n.CreatedAt = w.CreatedAt
	n.UpdatedAt = w.UpdatedAt
	n.Favorite = w.Favorite
	n.PaperColor = w.PaperColor
	n.PaperStyle = w.PaperStyle
	if w.CodeLanguage != "" {
		n.Body = CodeBody{Source: w.Content, Lang: w.CodeLanguage}
	} else {
		n.Body = RichBody{Markup: w.Content}
	}
	return nil
}

// PlainText returns the note's content with markup stripped. Code
// bodies are already plain and come back verbatim.
func (n Note) PlainText() string {
	if n.Body == nil {
		return ""
	}
	if _, ok := n.Body.(CodeBody); ok {
		return n.Body.Raw()
	}
	return StripMarkup(n.Body.Raw())
}
