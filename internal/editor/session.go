// Package editor owns the live editing state for one open note: the
// rich/code content-mode state machine, cursor-based insertion, derived
// stats, and the debounced commit back to the store.
package editor

import (
	"log/slog"
	"strings"
	"time"

	"github.com/marcus/inkwell/internal/note"
	"github.com/marcus/inkwell/internal/store"
)

// AutosaveDelay is the quiescence window after the last edit before an
// automatic commit fires.
const AutosaveDelay = 1500 * time.Millisecond

// Mode is the content interpretation of the open note.
type Mode int

const (
	// ModeRich treats the buffer as markup.
	ModeRich Mode = iota
	// ModeCode treats the buffer as raw source text.
	ModeCode
)

// Session edits one note. It mutates a local draft and commits the
// whole draft to the store either when the autosave window elapses or
// on an explicit done. A closed session never writes again.
type Session struct {
	store  *store.Store
	logger *slog.Logger

	draft     note.Note
	caret     int // rune offset into the buffer
	dirty     bool
	persisted bool
	closed    bool

	// gen counts edits. Each edit restarts the autosave window by
	// invalidating the tick scheduled for the previous generation.
	gen int
}

// Open starts a session over an existing note. The caret starts at the
// end of the buffer.
func Open(st *store.Store, logger *slog.Logger, n note.Note) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{store: st, logger: logger, draft: n, persisted: true}
	s.caret = len([]rune(s.raw()))
	return s
}

// NewDraft starts a session over a fresh unsaved note, defaulted from
// the active view: a folder view files the note under that folder, a
// plain category view adopts the category, everything else falls back
// to PERSONAL. Nothing is stored until the first commit.
func NewDraft(st *store.Store, logger *slog.Logger, view note.View) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	n := note.Note{
		Category:   note.CategoryPersonal,
		Body:       note.RichBody{},
		PaperColor: note.PaperColors[0],
		PaperStyle: note.PaperStyles[0],
	}
	switch view.Kind {
	case note.ViewCategory:
		n.Category = view.Category
	case note.ViewFolder:
		n.FolderID = view.FolderID
	}
	return &Session{store: st, logger: logger, draft: n}
}

// Note returns a copy of the current draft.
func (s *Session) Note() note.Note { return s.draft }

func (s *Session) ID() string    { return s.draft.ID }
func (s *Session) Title() string { return s.draft.Title }
func (s *Session) Dirty() bool   { return s.dirty }
func (s *Session) Closed() bool  { return s.closed }

// Generation identifies the latest edit; an autosave tick carrying an
// older generation is stale and must be ignored.
func (s *Session) Generation() int { return s.gen }

// Mode reports the content interpretation of the draft.
func (s *Session) Mode() Mode {
	if _, ok := s.draft.Body.(note.CodeBody); ok {
		return ModeCode
	}
	return ModeRich
}

// Language returns the code language tag, or "" in rich mode.
func (s *Session) Language() string {
	if s.draft.Body == nil {
		return ""
	}
	return s.draft.Body.Language()
}

// Content returns the raw buffer: markup in rich mode, source in code
// mode.
func (s *Session) Content() string { return s.raw() }

// Caret returns the rune offset of the insertion point.
func (s *Session) Caret() int { return s.caret }

// PlainText is the visible-text projection of the buffer: markup
// stripped in rich mode, the source verbatim in code mode.
func (s *Session) PlainText() string {
	if s.Mode() == ModeCode {
		return s.raw()
	}
	return note.StripMarkup(s.raw())
}

// Stats returns character and word counts of the plain-text
// projection.
func (s *Session) Stats() (chars, words int) {
	return note.Stats(s.PlainText())
}

// ReadingMinutes estimates reading time for the current content.
func (s *Session) ReadingMinutes() int {
	_, words := s.Stats()
	return note.ReadingMinutes(words)
}

func (s *Session) raw() string {
	if s.draft.Body == nil {
		return ""
	}
	return s.draft.Body.Raw()
}

func (s *Session) setRaw(text string) {
	if b, ok := s.draft.Body.(note.CodeBody); ok {
		b.Source = text
		s.draft.Body = b
	} else {
		s.draft.Body = note.RichBody{Markup: text}
	}
	s.clampCaret()
}

func (s *Session) clampCaret() {
	if n := len([]rune(s.raw())); s.caret > n {
		s.caret = n
	}
	if s.caret < 0 {
		s.caret = 0
	}
}

// touch marks the draft dirty and restarts the autosave window.
func (s *Session) touch() {
	s.dirty = true
	s.gen++
}

func (s *Session) SetTitle(title string) {
	if s.draft.Title == title {
		return
	}
	s.draft.Title = title
	s.touch()
}

func (s *Session) SetCategory(c note.Category) {
	if s.draft.Category == c {
		return
	}
	s.draft.Category = c
	s.touch()
}

func (s *Session) SetFolder(folderID string) {
	if s.draft.FolderID == folderID {
		return
	}
	s.draft.FolderID = folderID
	s.touch()
}

func (s *Session) SetPaper(color, style string) {
	if s.draft.PaperColor == color && s.draft.PaperStyle == style {
		return
	}
	s.draft.PaperColor = color
	s.draft.PaperStyle = style
	s.touch()
}

func (s *Session) ToggleFavorite() {
	s.draft.Favorite = !s.draft.Favorite
	s.touch()
}

// SetContent replaces the whole buffer, keeping the current mode. Used
// when the host text widget hands back its edited value.
func (s *Session) SetContent(text string) {
	if s.raw() == text {
		return
	}
	s.setRaw(text)
	s.touch()
}

// SetCaret moves the insertion point, clamped to the buffer.
func (s *Session) SetCaret(pos int) {
	s.caret = pos
	s.clampCaret()
}

// InsertAtCursor splices text at the caret and leaves the caret right
// after it. Every external text source (AI output, speech transcript,
// date and location snippets) enters the document through this one
// primitive.
func (s *Session) InsertAtCursor(text string) {
	if text == "" {
		return
	}
	runes := []rune(s.raw())
	s.clampCaret()
	var b strings.Builder
	b.WriteString(string(runes[:s.caret]))
	b.WriteString(text)
	b.WriteString(string(runes[s.caret:]))
	s.setRaw(b.String())
	s.caret += len([]rune(text))
	s.touch()
}

// Append adds text at the end of the buffer without moving the caret
// there unless it was already at the end.
func (s *Session) Append(text string) {
	if text == "" {
		return
	}
	atEnd := s.caret == len([]rune(s.raw()))
	s.setRaw(s.raw() + text)
	if atEnd {
		s.caret = len([]rune(s.raw()))
	}
	s.touch()
}

// ReplaceAll swaps the entire buffer for text and puts the caret at
// the end.
func (s *Session) ReplaceAll(text string) {
	s.setRaw(text)
	s.caret = len([]rune(text))
	s.touch()
}

// ToCode switches the draft into code mode. Coming from rich mode the
// markup is flattened to plain text first; that flattening is lossy
// and not undone by switching back. Already in code mode, only the
// language tag changes and the buffer is untouched.
func (s *Session) ToCode(lang string) error {
	if !note.IsLanguage(lang) {
		return &note.ValidationError{Field: "codeLanguage", Reason: "unknown language " + lang}
	}
	switch b := s.draft.Body.(type) {
	case note.CodeBody:
		if b.Lang == lang {
			return nil
		}
		b.Lang = lang
		s.draft.Body = b
	default:
		s.draft.Body = note.CodeBody{Source: note.StripMarkup(s.raw()), Lang: lang}
		s.clampCaret()
	}
	s.touch()
	return nil
}

// ToRich switches the draft back to rich mode. The code buffer carries
// over verbatim as plain text; HTML-looking code is not re-parsed as
// markup on the way.
func (s *Session) ToRich() {
	b, ok := s.draft.Body.(note.CodeBody)
	if !ok {
		return
	}
	s.draft.Body = note.RichBody{Markup: b.Source}
	s.touch()
}

// CommitDue handles an autosave tick. It commits only when the tick's
// generation is still current, the draft is dirty, and the session is
// open; otherwise it reports false and does nothing.
func (s *Session) CommitDue(gen int) (note.Note, bool, error) {
	if s.closed || !s.dirty || gen != s.gen {
		return note.Note{}, false, nil
	}
	n, err := s.commit()
	if err != nil {
		return note.Note{}, false, err
	}
	return n, true, nil
}

// Done commits any unsaved changes immediately and closes the session.
// The second return reports whether a commit happened; a clean session
// just closes. Closing bumps the generation so a pending autosave tick
// lands stale.
func (s *Session) Done() (note.Note, bool, error) {
	defer s.close()
	if !s.dirty {
		return s.draft, false, nil
	}
	n, err := s.commit()
	if err != nil {
		return note.Note{}, false, err
	}
	return n, true, nil
}

// Discard closes the session without committing.
func (s *Session) Discard() {
	s.close()
}

func (s *Session) close() {
	s.closed = true
	s.gen++
}

func (s *Session) commit() (note.Note, error) {
	if !s.persisted {
		n, err := s.store.CreateNote(s.draft)
		if err != nil {
			return note.Note{}, err
		}
		s.draft = n
		s.persisted = true
		s.dirty = false
		return n, nil
	}
	draft := s.draft
	n, err := s.store.UpdateNote(draft.ID, func(x *note.Note) {
		x.Title = draft.Title
		x.Body = draft.Body
		x.Category = draft.Category
		x.FolderID = draft.FolderID
		x.Favorite = draft.Favorite
		x.PaperColor = draft.PaperColor
		x.PaperStyle = draft.PaperStyle
	})
	if err != nil {
		return note.Note{}, err
	}
	s.draft.UpdatedAt = n.UpdatedAt
	s.dirty = false
	s.logger.Debug("note committed", "id", n.ID, "gen", s.gen)
	return n, nil
}
