package store

import (
	"errors"
	"testing"
	"time"

	"github.com/marcus/inkwell/internal/note"
)

// memPort keeps saved values in a map. Load of an unknown key returns
// (nil, nil), matching the real ports.
type memPort struct {
	data map[string][]byte
}

func newMemPort() *memPort {
	return &memPort{data: make(map[string][]byte)}
}

func (p *memPort) Load(key string) ([]byte, error) {
	return p.data[key], nil
}

func (p *memPort) Save(key string, data []byte) error {
	p.data[key] = data
	return nil
}

func newTestStore(t *testing.T) (*Store, *memPort) {
	t.Helper()
	port := newMemPort()
	s, err := Open(port, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, port
}

func TestCreateNoteDefaults(t *testing.T) {
	s, port := newTestStore(t)
	n, err := s.CreateNote(note.Note{Title: "hello", Category: note.CategoryPersonal})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if n.ID == "" {
		t.Error("id not assigned")
	}
	if n.Body == nil {
		t.Error("body not defaulted")
	}
	if n.CreatedAt.IsZero() || !n.UpdatedAt.Equal(n.CreatedAt) {
		t.Errorf("timestamps = %v / %v", n.CreatedAt, n.UpdatedAt)
	}
	if port.data[KeyNotes] == nil {
		t.Error("create did not persist")
	}
}

func TestUpdateNoteMonotonic(t *testing.T) {
	s, _ := newTestStore(t)
	// Freeze the clock so every update lands on the same instant.
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return frozen }

	n, err := s.CreateNote(note.Note{Title: "a", Category: note.CategoryWork})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	prev := n.UpdatedAt
	for i := 0; i < 3; i++ {
		n, err = s.UpdateNote(n.ID, func(x *note.Note) { x.Title = "b" })
		if err != nil {
			t.Fatalf("UpdateNote: %v", err)
		}
		if !n.UpdatedAt.After(prev) {
			t.Fatalf("UpdatedAt did not advance: %v then %v", prev, n.UpdatedAt)
		}
		prev = n.UpdatedAt
	}
}

func TestUpdateNoteImmutableFields(t *testing.T) {
	s, _ := newTestStore(t)
	n, _ := s.CreateNote(note.Note{Title: "a", Category: note.CategoryWork})
	got, err := s.UpdateNote(n.ID, func(x *note.Note) {
		x.ID = "evil"
		x.CreatedAt = time.Time{}
	})
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if got.ID != n.ID || !got.CreatedAt.Equal(n.CreatedAt) {
		t.Errorf("id/createdAt mutated: %+v", got)
	}
}

func TestUpdateNoteMissing(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.UpdateNote("nope", func(*note.Note) {}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestValidation(t *testing.T) {
	s, _ := newTestStore(t)

	var verr *note.ValidationError
	if _, err := s.CreateNote(note.Note{Category: "NOPE"}); !errors.As(err, &verr) {
		t.Errorf("bad category: err = %v", err)
	}
	if _, err := s.CreateNote(note.Note{Category: note.CategoryWork, FolderID: "ghost"}); !errors.As(err, &verr) {
		t.Errorf("missing folder: err = %v", err)
	}
	if _, err := s.CreateNote(note.Note{
		Category: note.CategoryWork,
		Body:     note.CodeBody{Source: "x", Lang: "cobol"},
	}); !errors.As(err, &verr) {
		t.Errorf("bad language: err = %v", err)
	}
	if _, err := s.CreateFolder("   ", ""); !errors.As(err, &verr) {
		t.Errorf("blank folder name: err = %v", err)
	}
}

func TestDeleteFolderCascadeClear(t *testing.T) {
	s, _ := newTestStore(t)
	f, err := s.CreateFolder("projects", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	n1, _ := s.CreateNote(note.Note{Title: "a", Category: note.CategoryWork, FolderID: f.ID})
	n2, _ := s.CreateNote(note.Note{Title: "b", Category: note.CategoryIdeas, FolderID: f.ID})
	n3, _ := s.CreateNote(note.Note{Title: "c", Category: note.CategoryWork})

	cleared, err := s.DeleteFolder(f.ID)
	if err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}
	if cleared != 2 {
		t.Errorf("cleared = %d, want 2", cleared)
	}
	for _, id := range []string{n1.ID, n2.ID, n3.ID} {
		got, ok := s.Note(id)
		if !ok {
			t.Fatalf("note %s was deleted with its folder", id)
		}
		if got.FolderID != "" {
			t.Errorf("note %s still filed under %s", id, got.FolderID)
		}
	}
	if _, ok := s.Folder(f.ID); ok {
		t.Error("folder still present")
	}
}

func TestMoveNotesAsymmetry(t *testing.T) {
	s, _ := newTestStore(t)
	f, _ := s.CreateFolder("work stuff", "")
	n1, _ := s.CreateNote(note.Note{Title: "a", Category: note.CategoryWork})
	n2, _ := s.CreateNote(note.Note{Title: "b", Category: note.CategoryWork})

	// Into a folder: category untouched.
	moved, err := s.MoveNotes([]string{n1.ID, n2.ID}, f.ID)
	if err != nil || moved != 2 {
		t.Fatalf("MoveNotes into folder: moved=%d err=%v", moved, err)
	}
	for _, id := range []string{n1.ID, n2.ID} {
		got, _ := s.Note(id)
		if got.Category != note.CategoryWork || got.FolderID != f.ID {
			t.Errorf("note %s = %s/%s, want WORK/%s", id, got.Category, got.FolderID, f.ID)
		}
	}

	// Un-filing forces the category back to PERSONAL.
	if _, err := s.MoveNotes([]string{n1.ID, n2.ID}, ""); err != nil {
		t.Fatalf("MoveNotes unfile: %v", err)
	}
	for _, id := range []string{n1.ID, n2.ID} {
		got, _ := s.Note(id)
		if got.Category != note.CategoryPersonal || got.FolderID != "" {
			t.Errorf("note %s = %s/%s, want PERSONAL/unfiled", id, got.Category, got.FolderID)
		}
	}
}

func TestMoveNotesMissingFolder(t *testing.T) {
	s, _ := newTestStore(t)
	n, _ := s.CreateNote(note.Note{Title: "a", Category: note.CategoryWork})
	if _, err := s.MoveNotes([]string{n.ID}, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteNotesBulk(t *testing.T) {
	s, _ := newTestStore(t)
	n1, _ := s.CreateNote(note.Note{Title: "a", Category: note.CategoryWork})
	n2, _ := s.CreateNote(note.Note{Title: "b", Category: note.CategoryWork})
	n3, _ := s.CreateNote(note.Note{Title: "c", Category: note.CategoryWork})

	removed, err := s.DeleteNotes([]string{n1.ID, n3.ID, "ghost"})
	if err != nil {
		t.Fatalf("DeleteNotes: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if _, ok := s.Note(n2.ID); !ok {
		t.Error("unselected note removed")
	}
}

func TestFilePortRoundTrip(t *testing.T) {
	port, err := NewFilePort(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilePort: %v", err)
	}
	s, err := Open(port, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n, err := s.CreateNote(note.Note{
		Title:    "persisted",
		Category: note.CategoryJournal,
		Body:     note.CodeBody{Source: "echo hi", Lang: "shell"},
	})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	reopened, err := Open(port, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok := reopened.Note(n.ID)
	if !ok {
		t.Fatal("note lost on reopen")
	}
	cb, ok := got.Body.(note.CodeBody)
	if !ok || cb.Lang != "shell" {
		t.Errorf("body = %#v, want shell code body", got.Body)
	}
}

func TestFilePortMissingKey(t *testing.T) {
	port, err := NewFilePort(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilePort: %v", err)
	}
	data, err := port.Load("never-saved")
	if err != nil || data != nil {
		t.Errorf("Load = (%v, %v), want (nil, nil)", data, err)
	}
}

func TestSQLPortRoundTrip(t *testing.T) {
	port, err := OpenSQL(t.TempDir() + "/inkwell.db")
	if err != nil {
		t.Fatalf("OpenSQL: %v", err)
	}
	defer port.Close()

	if data, err := port.Load(KeyNotes); err != nil || data != nil {
		t.Fatalf("fresh Load = (%v, %v), want (nil, nil)", data, err)
	}
	if err := port.Save(KeyNotes, []byte(`[]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := port.Save(KeyNotes, []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	data, err := port.Load(KeyNotes)
	if err != nil || string(data) != `[{"id":"x"}]` {
		t.Errorf("Load = (%s, %v)", data, err)
	}
}
