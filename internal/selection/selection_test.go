package selection

import (
	"errors"
	"testing"

	"github.com/marcus/inkwell/internal/note"
	"github.com/marcus/inkwell/internal/store"
)

type memPort struct {
	data map[string][]byte
}

func (p *memPort) Load(key string) ([]byte, error) { return p.data[key], nil }
func (p *memPort) Save(key string, d []byte) error { p.data[key] = d; return nil }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(&memPort{data: make(map[string][]byte)}, nil)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return s
}

func TestToggleClearsSelection(t *testing.T) {
	var c Controller
	c.Toggle()
	c.ToggleMember("a")
	c.ToggleMember("b")
	if c.Count() != 2 {
		t.Fatalf("count = %d, want 2", c.Count())
	}
	c.Toggle()
	if c.Active() || c.Count() != 0 {
		t.Errorf("leaving selection mode must clear the set: active=%v count=%d", c.Active(), c.Count())
	}
	c.Toggle()
	if c.Count() != 0 {
		t.Error("re-entering selection mode must start empty")
	}
}

func TestToggleMemberGated(t *testing.T) {
	var c Controller
	c.ToggleMember("a")
	if c.Count() != 0 {
		t.Error("ToggleMember outside selection mode should be a no-op")
	}
	c.Toggle()
	c.ToggleMember("a")
	c.ToggleMember("a")
	if c.Selected("a") {
		t.Error("double toggle should remove the member")
	}
}

func TestBulkDeleteRequiresConfirmation(t *testing.T) {
	s := newTestStore(t)
	n, _ := s.CreateNote(note.Note{Title: "a", Category: note.CategoryWork})

	var c Controller
	c.Toggle()
	c.ToggleMember(n.ID)

	if _, err := c.BulkDelete(s, false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("err = %v, want ErrConfirmationRequired", err)
	}
	if _, ok := s.Note(n.ID); !ok {
		t.Fatal("unconfirmed delete must not touch the store")
	}
	if !c.Active() || c.Count() != 1 {
		t.Fatal("unconfirmed delete must keep the selection")
	}

	removed, err := c.BulkDelete(s, true)
	if err != nil || removed != 1 {
		t.Fatalf("confirmed delete: removed=%d err=%v", removed, err)
	}
	if _, ok := s.Note(n.ID); ok {
		t.Error("note survived confirmed bulk delete")
	}
	if c.Active() || c.Count() != 0 {
		t.Error("bulk delete should exit selection mode")
	}
}

func TestBulkMoveExitsSelection(t *testing.T) {
	s := newTestStore(t)
	f, _ := s.CreateFolder("dest", "")
	n1, _ := s.CreateNote(note.Note{Title: "a", Category: note.CategoryWork})
	n2, _ := s.CreateNote(note.Note{Title: "b", Category: note.CategoryIdeas})

	var c Controller
	c.Toggle()
	c.ToggleMember(n1.ID)
	c.ToggleMember(n2.ID)

	moved, err := c.BulkMove(s, f.ID)
	if err != nil || moved != 2 {
		t.Fatalf("BulkMove: moved=%d err=%v", moved, err)
	}
	got, _ := s.Note(n1.ID)
	if got.FolderID != f.ID || got.Category != note.CategoryWork {
		t.Errorf("n1 = %s/%s, want %s/WORK", got.FolderID, got.Category, f.ID)
	}
	if c.Active() {
		t.Error("bulk move should exit selection mode")
	}
}

func TestBulkOpsOnEmptySelection(t *testing.T) {
	s := newTestStore(t)
	var c Controller
	c.Toggle()
	if _, err := c.BulkDelete(s, true); !errors.Is(err, ErrNothingSelected) {
		t.Errorf("BulkDelete: err = %v", err)
	}
	if _, err := c.BulkMove(s, ""); !errors.Is(err, ErrNothingSelected) {
		t.Errorf("BulkMove: err = %v", err)
	}
}
