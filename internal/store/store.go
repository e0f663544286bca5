package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/inkwell/internal/note"
)

var ErrNotFound = errors.New("not found")

// Store is the single source of truth for notes and folders. It keeps
// both collections in memory and rewrites the full JSON array to the
// port after every mutation. Methods are not safe for concurrent use;
// the application mutates the store from a single event loop.
type Store struct {
	port   Port
	logger *slog.Logger
	now    func() time.Time

	notes   []note.Note
	folders []note.Folder
}

// Open loads both collections from the port. Missing keys start empty.
func Open(port Port, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{port: port, logger: logger, now: time.Now}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads both collections from the port, discarding the
// in-memory state. Used at startup and when the data files change on
// disk underneath us.
func (s *Store) Reload() error {
	notes, err := loadKey[note.Note](s.port, KeyNotes)
	if err != nil {
		return err
	}
	folders, err := loadKey[note.Folder](s.port, KeyFolders)
	if err != nil {
		return err
	}
	s.notes = notes
	s.folders = folders
	return nil
}

func loadKey[T any](port Port, key string) ([]T, error) {
	data, err := port.Load(key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

// Notes returns a copy of the note collection.
func (s *Store) Notes() []note.Note {
	out := make([]note.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Folders returns a copy of the folder collection.
func (s *Store) Folders() []note.Folder {
	out := make([]note.Folder, len(s.folders))
	copy(out, s.folders)
	return out
}

// Note looks up a note by id.
func (s *Store) Note(id string) (note.Note, bool) {
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return note.Note{}, false
}

// Folder looks up a folder by id.
func (s *Store) Folder(id string) (note.Folder, bool) {
	for _, f := range s.folders {
		if f.ID == id {
			return f, true
		}
	}
	return note.Folder{}, false
}

// CreateNote adds a note. A missing id is generated; timestamps are
// set to now. The category must be valid and the folder, if any, must
// exist at assignment time.
func (s *Store) CreateNote(n note.Note) (note.Note, error) {
	if err := s.validate(&n); err != nil {
		return note.Note{}, err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Body == nil {
		n.Body = note.RichBody{}
	}
	now := s.now()
	n.CreatedAt = now
	n.UpdatedAt = now
	s.notes = append(s.notes, n)
	if err := s.persistNotes(); err != nil {
		return note.Note{}, err
	}
	s.logger.Debug("note created", "id", n.ID, "category", n.Category)
	return n, nil
}

// UpdateNote applies mutate to a copy of the note and commits it with
// a fresh UpdatedAt. ID and CreatedAt are immutable; UpdatedAt always
// moves forward even against a skewed clock.
func (s *Store) UpdateNote(id string, mutate func(*note.Note)) (note.Note, error) {
	for i, n := range s.notes {
		if n.ID != id {
			continue
		}
		next := n
		mutate(&next)
		next.ID = n.ID
		next.CreatedAt = n.CreatedAt
		if err := s.validate(&next); err != nil {
			return note.Note{}, err
		}
		next.UpdatedAt = s.bump(n.UpdatedAt)
		s.notes[i] = next
		if err := s.persistNotes(); err != nil {
			return note.Note{}, err
		}
		return next, nil
	}
	return note.Note{}, fmt.Errorf("update note %s: %w", id, ErrNotFound)
}

// DeleteNote removes a note by id.
func (s *Store) DeleteNote(id string) error {
	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			s.logger.Debug("note deleted", "id", id)
			return s.persistNotes()
		}
	}
	return fmt.Errorf("delete note %s: %w", id, ErrNotFound)
}

// DeleteNotes removes all listed notes as one in-memory update and one
// persist. Unknown ids are skipped.
func (s *Store) DeleteNotes(ids []string) (int, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.notes[:0]
	removed := 0
	for _, n := range s.notes {
		if drop[n.ID] {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	s.notes = kept
	if removed == 0 {
		return 0, nil
	}
	s.logger.Debug("notes bulk deleted", "count", removed)
	return removed, s.persistNotes()
}

// MoveNotes sets the folder of all listed notes as one atomic update.
// Moving to the unfiled bucket (empty folderID) also forces the
// category back to PERSONAL; moving into a folder leaves the category
// alone. The asymmetry is longstanding observed behavior, kept as is.
func (s *Store) MoveNotes(ids []string, folderID string) (int, error) {
	if folderID != "" {
		if _, ok := s.Folder(folderID); !ok {
			return 0, fmt.Errorf("move to folder %s: %w", folderID, ErrNotFound)
		}
	}
	pick := make(map[string]bool, len(ids))
	for _, id := range ids {
		pick[id] = true
	}
	moved := 0
	for i, n := range s.notes {
		if !pick[n.ID] {
			continue
		}
		n.FolderID = folderID
		if folderID == "" {
			n.Category = note.CategoryPersonal
		}
		n.UpdatedAt = s.bump(n.UpdatedAt)
		s.notes[i] = n
		moved++
	}
	if moved == 0 {
		return 0, nil
	}
	s.logger.Debug("notes moved", "count", moved, "folder", folderID)
	return moved, s.persistNotes()
}

// CreateFolder adds a folder. The name must be non-empty after
// trimming.
func (s *Store) CreateFolder(name, description string) (note.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return note.Folder{}, &note.ValidationError{Field: "folder name", Reason: "must not be empty"}
	}
	f := note.Folder{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
	}
	s.folders = append(s.folders, f)
	if err := s.persistFolders(); err != nil {
		return note.Folder{}, err
	}
	s.logger.Debug("folder created", "id", f.ID, "name", f.Name)
	return f, nil
}

// UpdateFolder renames a folder or changes its description.
func (s *Store) UpdateFolder(id, name, description string) (note.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return note.Folder{}, &note.ValidationError{Field: "folder name", Reason: "must not be empty"}
	}
	for i, f := range s.folders {
		if f.ID == id {
			f.Name = name
			f.Description = strings.TrimSpace(description)
			s.folders[i] = f
			return f, s.persistFolders()
		}
	}
	return note.Folder{}, fmt.Errorf("update folder %s: %w", id, ErrNotFound)
}

// DeleteFolder removes a folder and clears FolderID on its member
// notes. Members are never deleted. Returns how many were cleared.
func (s *Store) DeleteFolder(id string) (int, error) {
	idx := -1
	for i, f := range s.folders {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("delete folder %s: %w", id, ErrNotFound)
	}
	s.folders = append(s.folders[:idx], s.folders[idx+1:]...)
	cleared := 0
	for i, n := range s.notes {
		if n.FolderID == id {
			n.FolderID = ""
			s.notes[i] = n
			cleared++
		}
	}
	if err := s.persistFolders(); err != nil {
		return cleared, err
	}
	if cleared > 0 {
		if err := s.persistNotes(); err != nil {
			return cleared, err
		}
	}
	s.logger.Debug("folder deleted", "id", id, "cleared", cleared)
	return cleared, nil
}

func (s *Store) validate(n *note.Note) error {
	if !n.Category.Valid() {
		return &note.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", n.Category)}
	}
	if n.FolderID != "" {
		if _, ok := s.Folder(n.FolderID); !ok {
			return &note.ValidationError{Field: "folderId", Reason: fmt.Sprintf("folder %s does not exist", n.FolderID)}
		}
	}
	if b, ok := n.Body.(note.CodeBody); ok && !note.IsLanguage(b.Lang) {
		return &note.ValidationError{Field: "codeLanguage", Reason: fmt.Sprintf("unknown language %q", b.Lang)}
	}
	return nil
}

// bump returns a timestamp strictly after prev.
func (s *Store) bump(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

// UIPrefs are the per-vault interface preferences persisted alongside
// the data, not in the config file, so they follow the notes around.
type UIPrefs struct {
	Layout string `json:"layout,omitempty"`
}

// UIPrefs loads the saved interface preferences. A missing or corrupt
// key yields the zero value; preferences are never worth failing over.
func (s *Store) UIPrefs() UIPrefs {
	var p UIPrefs
	data, err := s.port.Load(KeyUI)
	if err != nil || len(data) == 0 {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("discarding unreadable ui prefs", "error", err)
		return UIPrefs{}
	}
	return p
}

func (s *Store) SaveUIPrefs(p UIPrefs) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyUI, err)
	}
	return s.port.Save(KeyUI, data)
}

func (s *Store) persistNotes() error {
	return persistKey(s.port, KeyNotes, s.notes)
}

func (s *Store) persistFolders() error {
	return persistKey(s.port, KeyFolders, s.folders)
}

func persistKey[T any](port Port, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return port.Save(key, data)
}
