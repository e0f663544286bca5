package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports external changes to the notes and folders files so
// the application can reload a store that was edited or synced from
// outside the process.
type Watcher struct {
	fw     *fsnotify.Watcher
	events chan string
}

// Watch begins watching dir for writes to the known port keys. The
// returned channel carries the key ("notes" or "folders") that
// changed.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w := &Watcher{fw: fw, events: make(chan string, 8)}
	go w.run()
	return w, nil
}

func (w *Watcher) Events() <-chan string { return w.events }

func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) run() {
	defer close(w.events)
	for ev := range w.fw.Events {
		if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
			continue
		}
		name := filepath.Base(ev.Name)
		key, ok := strings.CutSuffix(name, ".json")
		if !ok || (key != KeyNotes && key != KeyFolders) {
			continue
		}
		select {
		case w.events <- key:
		default:
			// Channel full; a reload is already pending.
		}
	}
}
