package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilePort stores each key as <dir>/<key>.json. Writes go through a
// temp file and rename so a crash never leaves a half-written key.
type FilePort struct {
	dir string
}

func NewFilePort(dir string) (*FilePort, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FilePort{dir: dir}, nil
}

// Dir returns the directory the port writes into.
func (p *FilePort) Dir() string { return p.dir }

func (p *FilePort) path(key string) string {
	return filepath.Join(p.dir, key+".json")
}

func (p *FilePort) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(p.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return data, nil
}

func (p *FilePort) Save(key string, data []byte) error {
	tmp := p.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := os.Rename(tmp, p.path(key)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
