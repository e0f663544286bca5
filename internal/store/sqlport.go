package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TEXT NOT NULL
);
`

// SQLPort is a Port backed by a single-file sqlite database. It keeps
// the same full-value-per-key model as FilePort; sqlite just gives us
// atomic writes and a single artifact to back up.
type SQLPort struct {
	db *sql.DB
}

func OpenSQL(path string) (*SQLPort, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLPort{db: db}, nil
}

func (p *SQLPort) Load(key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return value, nil
}

func (p *SQLPort) Save(key string, data []byte) error {
	_, err := p.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (p *SQLPort) Close() error {
	return p.db.Close()
}
