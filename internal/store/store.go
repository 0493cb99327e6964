// Package store persists the task list into a single key/value slot of a
// local sqlite database, JSON-encoded and order-preserving.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "modernc.org/sqlite"

	"todopad/internal/task"
)

// SlotKey is the single ItemTable row holding the serialized task list.
const SlotKey = "todopad.tasks"

type Store struct {
	db   *sql.DB
	path string
}

// Open creates the data directory if needed and prepares the slot table.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	_, _ = db.Exec("PRAGMA busy_timeout=5000")
	_, _ = db.Exec("PRAGMA journal_mode=WAL")
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS ItemTable (key TEXT PRIMARY KEY, value BLOB)"); err != nil {
		db.Close()
		return nil, fmt.Errorf("init slot table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Path() string { return s.path }

// Save serializes the full task list and overwrites the slot.
func (s *Store) Save(ts []task.Task) error {
	b, err := task.EncodeList(ts)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if _, err := s.db.Exec("INSERT INTO ItemTable(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value", SlotKey, b); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// SaveLogged is the fire-and-forget variant behind the debounced writer:
// failures are logged and swallowed, in-memory state stays authoritative and
// the write is not retried.
func (s *Store) SaveLogged(ts []task.Task) {
	if err := s.Save(ts); err != nil {
		log.Printf("[store] save failed (keeping state in memory): %v", err)
	}
}

// Load reads the slot. A missing row yields an empty list. A payload that
// fails to parse, or whose elements fail shape validation, is logged and also
// degrades to an empty list rather than surfacing an error.
func (s *Store) Load() ([]task.Task, error) {
	var raw []byte
	err := s.db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", SlotKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot: %w", err)
	}
	ts, err := task.DecodeList(raw)
	if err != nil {
		log.Printf("[store] discarding malformed slot: %v", err)
		return []task.Task{}, nil
	}
	return ts, nil
}

// BackupSlot copies the database file aside with a timestamped suffix before
// a destructive import. A missing file is not an error; the returned path is
// empty in that case.
func (s *Store) BackupSlot() (string, error) {
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	bak := s.path + ".bak-" + time.Now().Format("20060102-150405")
	if err := os.WriteFile(bak, b, 0o600); err != nil {
		return "", err
	}
	return bak, nil
}

// DefaultPath resolves the per-OS data location for the task database.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "todopad", "tasks.db")
	case "windows":
		if app := os.Getenv("APPDATA"); app != "" {
			return filepath.Join(app, "todopad", "tasks.db")
		}
		return filepath.Join(home, "todopad", "tasks.db")
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "todopad", "tasks.db")
		}
		return filepath.Join(home, ".local", "share", "todopad", "tasks.db")
	}
}
