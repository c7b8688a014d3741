package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists snippet blobs in a SQLite database, giving a
// shared cache that survives process restarts.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snippets (
		key TEXT PRIMARY KEY,
		blob BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Find returns the blob stored under key, or ErrNotFound.
func (s *SQLiteStore) Find(key string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow("SELECT blob FROM snippets WHERE key = ?", key).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying snippet blob: %w", err)
	}
	return blob, nil
}

// Put stores blob under key, replacing any previous entry.
func (s *SQLiteStore) Put(key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO snippets (key, blob) VALUES (?, ?)",
		key, blob,
	)
	if err != nil {
		return fmt.Errorf("saving snippet blob: %w", err)
	}
	return nil
}
