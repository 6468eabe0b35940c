package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	sqliteFileName = "clawtrack.db"

	// slotKey is the fixed key the collection lives under.
	slotKey = "inventory"
)

// SQLiteStore persists the slot in a key-value table of a local sqlite
// database. Same slot semantics as FileStore, different container.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database under dir and
// ensures the slots table exists.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, sqliteFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The store is single-writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create slots table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load implements Store.
func (s *SQLiteStore) Load() ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, slotKey).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	return data, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		slotKey, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save slot: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
