package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// slotFileName is the fixed name of the inventory slot inside the data dir.
const slotFileName = "inventory.json"

// FileStore persists the slot as a single JSON file in the data directory.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store under dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, slotFileName)}, nil
}

// Path returns the slot file path.
func (f *FileStore) Path() string { return f.path }

// Load implements Store.
func (f *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return data, nil
}

// Save implements Store. The write goes to a temp file in the same
// directory and is renamed over the slot, so a crash mid-write never
// leaves a truncated slot behind.
func (f *FileStore) Save(data []byte) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, slotFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp slot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp slot: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace slot: %w", err)
	}
	return nil
}

// Close implements Store.
func (f *FileStore) Close() error { return nil }
