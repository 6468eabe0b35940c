// Package store provides the persistent slot the inventory is saved to.
// The collection is one value under one fixed key; backends differ only in
// where that slot lives (flat file, sqlite database, or memory).
package store

import "errors"

// ErrNotFound is returned by Load when the slot has never been written.
var ErrNotFound = errors.New("store: slot not found")

// Store is a single named slot holding the encoded collection.
type Store interface {
	// Load returns the slot contents, or ErrNotFound on first run.
	Load() ([]byte, error)

	// Save replaces the slot contents. The write is atomic per backend.
	Save(data []byte) error

	// Close releases backend resources.
	Close() error
}
