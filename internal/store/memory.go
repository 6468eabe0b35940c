package store

import "sync"

// MemoryStore keeps the slot in memory. Used by tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.Mutex
	data    []byte
	written bool
	saves   int

	// SaveErr, when set, is returned by the next Save. Lets tests exercise
	// the write-failure path.
	SaveErr error
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (m *MemoryStore) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.written {
		return nil, ErrNotFound
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

// Save implements Store.
func (m *MemoryStore) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.written = true
	m.saves++
	return nil
}

// SaveCount returns how many Saves have succeeded.
func (m *MemoryStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }

// Writes reports whether Save has ever succeeded.
func (m *MemoryStore) Writes() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.written
}
