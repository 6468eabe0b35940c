package store

import "fmt"

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the store backend named by kind, rooted at dir. The memory
// backend ignores dir.
func Open(kind, dir string) (Store, error) {
	switch kind {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendSQLite:
		return NewSQLiteStore(dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", kind)
	}
}
