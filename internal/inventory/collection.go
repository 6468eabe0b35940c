// Package inventory holds the in-memory prize collection, the debounced
// write-back to the store, and the filtered/sorted projection the UI
// displays.
package inventory

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"clawtrack/internal/prize"
	"clawtrack/internal/store"
)

// Collection is the ordered set of prize records and the single source of
// truth for the UI. Mutations notify the OnChange hook, which drives the
// debounced persistence.
type Collection struct {
	mu       sync.Mutex
	records  []prize.Record
	onChange func([]prize.Record)
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// SetOnChange registers the hook invoked with a snapshot after every
// mutation. Hydrate does not fire it.
func (c *Collection) SetOnChange(fn func([]prize.Record)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Hydrate replaces the contents with records loaded from the store. It is
// silent: the initial load must not look like a user change.
func (c *Collection) Hydrate(records []prize.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append([]prize.Record(nil), records...)
}

// Records returns a copy of the collection in order.
func (c *Collection) Records() []prize.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Get returns the record with the given identifier.
func (c *Collection) Get(id string) (prize.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		if r.Identifier == id {
			return r, true
		}
	}
	return prize.Record{}, false
}

// Upsert replaces the record sharing rec's identifier in place, or appends
// rec when the identifier is new. Edits never change a record's position.
func (c *Collection) Upsert(rec prize.Record) {
	c.mu.Lock()
	replaced := false
	for i, r := range c.records {
		if r.Identifier == rec.Identifier {
			c.records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		c.records = append(c.records, rec)
	}
	c.notifyLocked()
}

// Remove deletes the record with the given identifier and reports whether
// one was found.
func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	for i, r := range c.records {
		if r.Identifier == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			c.notifyLocked()
			return true
		}
	}
	c.mu.Unlock()
	return false
}

// AdjustQuantity adds delta to the record's quantity, clamping at zero,
// and reports whether the record exists.
func (c *Collection) AdjustQuantity(id string, delta int) bool {
	c.mu.Lock()
	for i, r := range c.records {
		if r.Identifier == id {
			q := r.Quantity + delta
			if q < 0 {
				q = 0
			}
			c.records[i].Quantity = q
			c.notifyLocked()
			return true
		}
	}
	c.mu.Unlock()
	return false
}

func (c *Collection) snapshotLocked() []prize.Record {
	out := make([]prize.Record, len(c.records))
	copy(out, c.records)
	return out
}

// notifyLocked snapshots, releases the lock, and fires the change hook.
// The hook runs unlocked so it may call back into the collection.
func (c *Collection) notifyLocked() {
	fn := c.onChange
	var snap []prize.Record
	if fn != nil {
		snap = c.snapshotLocked()
	}
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

// Load reads and migrates the stored collection. A missing slot yields an
// empty collection; a decode failure is logged and likewise yields an
// empty collection — the load still counts as complete so hydration can
// proceed.
func Load(st store.Store, log *zap.Logger) []prize.Record {
	data, err := st.Load()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn("failed to load inventory, starting empty", zap.Error(err))
		}
		return []prize.Record{}
	}
	return prize.Migrate(data)
}
