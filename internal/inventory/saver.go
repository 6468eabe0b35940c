package inventory

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"clawtrack/internal/prize"
	"clawtrack/internal/store"
)

// Status is the save indicator state shown in the UI footer.
type Status int

const (
	StatusIdle Status = iota
	StatusSaving
	StatusSaved
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	default:
		return "idle"
	}
}

// Default timings for the debounced write-back.
const (
	DefaultSaveDelay   = 500 * time.Millisecond
	DefaultSavedNotice = 3 * time.Second
)

// SaverOptions configures a Saver. Zero-value fields take defaults.
type SaverOptions struct {
	// SaveDelay is how long after the last change the write fires.
	SaveDelay time.Duration

	// SavedNotice is how long the "saved" indicator stays up.
	SavedNotice time.Duration

	// OnStatus, if set, is invoked on every status transition, after the
	// transition has been applied and the saver's lock released. It runs
	// on whichever goroutine triggered the transition and must not block;
	// hand slow consumers off to their own goroutine.
	OnStatus func(Status)

	Logger *zap.Logger
}

// Saver debounces collection changes into store writes.
//
// Each change bumps a generation counter and reschedules the write timer;
// a fired write that finds its captured generation superseded abandons
// itself, so the store only ever receives the latest state. Writes are
// suppressed entirely until MarkHydrated, which keeps an empty pre-load
// collection from clobbering existing data.
type Saver struct {
	mu sync.Mutex

	store  store.Store
	delay  time.Duration
	notice time.Duration
	log    *zap.Logger

	onStatus func(Status)

	hydrated bool
	closed   bool
	dirty    bool
	gen      uint64
	pending  []prize.Record
	status   Status

	saveTimer   *time.Timer
	noticeTimer *time.Timer
}

// NewSaver creates a saver writing to st.
func NewSaver(st store.Store, opts SaverOptions) *Saver {
	if opts.SaveDelay <= 0 {
		opts.SaveDelay = DefaultSaveDelay
	}
	if opts.SavedNotice <= 0 {
		opts.SavedNotice = DefaultSavedNotice
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Saver{
		store:    st,
		delay:    opts.SaveDelay,
		notice:   opts.SavedNotice,
		log:      opts.Logger,
		onStatus: opts.OnStatus,
	}
}

// SetOnStatus replaces the status callback. Same contract as
// SaverOptions.OnStatus.
func (s *Saver) SetOnStatus(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStatus = fn
}

// MarkHydrated enables writes. Call once, after the initial load attempt
// has finished — whether or not it succeeded.
func (s *Saver) MarkHydrated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrated = true
}

// Status returns the current indicator state.
func (s *Saver) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// RecordChange notes a new collection state and schedules its write. The
// records slice is snapshotted; the caller may keep mutating its copy.
// Changes before hydration are dropped.
func (s *Saver) RecordChange(records []prize.Record) {
	s.mu.Lock()
	if s.closed || !s.hydrated {
		s.mu.Unlock()
		return
	}

	s.gen++
	gen := s.gen
	s.pending = make([]prize.Record, len(records))
	copy(s.pending, records)
	s.dirty = true

	// A new save cycle begins: the indicator goes to "saving" now and any
	// scheduled revert to idle is void.
	notify := s.setStatusLocked(StatusSaving)
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}

	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.delay, func() {
		s.fire(gen)
	})
	s.mu.Unlock()
	notify()
}

// fire is the timer body: write the pending snapshot unless a newer
// generation has superseded this one or a Flush already wrote it.
func (s *Saver) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen || !s.dirty {
		// Stale, or the state already reached the store.
		s.mu.Unlock()
		return
	}
	notify, _ := s.writeLocked()
	s.mu.Unlock()
	notify()
}

// Flush writes the latest pending state immediately, cancelling the
// scheduled write. No-op when nothing is pending. Called on quit so the
// last burst of edits is never lost to a cancelled timer.
func (s *Saver) Flush() error {
	s.mu.Lock()
	if s.closed || !s.dirty {
		s.mu.Unlock()
		return nil
	}
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	notify, err := s.writeLocked()
	s.mu.Unlock()
	notify()
	return err
}

// Close cancels both timers. Pending state is not written; call Flush
// first if it should be.
func (s *Saver) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}
}

// writeLocked serializes and stores the pending snapshot. An empty
// collection is a valid state and is written as an empty list. The
// returned func delivers the status callback and must be invoked after
// the lock is released.
func (s *Saver) writeLocked() (func(), error) {
	data, err := json.Marshal(s.pending)
	if err != nil {
		s.log.Error("failed to encode inventory", zap.Error(err))
		return s.setStatusLocked(StatusIdle), fmt.Errorf("failed to encode inventory: %w", err)
	}

	if err := s.store.Save(data); err != nil {
		// No retry: the next change will attempt again with fresher state.
		s.log.Error("failed to save inventory", zap.Error(err))
		return s.setStatusLocked(StatusIdle), fmt.Errorf("failed to save inventory: %w", err)
	}

	s.dirty = false
	notify := s.setStatusLocked(StatusSaved)
	s.log.Debug("inventory saved", zap.Int("records", len(s.pending)))

	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}
	s.noticeTimer = time.AfterFunc(s.notice, func() {
		s.mu.Lock()
		revert := func() {}
		if !s.closed && s.status == StatusSaved {
			revert = s.setStatusLocked(StatusIdle)
		}
		s.mu.Unlock()
		revert()
	})
	return notify, nil
}

// setStatusLocked applies a status transition and returns the callback
// invocation to run once the lock is released. Invoking the callback
// under the lock would deadlock consumers that call back into the Saver.
func (s *Saver) setStatusLocked(st Status) func() {
	if s.status == st {
		return func() {}
	}
	s.status = st
	fn := s.onStatus
	if fn == nil {
		return func() {}
	}
	return func() { fn(st) }
}
