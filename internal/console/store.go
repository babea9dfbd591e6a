package console

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// LoadState describes the lifecycle of a collection store
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateReady
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Store is an in-memory cache of the last-fetched collection plus its loading
// and error state. The remote system stays the source of truth: after any
// successful mutation the collection is reloaded, never patched locally.
type Store[T any] struct {
	mu      sync.Mutex
	state   LoadState
	items   []T
	loadErr error
	loaded  bool // at least one load has succeeded
	gen     uint64
	log     *zap.Logger
}

// NewStore creates an empty store in the Idle state
func NewStore[T any](log *zap.Logger) *Store[T] {
	return &Store[T]{log: log}
}

// Load fetches the collection and replaces the cached one. A slow response
// superseded by a newer Load or Clear is discarded: each call bumps a
// generation counter and the result is only applied when the generation still
// matches at resolution time.
//
// A failed first load yields an empty collection plus the error. A failed
// refresh after a successful load keeps the previously displayed collection;
// a populated table is never blanked by a background reload failure.
func (s *Store[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = StateLoading
	s.mu.Unlock()

	items, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		// A newer load or a clear won; drop this result
		s.log.Debug("Discarding superseded load result", zap.Uint64("generation", gen))
		return nil
	}

	if err != nil {
		s.state = StateFailed
		s.loadErr = err
		if !s.loaded {
			s.items = nil
		} else {
			s.log.Warn("Refresh failed, keeping last-known-good collection", zap.Error(err))
		}
		return err
	}

	s.items = items
	s.loaded = true
	s.state = StateReady
	s.loadErr = nil
	return nil
}

// Clear empties the collection immediately and invalidates any in-flight
// load, so stale cross-scope rows never show up after a scope switch.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.items = nil
	s.loaded = false
	s.loadErr = nil
	s.state = StateIdle
}

// Items returns a copy of the cached collection
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// State returns the current lifecycle state
func (s *Store[T]) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the load error, nil when the last load succeeded
func (s *Store[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Loaded reports whether at least one load has completed successfully
func (s *Store[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}
