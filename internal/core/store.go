// Package core implements the in-memory enterprise-architecture dataset
// store: transactional CRUD with referential-integrity cascades, derived
// analytics, and change capture feeding the persistence gateway.
package core

import (
	"sync"
	"time"

	"archcore/pkg/domain"
)

// Store owns the dataset document. All mutations are serialized behind a
// single lock and applied synchronously in call order; reads hand out deep
// clones so callers can never alias live state.
type Store struct {
	mu        sync.RWMutex
	data      domain.Dataset
	nowFn     func() time.Time
	listeners []func(domain.Change)
}

// NewStore returns a store holding an empty document.
func NewStore() *Store {
	return &Store{
		data:  domain.EmptyDataset(),
		nowFn: time.Now,
	}
}

// SetNowFunc overrides the clock used for audit timestamps and deadline
// arithmetic. Passing nil restores the real clock.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		fn = time.Now
	}
	s.nowFn = fn
}

func (s *Store) now() time.Time {
	return s.nowFn()
}

// Subscribe registers a listener invoked after every committed mutation.
// Listeners run outside the store lock, in registration order, on the
// mutating goroutine; they receive each change exactly once.
func (s *Store) Subscribe(fn func(domain.Change)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// commit runs fn under the write lock and notifies listeners afterwards
// when fn reports a change was applied.
func (s *Store) commit(fn func(d *domain.Dataset) (domain.Change, bool)) {
	s.mu.Lock()
	change, ok := fn(&s.data)
	listeners := s.listeners
	s.mu.Unlock()
	if !ok {
		return
	}
	for _, listener := range listeners {
		listener(change)
	}
}

// Snapshot returns a deep clone of the whole document.
func (s *Store) Snapshot() domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Replace swaps the whole document, for imports and load. The incoming
// dataset is cloned so the caller keeps no handle into live state.
func (s *Store) Replace(data domain.Dataset) {
	s.commit(func(d *domain.Dataset) (domain.Change, bool) {
		before := domain.NewChangePayloadFromValue(*d)
		*d = data.Clone()
		return domain.Change{
			Entity: domain.EntityDataset,
			Action: domain.ActionReplace,
			Before: before,
			After:  domain.NewChangePayloadFromValue(*d),
		}, true
	})
}

// Meta returns the document metadata block.
func (s *Store) Meta() domain.Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Meta
}

// UpdateMeta applies mutate to the document metadata.
func (s *Store) UpdateMeta(mutate func(*domain.Meta)) {
	s.commit(func(d *domain.Dataset) (domain.Change, bool) {
		before := domain.NewChangePayloadFromValue(d.Meta)
		mutate(&d.Meta)
		return domain.Change{
			Entity: domain.EntityDataset,
			Action: domain.ActionUpdate,
			Before: before,
			After:  domain.NewChangePayloadFromValue(d.Meta),
		}, true
	})
}

// Enums returns the configurable value catalogues.
func (s *Store) Enums() domain.Enums {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Enums.Clone()
}
