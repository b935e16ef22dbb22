// Package memory provides an in-memory cache store used for tests and
// ephemeral environments.
package memory

import (
	"sync"

	"archcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.CacheStore = (*Store)(nil)

// Store keeps the cached document and version marker in process memory.
type Store struct {
	mu      sync.RWMutex
	payload []byte
	ok      bool
	version string
}

// NewStore returns an empty in-memory cache.
func NewStore() *Store {
	return &Store{}
}

// LoadDataset returns the cached document bytes, if any.
func (s *Store) LoadDataset() ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ok {
		return nil, false, nil
	}
	return append([]byte(nil), s.payload...), true, nil
}

// SaveDataset overwrites the document slot.
func (s *Store) SaveDataset(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = append([]byte(nil), payload...)
	s.ok = true
	return nil
}

// Version returns the stored version marker.
func (s *Store) Version() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version, nil
}

// SetVersion overwrites the version marker.
func (s *Store) SetVersion(version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = version
	return nil
}

// Clear drops the document slot, keeping the version marker.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = nil
	s.ok = false
	return nil
}

// Close is a no-op for the in-memory cache.
func (s *Store) Close() error { return nil }
