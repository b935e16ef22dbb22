// Package sqlite persists the dataset cache to a single SQLite table as
// JSON blobs keyed by slot.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"archcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.CacheStore = (*Store)(nil)

const (
	slotDataset = "dataset"
	slotVersion = "version"
)

// Store is a SQLite-backed cache store. The whole document lives in one
// slot of the state table, the version marker in another.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens or creates the cache database at path, defaulting to
// archcore.db in the working directory.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "archcore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		slot TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) readSlot(slot string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM state WHERE slot = ?`, slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", slot, err)
	}
	return payload, true, nil
}

func (s *Store) writeSlot(slot string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(
		`INSERT INTO state(slot,payload) VALUES(?,?) ON CONFLICT(slot) DO UPDATE SET payload=excluded.payload`,
		slot, payload,
	); err != nil {
		return fmt.Errorf("upsert %s: %w", slot, err)
	}
	return nil
}

// LoadDataset returns the cached document bytes.
func (s *Store) LoadDataset() ([]byte, bool, error) {
	return s.readSlot(slotDataset)
}

// SaveDataset overwrites the document slot.
func (s *Store) SaveDataset(payload []byte) error {
	return s.writeSlot(slotDataset, payload)
}

// Version returns the stored version marker, or "" when unset.
func (s *Store) Version() (string, error) {
	payload, ok, err := s.readSlot(slotVersion)
	if err != nil || !ok {
		return "", err
	}
	return string(payload), nil
}

// SetVersion overwrites the version marker.
func (s *Store) SetVersion(version string) error {
	return s.writeSlot(slotVersion, []byte(version))
}

// Clear drops the document slot, keeping the version marker.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM state WHERE slot = ?`, slotDataset); err != nil {
		return fmt.Errorf("delete %s: %w", slotDataset, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
