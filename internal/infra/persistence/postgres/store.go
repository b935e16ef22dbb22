// Package postgres provides a Postgres-backed cache store mirroring the
// SQLite slot layout.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"archcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.CacheStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/archcore?sslmode=disable"

	slotDataset = "dataset"
	slotVersion = "version"
)

// sqlOpen is swapped in tests to stub the database.
var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store persists the dataset cache to a Postgres state table.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens a Postgres-backed cache using the provided DSN, falling
// back to a local default. The state table is created on startup.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		slot TEXT PRIMARY KEY,
		payload BYTEA NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) readSlot(slot string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM state WHERE slot = $1`, slot).Scan(&payload)
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
		`INSERT INTO state(slot,payload) VALUES($1,$2) ON CONFLICT(slot) DO UPDATE SET payload=excluded.payload`,
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
	if _, err := s.db.Exec(`DELETE FROM state WHERE slot = $1`, slotDataset); err != nil {
		return fmt.Errorf("delete %s: %w", slotDataset, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }
