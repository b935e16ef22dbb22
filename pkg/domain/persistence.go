package domain

import "context"

// CacheStore is the durable local cache the gateway writes after every
// mutation and reads back at load time. Implementations hold the
// serialized document in a single keyed slot plus a separate version
// slot used for cache invalidation.
type CacheStore interface {
	// LoadDataset returns the cached document bytes. ok is false when the
	// slot is empty; an error means the backend itself failed.
	LoadDataset() (payload []byte, ok bool, err error)
	// SaveDataset overwrites the document slot.
	SaveDataset(payload []byte) error
	// Version returns the stored cache-format version marker, or "" when
	// none has been written yet.
	Version() (string, error)
	// SetVersion overwrites the version marker.
	SetVersion(version string) error
	// Clear drops the document slot, leaving the version marker intact.
	Clear() error
	// Close releases backend resources.
	Close() error
}

// RemoteSink receives best-effort full-document saves. Failures are
// logged and swallowed by the gateway, never surfaced to mutators.
type RemoteSink interface {
	// Save posts the serialized document and returns the server-side
	// acknowledgment timestamp.
	Save(ctx context.Context, payload []byte) (timestamp string, err error)
}

// SeedSource provides the bootstrap document for first-run state.
type SeedSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}
