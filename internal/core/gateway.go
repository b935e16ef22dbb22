package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"archcore/internal/observability"
	"archcore/pkg/domain"
)

// Default quiet periods for the two persistence sinks. The cache write is
// cheap and kept tight; the remote save batches rapid edits harder.
const (
	DefaultCacheDebounce  = 500 * time.Millisecond
	DefaultRemoteDebounce = 2 * time.Second
)

// SnapshotArchive receives timestamped document snapshots for long-term
// retention, on demand rather than per mutation.
type SnapshotArchive interface {
	Put(ctx context.Context, key string, payload []byte) error
}

// GatewayOptions tune the persistence gateway. Zero values select the
// defaults.
type GatewayOptions struct {
	// CacheVersion invalidates the cached document on mismatch, forcing a
	// reload from the seed. Bump it when the seed shape changes.
	CacheVersion   string
	CacheDebounce  time.Duration
	RemoteDebounce time.Duration
	Logger         *slog.Logger
	Metrics        *observability.Metrics
	Archive        SnapshotArchive
	// Clock drives the lastUpdated stamps. Defaults to time.Now.
	Clock func() time.Time
}

// Gateway wires the store to its persistence sinks: every committed
// mutation schedules a debounced write to the local cache and a debounced
// best-effort save to the remote sink. Load failures degrade stepwise
// from cache to seed to an empty document and never block startup.
type Gateway struct {
	store   *Store
	cache   domain.CacheStore
	remote  domain.RemoteSink
	seed    domain.SeedSource
	archive SnapshotArchive
	log     *slog.Logger
	metrics *observability.Metrics
	nowFn   func() time.Time
	version string

	cacheDeb  *debouncer
	remoteDeb *debouncer
}

// NewGateway builds a gateway over the given store and cache. The remote
// sink and seed source may be nil, which disables server saves and seed
// bootstrap respectively. Call Start to begin observing mutations.
func NewGateway(store *Store, cache domain.CacheStore, remote domain.RemoteSink, seed domain.SeedSource, opts GatewayOptions) *Gateway {
	if opts.CacheDebounce <= 0 {
		opts.CacheDebounce = DefaultCacheDebounce
	}
	if opts.RemoteDebounce <= 0 {
		opts.RemoteDebounce = DefaultRemoteDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	g := &Gateway{
		store:   store,
		cache:   cache,
		remote:  remote,
		seed:    seed,
		archive: opts.Archive,
		log:     opts.Logger,
		metrics: opts.Metrics,
		nowFn:   opts.Clock,
		version: opts.CacheVersion,
	}
	g.cacheDeb = newDebouncer(opts.CacheDebounce, g.persistCache)
	g.remoteDeb = newDebouncer(opts.RemoteDebounce, g.persistRemote)
	return g
}

// Start subscribes the gateway to store mutations. Call once, before the
// first mutation that should be persisted.
func (g *Gateway) Start() {
	g.store.Subscribe(func(change domain.Change) {
		if g.metrics != nil {
			g.metrics.MutationsTotal.WithLabelValues(string(change.Entity), string(change.Action)).Inc()
		}
		g.cacheDeb.Trigger()
		if g.remote != nil {
			g.remoteDeb.Trigger()
		}
	})
}

// Load populates the store: cache first, seed on miss or corruption,
// empty document when the seed also fails. A cache-version mismatch
// clears the cached document before reading, so stale shapes never load.
// Load itself never fails; the returned source names what was used.
func (g *Gateway) Load(ctx context.Context) string {
	if g.version != "" {
		stored, err := g.cache.Version()
		if err != nil {
			g.log.Warn("cache version probe failed", "error", err)
		} else if stored != g.version {
			g.log.Info("cache version mismatch, clearing cached document",
				"stored", stored, "expected", g.version)
			if err := g.cache.Clear(); err != nil {
				g.log.Warn("cache clear failed", "error", err)
			}
			if err := g.cache.SetVersion(g.version); err != nil {
				g.log.Warn("cache version update failed", "error", err)
			}
		}
	}

	payload, ok, err := g.cache.LoadDataset()
	if err != nil {
		g.log.Warn("cache read failed, falling back to seed", "error", err)
	} else if ok {
		var data domain.Dataset
		if err := json.Unmarshal(payload, &data); err != nil {
			g.log.Warn("cached document corrupt, falling back to seed", "error", err)
		} else {
			g.store.Replace(data)
			g.countLoad("cache")
			return "cache"
		}
	}

	if g.seed != nil {
		payload, err := g.seed.Fetch(ctx)
		if err == nil {
			var data domain.Dataset
			if err := json.Unmarshal(payload, &data); err == nil {
				g.store.Replace(data)
				g.persistCache()
				g.countLoad("seed")
				return "seed"
			}
			g.log.Error("seed document corrupt", "error", err)
		} else {
			g.log.Error("seed fetch failed", "error", err)
		}
	}

	g.store.Replace(domain.EmptyDataset())
	g.countLoad("empty")
	return "empty"
}

func (g *Gateway) countLoad(source string) {
	if g.metrics != nil {
		g.metrics.LoadsTotal.WithLabelValues(source).Inc()
	}
}

// snapshotJSON serializes the current document with a refreshed
// lastUpdated stamp. The stamp lives on the serialized copy only; the
// in-store document is untouched.
func (g *Gateway) snapshotJSON(indent bool) ([]byte, error) {
	data := g.store.Snapshot()
	data.Meta.LastUpdated = g.nowFn().UTC().Format(time.RFC3339)
	if indent {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

func (g *Gateway) persistCache() {
	start := time.Now()
	payload, err := g.snapshotJSON(false)
	if err != nil {
		g.countCacheSave("marshal_error")
		g.log.Error("snapshot marshal failed", "error", err)
		return
	}
	if err := g.cache.SaveDataset(payload); err != nil {
		g.countCacheSave("error")
		g.log.Warn("cache persist failed", "error", err)
		return
	}
	if g.version != "" {
		if err := g.cache.SetVersion(g.version); err != nil {
			g.log.Warn("cache version update failed", "error", err)
		}
	}
	g.countCacheSave("ok")
	if g.metrics != nil {
		g.metrics.SaveDuration.Observe(time.Since(start).Seconds())
	}
	g.log.Debug("dataset persisted to cache", "bytes", len(payload))
}

func (g *Gateway) countCacheSave(outcome string) {
	if g.metrics != nil {
		g.metrics.CacheSavesTotal.WithLabelValues(outcome).Inc()
	}
}

// persistRemote pushes the snapshot to the remote sink. Failures are
// logged and swallowed; a save is always best-effort.
func (g *Gateway) persistRemote() {
	if g.remote == nil {
		return
	}
	payload, err := g.snapshotJSON(false)
	if err != nil {
		g.log.Error("snapshot marshal failed", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stamp, err := g.remote.Save(ctx, payload)
	if err != nil {
		if g.metrics != nil {
			g.metrics.RemoteSavesTotal.WithLabelValues("error").Inc()
		}
		g.log.Warn("remote save failed", "error", err)
		return
	}
	if g.metrics != nil {
		g.metrics.RemoteSavesTotal.WithLabelValues("ok").Inc()
	}
	g.log.Info("dataset saved to remote", "timestamp", stamp)
}

// Flush forces any pending debounced saves to run now.
func (g *Gateway) Flush() {
	g.cacheDeb.Flush()
	g.remoteDeb.Flush()
}

// Close flushes pending saves, stops the debouncers, and closes the
// cache backend.
func (g *Gateway) Close() error {
	g.Flush()
	g.cacheDeb.Stop()
	g.remoteDeb.Stop()
	return g.cache.Close()
}

// ExportJSON returns the indented document with a fresh lastUpdated
// stamp, suitable for download or backup.
func (g *Gateway) ExportJSON() ([]byte, error) {
	return g.snapshotJSON(true)
}

// ImportJSON replaces the document with the given JSON payload. The
// replacement commits as a single mutation, so it flows through the
// debounced sinks like any other change.
func (g *Gateway) ImportJSON(payload []byte) error {
	var data domain.Dataset
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("decode import payload: %w", err)
	}
	g.store.Replace(data)
	return nil
}

// ResetToSeed drops the cached document and reloads, so the seed (or an
// empty document when no seed is configured) replaces local edits.
func (g *Gateway) ResetToSeed(ctx context.Context) string {
	if err := g.cache.Clear(); err != nil {
		g.log.Warn("cache clear failed", "error", err)
	}
	return g.Load(ctx)
}

// ArchiveSnapshot writes a timestamped export to the snapshot archive.
// No-op without a configured archive.
func (g *Gateway) ArchiveSnapshot(ctx context.Context) (string, error) {
	if g.archive == nil {
		return "", nil
	}
	payload, err := g.snapshotJSON(true)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("snapshots/architecture_%s.json", g.nowFn().UTC().Format("2006-01-02_150405"))
	if err := g.archive.Put(ctx, key, payload); err != nil {
		return "", fmt.Errorf("archive snapshot: %w", err)
	}
	g.log.Info("snapshot archived", "key", key)
	return key, nil
}
