package core

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"archcore/pkg/domain"
)

type fakeCache struct {
	mu      sync.Mutex
	payload []byte
	ok      bool
	version string
	saves   int
	loadErr error
	saveErr error
}

func (c *fakeCache) LoadDataset() ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loadErr != nil {
		return nil, false, c.loadErr
	}
	return c.payload, c.ok, nil
}

func (c *fakeCache) SaveDataset(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saveErr != nil {
		return c.saveErr
	}
	c.payload = append([]byte(nil), payload...)
	c.ok = true
	c.saves++
	return nil
}

func (c *fakeCache) Version() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, nil
}

func (c *fakeCache) SetVersion(version string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version = version
	return nil
}

func (c *fakeCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = nil
	c.ok = false
	return nil
}

func (c *fakeCache) Close() error { return nil }

func (c *fakeCache) saveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

type fakeSeed struct {
	payload []byte
	err     error
}

func (s *fakeSeed) Fetch(context.Context) ([]byte, error) { return s.payload, s.err }

type fakeRemote struct {
	mu    sync.Mutex
	saves int
	err   error
}

func (r *fakeRemote) Save(_ context.Context, _ []byte) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	r.saves++
	return "2026-01-01T00:00:00Z", nil
}

func (r *fakeRemote) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func seedPayload(t *testing.T) []byte {
	t.Helper()
	data := domain.EmptyDataset()
	data.Applications = []domain.Application{{ID: "APP-001", Name: "Seeded App"}}
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	return payload
}

func TestGatewayLoadFromCache(t *testing.T) {
	store := NewStore()
	cache := &fakeCache{version: "v1"}
	cached := domain.EmptyDataset()
	cached.Applications = []domain.Application{{ID: "APP-777", Name: "Cached App"}}
	cache.payload, _ = json.Marshal(cached)
	cache.ok = true

	g := NewGateway(store, cache, nil, &fakeSeed{payload: seedPayload(t)}, GatewayOptions{CacheVersion: "v1"})
	defer func() { _ = g.Close() }()

	if source := g.Load(context.Background()); source != "cache" {
		t.Fatalf("expected cache source, got %s", source)
	}
	if _, ok := store.AppByID("APP-777"); !ok {
		t.Fatalf("cached document should populate the store")
	}
}

func TestGatewayLoadVersionMismatchFallsBackToSeed(t *testing.T) {
	store := NewStore()
	cache := &fakeCache{version: "v1"}
	cached := domain.EmptyDataset()
	cache.payload, _ = json.Marshal(cached)
	cache.ok = true

	g := NewGateway(store, cache, nil, &fakeSeed{payload: seedPayload(t)}, GatewayOptions{CacheVersion: "v2"})
	defer func() { _ = g.Close() }()

	if source := g.Load(context.Background()); source != "seed" {
		t.Fatalf("expected seed source after invalidation, got %s", source)
	}
	if cache.version != "v2" {
		t.Fatalf("expected version marker updated, got %s", cache.version)
	}
	if _, ok := store.AppByID("APP-001"); !ok {
		t.Fatalf("seed document should populate the store")
	}
	if cache.saveCount() == 0 {
		t.Fatalf("seed load should persist the document back to the cache")
	}
}

func TestGatewayLoadCorruptCacheFallsBackToSeed(t *testing.T) {
	store := NewStore()
	cache := &fakeCache{payload: []byte("{broken"), ok: true}

	g := NewGateway(store, cache, nil, &fakeSeed{payload: seedPayload(t)}, GatewayOptions{})
	defer func() { _ = g.Close() }()

	if source := g.Load(context.Background()); source != "seed" {
		t.Fatalf("expected seed source, got %s", source)
	}
}

func TestGatewayLoadDegradesToEmpty(t *testing.T) {
	store := NewStore()
	cache := &fakeCache{loadErr: errors.New("disk gone")}

	g := NewGateway(store, cache, nil, &fakeSeed{err: errors.New("unreachable")}, GatewayOptions{})
	defer func() { _ = g.Close() }()

	if source := g.Load(context.Background()); source != "empty" {
		t.Fatalf("expected empty source, got %s", source)
	}
	snap := store.Snapshot()
	if snap.Applications == nil || len(snap.Applications) != 0 {
		t.Fatalf("expected empty non-nil collections, got %+v", snap.Applications)
	}
}

func TestGatewayLoadNoSeedConfigured(t *testing.T) {
	store := NewStore()
	g := NewGateway(store, &fakeCache{}, nil, nil, GatewayOptions{})
	defer func() { _ = g.Close() }()

	if source := g.Load(context.Background()); source != "empty" {
		t.Fatalf("expected empty source, got %s", source)
	}
}

func TestGatewayDebouncedPersistence(t *testing.T) {
	store := NewStore()
	cache := &fakeCache{}
	remote := &fakeRemote{}

	g := NewGateway(store, cache, remote, nil, GatewayOptions{
		CacheDebounce:  20 * time.Millisecond,
		RemoteDebounce: 20 * time.Millisecond,
	})
	defer func() { _ = g.Close() }()
	g.Start()

	for i := 0; i < 5; i++ {
		store.AddApp(domain.Application{Name: "Burst App"})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cache.saveCount() >= 1 && remote.saveCount() >= 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := cache.saveCount(); got != 1 {
		t.Fatalf("burst should coalesce into one cache save, got %d", got)
	}
	if got := remote.saveCount(); got != 1 {
		t.Fatalf("burst should coalesce into one remote save, got %d", got)
	}

	payload, ok, err := cache.LoadDataset()
	if err != nil || !ok {
		t.Fatalf("expected persisted payload, ok=%v err=%v", ok, err)
	}
	var persisted domain.Dataset
	if err := json.Unmarshal(payload, &persisted); err != nil {
		t.Fatalf("persisted payload should be valid JSON: %v", err)
	}
	if len(persisted.Applications) != 5 {
		t.Fatalf("expected 5 persisted apps, got %d", len(persisted.Applications))
	}
}

func TestGatewayRemoteFailureIsSwallowed(t *testing.T) {
	store := NewStore()
	cache := &fakeCache{}
	remote := &fakeRemote{err: errors.New("server down")}

	g := NewGateway(store, cache, remote, nil, GatewayOptions{
		CacheDebounce:  5 * time.Millisecond,
		RemoteDebounce: 5 * time.Millisecond,
	})
	g.Start()

	store.AddApp(domain.Application{Name: "App"})
	g.Flush()

	if cache.saveCount() != 1 {
		t.Fatalf("cache save should succeed independently, got %d", cache.saveCount())
	}
	if err := g.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestGatewayLastUpdatedOnSerializedCopyOnly(t *testing.T) {
	store := NewStore()
	store.Replace(domain.EmptyDataset())
	fixed := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	g := NewGateway(store, &fakeCache{}, nil, nil, GatewayOptions{Clock: func() time.Time { return fixed }})
	defer func() { _ = g.Close() }()

	payload, err := g.ExportJSON()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var exported domain.Dataset
	if err := json.Unmarshal(payload, &exported); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if exported.Meta.LastUpdated != "2026-05-01T08:00:00Z" {
		t.Fatalf("unexpected lastUpdated %q", exported.Meta.LastUpdated)
	}
	if store.Meta().LastUpdated != "" {
		t.Fatalf("in-store meta must stay untouched, got %q", store.Meta().LastUpdated)
	}
	if !strings.HasPrefix(string(payload), "{\n") {
		t.Fatalf("export should be indented")
	}
}

func TestGatewayImportJSON(t *testing.T) {
	store := NewStore()
	g := NewGateway(store, &fakeCache{}, nil, nil, GatewayOptions{})
	defer func() { _ = g.Close() }()

	if err := g.ImportJSON([]byte("not json")); err == nil {
		t.Fatalf("expected decode error")
	}
	if err := g.ImportJSON(seedPayload(t)); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, ok := store.AppByID("APP-001"); !ok {
		t.Fatalf("import should replace the document")
	}
}

func TestGatewayResetToSeed(t *testing.T) {
	store := NewStore()
	cache := &fakeCache{}
	g := NewGateway(store, cache, nil, &fakeSeed{payload: seedPayload(t)}, GatewayOptions{})
	defer func() { _ = g.Close() }()

	store.Replace(domain.EmptyDataset())
	store.AddApp(domain.Application{ID: "APP-LOCAL", Name: "Local Edit"})
	g.Flush()

	if source := g.ResetToSeed(context.Background()); source != "seed" {
		t.Fatalf("expected seed source, got %s", source)
	}
	if _, ok := store.AppByID("APP-LOCAL"); ok {
		t.Fatalf("local edits should be replaced by the seed")
	}
	if _, ok := store.AppByID("APP-001"); !ok {
		t.Fatalf("seed document should be loaded")
	}
}

type fakeArchive struct {
	mu   sync.Mutex
	keys []string
}

func (a *fakeArchive) Put(_ context.Context, key string, _ []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keys = append(a.keys, key)
	return nil
}

func TestGatewayArchiveSnapshot(t *testing.T) {
	store := NewStore()
	store.Replace(domain.EmptyDataset())
	archive := &fakeArchive{}
	fixed := time.Date(2026, 5, 1, 8, 30, 15, 0, time.UTC)

	g := NewGateway(store, &fakeCache{}, nil, nil, GatewayOptions{Archive: archive, Clock: func() time.Time { return fixed }})
	defer func() { _ = g.Close() }()

	key, err := g.ArchiveSnapshot(context.Background())
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	want := "snapshots/architecture_2026-05-01_083015.json"
	if key != want {
		t.Fatalf("expected key %s, got %s", want, key)
	}
	if len(archive.keys) != 1 || archive.keys[0] != want {
		t.Fatalf("unexpected archive writes: %v", archive.keys)
	}
}

func TestGatewayArchiveSnapshotWithoutArchive(t *testing.T) {
	store := NewStore()
	g := NewGateway(store, &fakeCache{}, nil, nil, GatewayOptions{})
	defer func() { _ = g.Close() }()

	key, err := g.ArchiveSnapshot(context.Background())
	if err != nil || key != "" {
		t.Fatalf("expected silent no-op, got key=%q err=%v", key, err)
	}
}
