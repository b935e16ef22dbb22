package blob

import (
	"context"
	"reflect"
	"testing"
)

func newFSStore(t *testing.T) *FSStore {
	t.Helper()
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new fs store: %v", err)
	}
	return s
}

func TestFSStoreRoundTrip(t *testing.T) {
	s := newFSStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "snapshots/a.json", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "snapshots/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("unexpected payload %s", got)
	}

	if err := s.Delete(ctx, "snapshots/a.json"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "snapshots/a.json"); err == nil {
		t.Fatalf("expected error after delete")
	}
}

func TestFSStoreListByPrefix(t *testing.T) {
	s := newFSStore(t)
	ctx := context.Background()

	for _, key := range []string{"snapshots/b.json", "snapshots/a.json", "exports/c.json"} {
		if err := s.Put(ctx, key, []byte("{}")); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	keys, err := s.List(ctx, "snapshots/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"snapshots/a.json", "snapshots/b.json"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	s := newFSStore(t)
	ctx := context.Background()

	for _, key := range []string{"../escape.json", "/etc/passwd", "a/../../b"} {
		if err := s.Put(ctx, key, []byte("x")); err == nil {
			t.Fatalf("expected key %q to be rejected", key)
		}
		if _, err := s.Get(ctx, key); err == nil {
			t.Fatalf("expected get of %q to be rejected", key)
		}
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("unexpected payload %s", got)
	}
	if _, err := s.Get(ctx, "absent"); err == nil {
		t.Fatalf("expected error for absent key")
	}

	if err := s.Put(ctx, "k2", []byte("v2")); err != nil {
		t.Fatalf("put: %v", err)
	}
	keys, err := s.List(ctx, "k")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}

	if err := s.Delete(ctx, "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "k1"); err == nil {
		t.Fatalf("expected error after delete")
	}
}
