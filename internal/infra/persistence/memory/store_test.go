package memory

import (
	"bytes"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore()

	if _, ok, err := s.LoadDataset(); ok || err != nil {
		t.Fatalf("expected empty slot, ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"meta":{"version":"1.0"}}`)
	if err := s.SaveDataset(payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.LoadDataset()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("expected %s, got %s", payload, got)
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	payload := []byte("original")
	if err := s.SaveDataset(payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload[0] = 'X'

	got, _, _ := s.LoadDataset()
	if string(got) != "original" {
		t.Fatalf("store must not alias caller buffers, got %s", got)
	}
	got[0] = 'Y'
	again, _, _ := s.LoadDataset()
	if string(again) != "original" {
		t.Fatalf("load must return fresh copies, got %s", again)
	}
}

func TestClearKeepsVersion(t *testing.T) {
	s := NewStore()
	if err := s.SetVersion("v3"); err != nil {
		t.Fatalf("set version: %v", err)
	}
	if err := s.SaveDataset([]byte("{}")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.LoadDataset(); ok {
		t.Fatalf("clear should drop the document slot")
	}
	v, err := s.Version()
	if err != nil || v != "v3" {
		t.Fatalf("version should survive clear, got %q err=%v", v, err)
	}
}
