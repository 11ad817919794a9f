package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMappedStore(t *testing.T) {
	loc := filepath.Join(os.TempDir(), "seqring_mappedstore_test.tmp")

	if _, err := os.Stat(loc); err == nil {
		if err = os.Remove(loc); err != nil {
			t.Fatal("Cannot proceed with test as cannot remove stale file")
		}
	}

	s, err := NewMappedStore(loc, 10, true)
	if err != nil {
		t.Fatal("Cannot proceed with test as create store failed:", err)
	}

	if s.Location() != loc {
		t.Errorf("expected location %v, got %v", loc, s.Location())
	}

	if _, err = os.Stat(loc); err != nil {
		t.Fatalf("No File created at %v despite the store being initialized", loc)
	}

	if s.Len() != 10 {
		t.Fatalf("expected a store of 10 bytes, got %v", s.Len())
	}

	s.Bytes()[5] = 'x'
	if err = s.Flush(); err != nil {
		t.Fatal("Cannot flush MappedStore:", err)
	}

	data, err := os.ReadFile(loc)
	if err != nil {
		t.Fatal("Cannot read data from memory mapped file")
	}

	if len(data) != 10 || data[5] != 'x' {
		t.Error("Data written in store not getting reflected in file")
	}

	testClose(s, loc, t)
}

func TestMappedStoreKeepFile(t *testing.T) {
	loc := filepath.Join(t.TempDir(), "nested", "keep.tmp")

	s, err := NewMappedStore(loc, 4, false)
	if err != nil {
		t.Fatal(err)
	}

	if err = s.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err = os.Stat(loc); err != nil {
		t.Errorf("expected %v to survive Close, got %v", loc, err)
	}

	if err = s.Close(); err == nil {
		t.Error("expected error closing an already closed mapping")
	}
}

func TestMappedStoreInvalidSize(t *testing.T) {
	loc := filepath.Join(t.TempDir(), "invalid.tmp")

	if _, err := NewMappedStore(loc, 0, true); err == nil {
		t.Error("expected error mapping an empty store")
	}
}

func testClose(s *MappedStore, loc string, t *testing.T) {
	if err := s.Close(); err != nil {
		t.Error(err)
	}

	if _, err := os.Stat(loc); err == nil {
		t.Error("Memory Mapped File not getting deleted on Close")
	}
}
