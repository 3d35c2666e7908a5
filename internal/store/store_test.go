package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "nested", "currentConfig.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Save([]byte(`{"name":"a"}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save([]byte(`{"name":"b"}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != `{"name":"b"}` {
		t.Errorf("loaded %s, want the last write", data)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the snapshot file, found %d entries", len(entries))
	}
}

func TestFileStoreMissing(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("error = %v, want ErrNoSnapshot", err)
	}
}

func TestDefaultDirXDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	if got := DefaultDir(); got != filepath.Join("/xdg/state", "skin-studio") {
		t.Errorf("DefaultDir = %q", got)
	}
}

func TestMemoryStore(t *testing.T) {
	var m MemoryStore
	if _, err := m.Load(); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("empty store error = %v", err)
	}

	buf := []byte("x")
	if err := m.Save(buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'y'

	data, err := m.Load()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x" {
		t.Errorf("store aliased caller buffer: %s", data)
	}
	if m.Saves() != 1 {
		t.Errorf("saves = %d", m.Saves())
	}
}
