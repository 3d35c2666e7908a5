// Package store persists the session's snapshot: a single serialized
// document under a fixed key, overwritten wholesale on every write.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Key is the fixed identifier the snapshot is stored under.
const Key = "currentConfig"

// ErrNoSnapshot is returned by Load when nothing has been stored yet.
var ErrNoSnapshot = errors.New("no stored snapshot")

// Store holds one snapshot.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStore keeps the snapshot in a single file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path. The parent directory is
// created if it does not exist.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = filepath.Join(DefaultDir(), Key+".json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating state directory %s: %w", filepath.Dir(path), err)
	}
	return &FileStore{path: path}, nil
}

// DefaultDir returns the default state directory.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state/skin-studio.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "skin-studio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return filepath.Join(os.TempDir(), "skin-studio-state")
		}
		return filepath.Join("/tmp", "skin-studio-state")
	}
	return filepath.Join(home, ".local", "state", "skin-studio")
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. Returns ErrNoSnapshot if the file does not exist.
func (s *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", s.path, err)
	}
	return data, nil
}

// Save writes the snapshot atomically using a temp file and rename.
func (s *FileStore) Save(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("renaming temp snapshot to %s: %w", s.path, err)
	}

	success = true
	return nil
}

// MemoryStore keeps the snapshot in memory.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// Load returns a copy of the stored snapshot.
func (m *MemoryStore) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoSnapshot
	}
	return append([]byte(nil), m.data...), nil
}

// Save replaces the stored snapshot.
func (m *MemoryStore) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
