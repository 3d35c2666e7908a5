// Package cache keeps the last good copy of every document fetched over
// HTTP, so a later run without network access can fall back to it.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Cache stores fetched content keyed by the hash of its location. Each
// entry records the hash of its content and is verified on retrieval.
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir. The directory is created on the first
// Put.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// DefaultDir returns the default cache directory.
// Uses XDG_CACHE_HOME if set, otherwise ~/.cache/skin-studio.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "skin-studio")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return filepath.Join(os.TempDir(), "skin-studio-cache")
		}
		return filepath.Join("/tmp", "skin-studio-cache")
	}
	return filepath.Join(home, ".cache", "skin-studio")
}

// Get returns the cached content for location.
// Returns nil, false if not cached. A corrupt entry is removed and reported
// as a miss.
func (c *Cache) Get(location string) ([]byte, bool, error) {
	path := c.entryPath(location)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry for %s: %w", location, err)
	}

	sum, content, ok := bytes.Cut(data, []byte("\n"))
	if !ok || string(sum) != ComputeHash(content) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return content, true, nil
}

// Put stores content for location, replacing any previous entry.
func (c *Cache) Put(location string, content []byte) error {
	path := c.entryPath(location)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache subdirectory: %w", err)
	}

	// Atomic write: temp file + rename.
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating cache temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.WriteString(ComputeHash(content) + "\n"); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing cache temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming cache temp file: %w", err)
	}

	success = true
	return nil
}

// Path returns the cache directory path.
func (c *Cache) Path() string {
	return c.dir
}

func (c *Cache) entryPath(location string) string {
	key := ComputeHash([]byte(location))
	return filepath.Join(c.dir, "fetched", key[:2], key)
}

// ComputeHash computes the SHA256 hash of content and returns the hex string.
func ComputeHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}
