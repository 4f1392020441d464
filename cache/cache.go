// Package cache is an on-disk JSON key-value store with TTL expiry.
// Entries live as sha256(key).json files; expired or unreadable entries
// behave as misses and are removed. No eviction policy beyond TTL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// envelope wraps a cached payload with its expiry.
type envelope struct {
	Key       string          `json:"key"`
	SavedAt   time.Time       `json:"saved_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Cache stores JSON-serializable values under string keys.
type Cache struct {
	dir string
	now func() time.Time
}

// New creates a Cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir, now: time.Now}
}

// Key builds a cache key from a prefix and its parts.
func Key(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// Get unmarshals the cached value for key into v. Returns false on a miss:
// absent, expired, or unreadable entries all count as misses.
func (c *Cache) Get(key string, v any) (bool, error) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading cache entry: %w", err)
	}

	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		// Corrupt entry: drop it and treat as a miss.
		_ = os.Remove(c.path(key))
		return false, nil
	}

	if c.now().After(e.ExpiresAt) {
		_ = os.Remove(c.path(key))
		return false, nil
	}

	if err := json.Unmarshal(e.Payload, v); err != nil {
		return false, fmt.Errorf("unmarshaling cached payload: %w", err)
	}
	return true, nil
}

// Set stores v under key with the given TTL. Writes go through a temp file
// and rename so readers never see a partial entry.
func (c *Cache) Set(key string, v any, ttl time.Duration) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	saved := c.now()
	data, err := json.Marshal(envelope{
		Key:       key,
		SavedAt:   saved,
		ExpiresAt: saved.Add(ttl),
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	path := c.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return os.Rename(tmp, path)
}

// Delete removes the entry for key. Deleting a missing entry is not an error.
func (c *Cache) Delete(key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (c *Cache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}
