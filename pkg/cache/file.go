package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// DefaultAnalysisTTL bounds how long a cached panel analysis stays on disk.
// The key already invalidates on content or catalog changes; the TTL only
// keeps the cache directory from growing without bound.
const DefaultAnalysisTTL = 30 * 24 * time.Hour

// entryVersion is bumped whenever the stored analysis shape changes, so
// entries written by an older build read as misses instead of decoding into
// a half-filled struct.
const entryVersion = 1

// FileCache stores analysis entries as JSON files under a directory, one
// file per key. Entries are written whole via a rename, so a concurrent
// reader sees either the old entry or the new one, never a torn write.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// cacheEntry wraps a stored analysis payload with schema and expiry
// metadata.
type cacheEntry struct {
	Version   int       `json:"version"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves a value from the cache. Unreadable, stale-schema and
// expired entries are removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Version != entryVersion {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores a value in the cache. A zero TTL never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{
		Version: entryVersion,
		Data:    data,
	}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "entry-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(entryData); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path := c.path(key)
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path. The first two hash characters
// shard entries into subdirectories to keep directory listings small.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	subdir := hash[:2]
	filename := hash[2:] + ".json"
	return filepath.Join(c.dir, subdir, filename)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
