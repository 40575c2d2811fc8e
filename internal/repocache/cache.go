// Package repocache keeps shallow clones of remote repositories on disk so
// repeated analyses of the same URL and ref skip the network. Entries age
// out after a TTL and the cache is trimmed to a size ceiling after every
// clone, evicting the oldest entries first.
package repocache

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/zeebo/xxh3"
)

// CloneFunc materializes a repository at dest. The cache owns dest; on
// error the cache removes whatever the clone left behind.
type CloneFunc func(ctx context.Context, url, ref, token, dest string) error

// Cache is a directory of cached clones guarded by a single mutex. All
// operations, including the clone itself, run under the lock: concurrent
// callers asking for the same repository never race on one entry, at the
// cost of serializing clones of different repositories.
type Cache struct {
	dir          string
	maxAge       time.Duration
	maxSizeBytes int64
	cloneTimeout time.Duration
	clone        CloneFunc

	mu sync.Mutex
}

// New returns a cache rooted at dir. The directory is created on first use.
func New(dir string, maxAge time.Duration, maxSizeMiB int64, cloneTimeout time.Duration, clone CloneFunc) *Cache {
	return &Cache{
		dir:          dir,
		maxAge:       maxAge,
		maxSizeBytes: maxSizeMiB * 1024 * 1024,
		cloneTimeout: cloneTimeout,
		clone:        clone,
	}
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Key derives the cache entry name for a repository URL and ref. An empty
// ref maps to the remote's default branch.
func Key(url, ref string) string {
	if ref == "" {
		ref = "default"
	}
	return fmt.Sprintf("%016x", xxh3.HashString(url+":"+ref))
}

// Resolve returns the path of a cached clone for url at ref, cloning on a
// miss. An entry's age is measured from clone time: hits do not extend the
// TTL, so a hot entry still expires and picks up remote changes.
func (c *Cache) Resolve(ctx context.Context, url, ref, token string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	key := Key(url, ref)
	path := filepath.Join(c.dir, key)

	if info, err := os.Stat(path); err == nil {
		if time.Since(info.ModTime()) < c.maxAge {
			slog.Debug("cache.hit", "key", key, "url", url)
			return path, nil
		}
		slog.Info("cache.expired", "key", key, "age", time.Since(info.ModTime()).Round(time.Second))
		if err := os.RemoveAll(path); err != nil {
			return "", fmt.Errorf("removing expired entry %s: %w", key, err)
		}
	}

	slog.Info("cache.miss", "key", key, "url", url, "ref", ref)

	cloneCtx := ctx
	if c.cloneTimeout > 0 {
		var cancel context.CancelFunc
		cloneCtx, cancel = context.WithTimeout(ctx, c.cloneTimeout)
		defer cancel()
	}
	if err := c.clone(cloneCtx, url, ref, token, path); err != nil {
		// Never leave a partial clone behind: a later call would treat
		// it as a valid hit.
		if rmErr := os.RemoveAll(path); rmErr != nil {
			slog.Warn("cache.cleanup_failed", "key", key, "error", rmErr)
		}
		return "", err
	}

	if err := c.evictLocked(); err != nil {
		slog.Warn("cache.evict_failed", "error", err)
	}

	// The eviction pass may have removed the entry we just cloned if it
	// alone exceeds the ceiling.
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("repository exceeds cache size limit")
	}
	return path, nil
}

// Invalidate removes the cached entry for url at ref, if present.
func (c *Cache) Invalidate(url, ref string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, Key(url, ref)))
}

// InvalidateAll removes every cached entry.
func (c *Cache) InvalidateAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	slog.Info("cache.cleared", "entries", len(entries))
	return nil
}

// Entry describes one cached clone.
type Entry struct {
	Key       string    `json:"key"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// Info is a snapshot of the cache contents.
type Info struct {
	Dir            string  `json:"dir"`
	Entries        []Entry `json:"entries"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	MaxSizeBytes   int64   `json:"max_size_bytes"`
}

// Info reports the cached entries, newest first.
func (c *Cache) Info() (*Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.entriesLocked()
	if err != nil {
		return nil, err
	}

	info := &Info{
		Dir:          c.dir,
		Entries:      []Entry{},
		MaxSizeBytes: c.maxSizeBytes,
	}
	for i := len(entries) - 1; i >= 0; i-- {
		info.Entries = append(info.Entries, entries[i])
		info.TotalSizeBytes += entries[i].SizeBytes
	}
	return info, nil
}

// entriesLocked lists cache entries sorted oldest first.
func (c *Cache) entriesLocked() ([]Entry, error) {
	dirents, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		path := filepath.Join(c.dir, d.Name())
		info, err := d.Info()
		if err != nil {
			continue
		}
		size, err := dirSize(path)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Key: d.Name(), SizeBytes: size, ModTime: info.ModTime()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.Before(entries[j].ModTime)
	})
	return entries, nil
}

// evictLocked removes the oldest entries until the cache fits under the
// size ceiling.
func (c *Cache) evictLocked() error {
	if c.maxSizeBytes <= 0 {
		return nil
	}
	entries, err := c.entriesLocked()
	if err != nil {
		return err
	}

	var total int64
	for _, e := range entries {
		total += e.SizeBytes
	}
	for _, e := range entries {
		if total <= c.maxSizeBytes {
			break
		}
		if err := os.RemoveAll(filepath.Join(c.dir, e.Key)); err != nil {
			return err
		}
		total -= e.SizeBytes
		slog.Info("cache.evicted", "key", e.Key, "size_bytes", e.SizeBytes)
	}
	return nil
}

func dirSize(root string) (int64, error) {
	var size int64
	err := filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
