package cache

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LoadFunc parses the file at path into a value.
type LoadFunc[T any] func(path string) (T, error)

// stamp identifies one version of a file on disk.
// A missing file has a zero modTime and size -1.
type stamp struct {
	modTime time.Time
	size    int64
}

func statFile(path string) stamp {
	info, err := os.Stat(path)
	if err != nil {
		return stamp{size: -1}
	}
	return stamp{modTime: info.ModTime(), size: info.Size()}
}

// entry wraps a parsed value with the file stamp it was parsed from and insertion order tracking.
type entry[T any] struct {
	value     T
	stamp     stamp
	insertIdx int64
}

// FileCache memoizes values parsed from files, keyed by absolute path.
// An entry is reused while the file's modification time and size are unchanged,
// so input files are read once per process unless they are replaced on disk.
// Failed loads are not cached. Thread-safe with sync.RWMutex.
type FileCache[T any] struct {
	mu         sync.RWMutex
	items      map[string]entry[T]
	maxEntries int
	nextIdx    int64
}

// New creates a FileCache holding at most maxEntries parsed files.
// A non-positive maxEntries means unbounded.
func New[T any](maxEntries int) *FileCache[T] {
	return &FileCache[T]{
		items:      make(map[string]entry[T]),
		maxEntries: maxEntries,
	}
}

// Key normalizes a file path into a cache key.
func Key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Get returns the value parsed from path, calling load on a miss or when the
// file changed since it was cached.
func (c *FileCache[T]) Get(path string, load LoadFunc[T]) (T, error) {
	key := Key(path)
	current := statFile(path)

	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if ok && e.stamp.size == current.size && e.stamp.modTime.Equal(current.modTime) {
		return e.value, nil
	}

	value, err := load(path)
	if err != nil {
		var zero T
		return zero, err
	}

	c.set(key, value, current)
	return value, nil
}

// Peek returns the cached value for path without loading or checking the file.
func (c *FileCache[T]) Peek(path string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[Key(path)]
	return e.value, ok
}

// set stores a value. Evicts the oldest entry if at capacity.
func (c *FileCache[T]) set(key string, value T, st stamp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry[T]{
		value:     value,
		stamp:     st,
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	// If key already exists, update in place (no capacity change)
	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	if c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// Invalidate removes the entry for path.
func (c *FileCache[T]) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, Key(path))
}

// Len returns the number of cached files.
func (c *FileCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (c *FileCache[T]) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
