// Package cache holds recent scan results keyed by directory path.
package cache

import (
	"sync"
	"time"

	"dirscope/internal/model"
)

// DefaultTTL is how long a cached scan stays valid.
const DefaultTTL = 300 * time.Second

// Entry is one cached scan result. Total always equals the sum of Entries'
// sizes; Skipped counts children the traversal could not read.
type Entry struct {
	Entries    []model.FileEntry
	Total      int64
	Skipped    int
	ComputedAt time.Time
}

// Cache maps a directory path to its most recent scan. At most one entry
// exists per path. Stale entries are treated as misses on lookup, not
// purged; the next Store overwrites them.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]Entry
}

// New creates a cache with the given TTL. A non-positive ttl falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]Entry),
	}
}

// Lookup returns the entry for path if one exists and is younger than the
// TTL. An expired entry is a miss.
func (c *Cache) Lookup(path string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	if !ok {
		return Entry{}, false
	}
	if c.now().Sub(e.ComputedAt) >= c.ttl {
		return Entry{}, false
	}
	return e, true
}

// Store replaces any existing entry for path.
func (c *Cache) Store(path string, entries []model.FileEntry, total int64, skipped int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = Entry{
		Entries:    entries,
		Total:      total,
		Skipped:    skipped,
		ComputedAt: c.now(),
	}
}

// Invalidate drops the entry for path if present. Called whenever content
// under that directory changes.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len reports how many paths currently have entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// SetClock overrides the time source. Test hook.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
