// Package menucache keeps scanned menu hierarchies per application, with
// per-entry TTL expiry and least-recently-used eviction.
package menucache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/jonboulle/clockwork"

	"github.com/leonardcser/uipath-mcp/internal/logger"
	"github.com/leonardcser/uipath-mcp/internal/menu"
)

const (
	DefaultMaxSize = 10
	DefaultTimeout = 30 * time.Minute
)

type Options struct {
	// MaxSize is the number of applications kept; <= 0 uses DefaultMaxSize.
	MaxSize int
	// DefaultTimeout applies to hierarchies without a CacheTimeout;
	// <= 0 uses DefaultTimeout.
	DefaultTimeout time.Duration
	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

type entry struct {
	hierarchy  *menu.Hierarchy
	insertedAt time.Time
	timeout    time.Duration
}

func (e *entry) expired(now time.Time) bool {
	return now.Sub(e.insertedAt) >= e.timeout
}

// Cache stores menu hierarchies keyed by application id. All operations,
// including the recency update performed by Get, are serialized by one lock.
// Callers always receive copies.
type Cache struct {
	mu             sync.Mutex
	lru            *simplelru.LRU[string, *entry]
	maxSize        int
	defaultTimeout time.Duration
	clock          clockwork.Clock

	hits, misses, expired, evictions uint64
	// adding is set while Set inserts, so onEvict only counts capacity evictions.
	adding bool
}

// New creates a Cache.
func New(opts Options) *Cache {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = DefaultTimeout
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	c := &Cache{
		maxSize:        opts.MaxSize,
		defaultTimeout: opts.DefaultTimeout,
		clock:          opts.Clock,
	}
	// NewLRU only fails for a non-positive size.
	c.lru, _ = simplelru.NewLRU[string, *entry](opts.MaxSize, c.onEvict)
	return c
}

// onEvict runs under c.mu for every removal; removals outside Set are
// invalidations or expiries, not evictions.
func (c *Cache) onEvict(key string, _ *entry) {
	if !c.adding {
		return
	}
	c.evictions++
	logger.Debugf("Menu cache full, evicted least recently used entry for %s", key)
}

// Set stores a copy of h under key, replacing any previous entry and marking
// it most recently used. When the cache is full the least recently used
// other key is evicted.
func (c *Cache) Set(h *menu.Hierarchy, key string) {
	if h == nil {
		return
	}
	e := &entry{hierarchy: h.Clone(), timeout: h.CacheTimeout}
	if e.timeout <= 0 {
		e.timeout = c.defaultTimeout
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e.insertedAt = c.clock.Now()
	c.adding = true
	c.lru.Add(key, e)
	c.adding = false
}

// Get returns a copy of the fresh hierarchy under key. An expired entry is
// removed and reported as a miss.
func (c *Cache) Get(key string) (*menu.Hierarchy, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lru.Peek(key)
	if !ok {
		c.misses++
		return nil, false
	}
	if e.expired(c.clock.Now()) {
		c.lru.Remove(key)
		c.misses++
		c.expired++
		return nil, false
	}
	c.lru.Get(key)
	c.hits++
	return e.hierarchy.Clone(), true
}

// Invalidate removes key. Statistics are unchanged.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Remove(key)
}

// InvalidateAll removes every entry and resets all counters.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	c.hits, c.misses, c.expired, c.evictions = 0, 0, 0, 0
}

// Cleanup removes every expired entry and returns how many were removed.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock.Now()
	removed := 0
	for _, k := range c.lru.Keys() {
		if e, ok := c.lru.Peek(k); ok && e.expired(now) {
			c.lru.Remove(k)
			removed++
		}
	}
	c.expired += uint64(removed)
	return removed
}

// Statistics are cumulative since creation or the last InvalidateAll.
type Statistics struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Expired   uint64  `json:"expired"`
	Evictions uint64  `json:"evictions"`
	HitRate   float64 `json:"hitRate"`
}

// Statistics returns the current counters.
func (c *Cache) Statistics() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Statistics{Hits: c.hits, Misses: c.misses, Expired: c.expired, Evictions: c.evictions}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

type EntryInfo struct {
	Application string        `json:"application"`
	TotalItems  int           `json:"totalItems"`
	InsertedAt  time.Time     `json:"insertedAt"`
	Age         time.Duration `json:"age"`
	Timeout     time.Duration `json:"timeout"`
	Expired     bool          `json:"expired"`
}

type Info struct {
	EntryCount     int           `json:"entryCount"`
	MaxSize        int           `json:"maxSize"`
	DefaultTimeout time.Duration `json:"defaultTimeout"`
	// AccessOrder lists keys from least to most recently used.
	AccessOrder []string    `json:"accessOrder"`
	Entries     []EntryInfo `json:"entries"`
}

// Info describes the cache contents without touching recency or counters.
func (c *Cache) Info() Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock.Now()
	keys := c.lru.Keys()
	info := Info{
		EntryCount:     len(keys),
		MaxSize:        c.maxSize,
		DefaultTimeout: c.defaultTimeout,
		AccessOrder:    keys,
		Entries:        make([]EntryInfo, 0, len(keys)),
	}
	for _, k := range keys {
		e, _ := c.lru.Peek(k)
		info.Entries = append(info.Entries, EntryInfo{
			Application: k,
			TotalItems:  e.hierarchy.TotalItems,
			InsertedAt:  e.insertedAt,
			Age:         now.Sub(e.insertedAt),
			Timeout:     e.timeout,
			Expired:     e.expired(now),
		})
	}
	return info
}
