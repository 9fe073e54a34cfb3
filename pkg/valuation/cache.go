package valuation

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long cached results stay valid.
const DefaultTTL = 5 * time.Minute

// Cache memoizes valuation results by input key. It is safe for concurrent
// use; one mutex guards the entries and concurrent computations for the
// same key are coalesced.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
	hits    uint64
	misses  uint64
	onLook  func(kind string, hit bool)

	group singleflight.Group
}

type cacheEntry struct {
	value    any
	storedAt time.Time
}

// CacheStats is a point-in-time view of the cache.
type CacheStats struct {
	Entries int           `json:"entries"`
	Hits    uint64        `json:"hits"`
	Misses  uint64        `json:"misses"`
	TTL     time.Duration `json:"ttl"`
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets the entry lifetime. Non-positive values keep the default.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock sets the clock used for entry expiry.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLookupHook registers a callback invoked on every lookup with the
// result kind ("market_value" or "confidence") and whether it hit.
func WithLookupHook(fn func(kind string, hit bool)) CacheOption {
	return func(c *Cache) { c.onLook = fn }
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Invalidate drops the entry for key and reports whether one was present.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear drops every entry and returns how many were removed.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	return n
}

// Sweep drops expired entries and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sweepLocked(c.now())
}

// Len returns the number of live and not-yet-swept entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns the entry count and lookup counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
		TTL:     c.ttl,
	}
}

func (c *Cache) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) get(kind, key string) (any, bool) {
	c.mu.Lock()
	c.sweepLocked(c.now())
	e, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	hook := c.onLook
	c.mu.Unlock()

	if hook != nil {
		hook(kind, ok)
	}
	return e.value, ok
}

func (c *Cache) put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{value: value, storedAt: c.now()}
}

// do returns the cached value for key or computes, stores and returns it.
// Values are stored and returned through clone so callers never share
// memory with the cache. Errors are not cached.
func (c *Cache) do(kind, key string, compute func() (any, error), clone func(any) any) (any, error) {
	if v, ok := c.get(kind, key); ok {
		return clone(v), nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.put(key, clone(v))
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(v), nil
}
