package cache

import (
	"sync"
	"time"
)

// DefaultTTL is the entry lifetime used when no TTL is configured.
const DefaultTTL = 5 * time.Minute

// Clock returns the current time. It exists so tests can control expiry
// deterministically instead of sleeping.
type Clock func() time.Time

// TTLCache is an in-memory key/value store with per-entry expiration.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Expiry: an entry is visible iff now-createdAt <= ttl; Get deletes
//   expired entries as it encounters them.
// - Capacity: unbounded; Set always overwrites and resets the timestamp.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     Clock
}

type entry[V any] struct {
	value     V
	createdAt time.Time
}

// Option configures a TTLCache.
type Option[V any] func(*TTLCache[V])

// WithClock overrides the time source. Intended for tests.
func WithClock[V any](now Clock) Option[V] {
	return func(c *TTLCache[V]) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a TTLCache with the given entry lifetime.
// A non-positive ttl falls back to DefaultTTL.
func New[V any](ttl time.Duration, opts ...Option[V]) *TTLCache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &TTLCache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a value. Returns the zero value and false on miss or expiry;
// an expired entry is removed before reporting the miss.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}

	if c.now().Sub(e.createdAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry since the read above.
		if cur, ok := c.entries[key]; ok && c.now().Sub(cur.createdAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

// Set stores a value, overwriting any existing entry and resetting its
// creation timestamp.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, createdAt: c.now()}
	c.mu.Unlock()
}

// Delete removes an entry. Idempotent.
func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// TTL returns the configured entry lifetime.
func (c *TTLCache[V]) TTL() time.Duration {
	return c.ttl
}
