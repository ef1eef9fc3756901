package cache

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Config bounds a cache. A TTL of 0 keeps entries until they are evicted
// for space.
type Config struct {
	MaxItems int
	TTL      time.Duration
}

// DefaultConfig returns the parse service cache defaults
func DefaultConfig() Config {
	return Config{MaxItems: 1000, TTL: 5 * time.Minute}
}

// Cache is a concurrency safe LRU keyed by string that counts hits and
// misses
type Cache[V any] struct {
	lru    *expirable.LRU[string, V]
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache; a non-positive MaxItems uses the default size
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultConfig().MaxItems
	}
	return &Cache[V]{lru: expirable.NewLRU[string, V](cfg.MaxItems, nil, cfg.TTL)}
}

// Get returns the live value for key and marks it recently used
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores value, evicting the least recently used entry when full
func (c *Cache[V]) Set(key string, value V) {
	c.lru.Add(key, value)
}

// Clear drops every entry; statistics are kept
func (c *Cache[V]) Clear() {
	c.lru.Purge()
}

// Size returns the number of stored entries, expired ones included until
// they are swept
func (c *Cache[V]) Size() int {
	return c.lru.Len()
}

// Stats returns hit and miss counts and the hit rate in percent
func (c *Cache[V]) Stats() (hits, misses int64, hitRate float64) {
	hits, misses = c.hits.Load(), c.misses.Load()
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return hits, misses, hitRate
}
