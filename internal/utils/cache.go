package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps a value with its expiry.
type CacheItem[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// TTLCache is a size-bounded LRU whose entries also expire after a TTL.
// Safe for concurrent use.
type TTLCache[V any] struct {
	lruCache *lru.Cache[string, CacheItem[V]]
	ttl      time.Duration
	now      func() time.Time
}

func NewTTLCache[V any](size int, ttl time.Duration) (*TTLCache[V], error) {
	l, err := lru.New[string, CacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &TTLCache[V]{lruCache: l, ttl: ttl, now: time.Now}, nil
}

func (c *TTLCache[V]) Set(key string, data V) {
	c.lruCache.Add(key, CacheItem[V]{
		Data:      data,
		ExpiresAt: c.now().Add(c.ttl),
	})
}

// Get returns the cached value, or false if it is missing or expired.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		var zero V
		return zero, false
	}
	return val.Data, true
}

func (c *TTLCache[V]) Delete(key string) {
	c.lruCache.Remove(key)
}

func (c *TTLCache[V]) Len() int {
	return c.lruCache.Len()
}
