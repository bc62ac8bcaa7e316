// Package cache provides a generic TTL cache backed by ttlcache.
package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Cache is a typed, goroutine-safe TTL cache.
type Cache[K comparable, V any] struct {
	items *ttlcache.Cache[K, V]
}

// New creates a cache whose entries expire after defaultTTL unless Set is
// given an explicit ttl. The expiration loop runs until Close.
func New[K comparable, V any](defaultTTL time.Duration) *Cache[K, V] {
	items := ttlcache.New[K, V](
		ttlcache.WithTTL[K, V](defaultTTL),
		ttlcache.WithDisableTouchOnHit[K, V](),
	)
	go items.Start()

	return &Cache[K, V]{items: items}
}

// Get returns the cached value for key, if present and not expired.
func (c *Cache[K, V]) Get(_ context.Context, key K) (V, bool) {
	item := c.items.Get(key)
	if item == nil || item.IsExpired() {
		var zero V
		return zero, false
	}
	return item.Value(), true
}

// Set stores value under key. A zero ttl uses the cache default.
func (c *Cache[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}
	c.items.Set(key, value, ttl)
}

// Delete removes key.
func (c *Cache[K, V]) Delete(_ context.Context, key K) {
	c.items.Delete(key)
}

// Len returns the number of stored entries, expired ones included until the
// next cleanup.
func (c *Cache[K, V]) Len() int {
	return c.items.Len()
}

// Close stops the expiration loop.
func (c *Cache[K, V]) Close() {
	c.items.Stop()
}
