// Package cache memoizes evaluation results for a bounded time.
package cache

import (
	"sync"
	"time"
)

type Observer interface {
	CacheHit()
	CacheMiss()
}

type entry[T any] struct {
	val T
	exp time.Time
}

// Cache is a TTL map safe for concurrent use. A capacity of 0 means unbounded.
type Cache[T any] struct {
	mu       sync.RWMutex
	m        map[string]entry[T]
	ttl      time.Duration
	capacity int
	obs      Observer
	now      func() time.Time
}

func New[T any](ttl time.Duration, capacity int, obs Observer) *Cache[T] {
	return &Cache[T]{
		m:        make(map[string]entry[T]),
		ttl:      ttl,
		capacity: capacity,
		obs:      obs,
		now:      time.Now,
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.exp) {
		if c.obs != nil {
			c.obs.CacheMiss()
		}
		return zero, false
	}
	if c.obs != nil {
		c.obs.CacheHit()
	}
	return e.val, true
}

func (c *Cache[T]) Set(key string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if _, exists := c.m[key]; !exists && c.capacity > 0 && len(c.m) >= c.capacity {
		c.evict(now)
	}
	c.m[key] = entry[T]{val: v, exp: now.Add(c.ttl)}
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// evict drops expired entries, or the entry closest to expiry when none has expired.
// c.mu must be held.
func (c *Cache[T]) evict(now time.Time) {
	var (
		oldestKey string
		oldestExp time.Time
		removed   bool
	)
	for k, e := range c.m {
		if now.After(e.exp) {
			delete(c.m, k)
			removed = true
			continue
		}
		if oldestKey == "" || e.exp.Before(oldestExp) {
			oldestKey, oldestExp = k, e.exp
		}
	}
	if !removed && oldestKey != "" {
		delete(c.m, oldestKey)
	}
}
