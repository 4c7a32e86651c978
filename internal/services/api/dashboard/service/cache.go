package service

import (
	"sync"
	"time"

	ptime "bizdash/internal/platform/time"
)

// resultCache keeps computed responses for ttl, keyed by endpoint and window
type resultCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	clock ptime.Clock
	items map[string]cacheEntry
	// next time set drops expired entries
	sweepAt time.Time
}

type cacheEntry struct {
	v       any
	expires time.Time
}

func newResultCache(ttl time.Duration, clock ptime.Clock) *resultCache {
	return &resultCache{ttl: ttl, clock: clock, items: map[string]cacheEntry{}}
}

func (c *resultCache) get(key string) (any, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expires) {
		delete(c.items, key)
		return nil, false
	}
	return e.v, true
}

func (c *resultCache) set(key string, v any) {
	if c.ttl <= 0 {
		return
	}
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !now.Before(c.sweepAt) {
		for k, e := range c.items {
			if !now.Before(e.expires) {
				delete(c.items, k)
			}
		}
		c.sweepAt = now.Add(c.ttl)
	}
	c.items[key] = cacheEntry{v: v, expires: now.Add(c.ttl)}
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// purge drops every entry and returns how many there were
func (c *resultCache) purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.items)
	c.items = map[string]cacheEntry{}
	return n
}

// cached returns the stored value for key or computes, stores and returns it
// errors are never stored
func cached[T any](c *resultCache, key string, fn func() (T, error)) (T, error) {
	if v, ok := c.get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	out, err := fn()
	if err != nil {
		return out, err
	}
	c.set(key, out)
	return out, nil
}
