package storage

import (
	"context"
	"log"
	"sync"
	"time"

	"scrib/pkg/performance"
)

type cacheEntry struct {
	value string
	found bool
}

// CachedGateway keeps the last value seen for each key in memory and
// writes through to the wrapped gateway. External changes reported by a
// watcher are dropped from the cache after a short quiet period.
type CachedGateway struct {
	inner     Gateway
	mutex     sync.RWMutex
	entries   map[string]cacheEntry
	gens      map[string]uint64
	debouncer *performance.Debouncer
}

// NewCachedGateway wraps inner. invalidateDelay is how long a key must be
// quiet before a reported change evicts it.
func NewCachedGateway(inner Gateway, invalidateDelay time.Duration) *CachedGateway {
	return &CachedGateway{
		inner:     inner,
		entries:   make(map[string]cacheEntry),
		gens:      make(map[string]uint64),
		debouncer: performance.NewDebouncer(invalidateDelay),
	}
}

// Get serves key from the cache, reading through on a miss. A read that
// overlaps a write or an eviction of the same key is returned but not cached.
func (c *CachedGateway) Get(ctx context.Context, key string) (string, bool, error) {
	c.mutex.RLock()
	entry, hit := c.entries[key]
	gen := c.gens[key]
	c.mutex.RUnlock()
	if hit {
		return entry.value, entry.found, nil
	}

	value, found, err := c.inner.Get(ctx, key)
	if err != nil {
		return "", false, err
	}

	c.mutex.Lock()
	if c.gens[key] == gen {
		c.entries[key] = cacheEntry{value: value, found: found}
	}
	c.mutex.Unlock()
	return value, found, nil
}

// bump must be called with the mutex held
func (c *CachedGateway) bump(key string) {
	c.gens[key]++
}

// Set writes through and caches the new value
func (c *CachedGateway) Set(ctx context.Context, key, value string) error {
	if err := c.inner.Set(ctx, key, value); err != nil {
		c.InvalidateNow(key)
		return err
	}
	c.mutex.Lock()
	c.bump(key)
	c.entries[key] = cacheEntry{value: value, found: true}
	c.mutex.Unlock()
	return nil
}

// SetMany uses the wrapped gateway's batch write when it has one
func (c *CachedGateway) SetMany(ctx context.Context, entries []Entry) error {
	var err error
	if batch, ok := c.inner.(BatchSetter); ok {
		err = batch.SetMany(ctx, entries)
	} else {
		for _, e := range entries {
			if err = c.inner.Set(ctx, e.Key, e.Value); err != nil {
				break
			}
		}
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	for _, e := range entries {
		c.bump(e.Key)
		if err != nil {
			delete(c.entries, e.Key)
		} else {
			c.entries[e.Key] = cacheEntry{value: e.Value, found: true}
		}
	}
	return err
}

// Remove deletes through and caches the absence
func (c *CachedGateway) Remove(ctx context.Context, key string) error {
	if err := c.inner.Remove(ctx, key); err != nil {
		c.InvalidateNow(key)
		return err
	}
	c.mutex.Lock()
	c.bump(key)
	c.entries[key] = cacheEntry{found: false}
	c.mutex.Unlock()
	return nil
}

// Invalidate schedules key to be dropped from the cache
func (c *CachedGateway) Invalidate(key string) {
	c.debouncer.Debounce(key, func() {
		c.InvalidateNow(key)
		log.Printf("Cache invalidated for %s", key)
	})
}

// InvalidateNow drops key from the cache immediately
func (c *CachedGateway) InvalidateNow(key string) {
	c.mutex.Lock()
	c.bump(key)
	delete(c.entries, key)
	c.mutex.Unlock()
}

// Close cancels pending invalidations
func (c *CachedGateway) Close() {
	c.debouncer.Clear()
}

var (
	_ Gateway     = (*CachedGateway)(nil)
	_ BatchSetter = (*CachedGateway)(nil)
)
