package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a small string key/value store with per-key expiry.
// Get reports found=false on a miss without an error.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	// role:{email} -> "admin" | "customer"
	KeyRole = "role:%s"
	// report:dashboard -> JSON report payload
	KeyReport = "report:dashboard"
)

type entry struct {
	value     string
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

const (
	defaultMaxEntries = 10000
	sweepInterval     = time.Minute
)

// MemoryCache is the in-process fallback used when no Redis address is configured.
// Expired entries are swept on Set at most once per sweepInterval, and the map never
// holds more than maxEntries keys.
type MemoryCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	now        func() time.Time
	maxEntries int
	nextSweep  time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items:      make(map[string]entry),
		now:        time.Now,
		maxEntries: defaultMaxEntries,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	now := c.now()
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if e.expired(now) {
		c.mu.Lock()
		// a concurrent Set may have replaced the entry since the read lock was released
		if cur, ok := c.items[key]; ok && cur.expired(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	now := c.now()
	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, exists := c.items[key]
	if !now.Before(c.nextSweep) || (!exists && len(c.items) >= c.maxEntries) {
		c.sweepLocked(now)
	}
	if !exists && c.maxEntries > 0 {
		for k := range c.items {
			if len(c.items) < c.maxEntries {
				break
			}
			delete(c.items, k)
		}
	}
	c.items[key] = entry{value: value, expiresAt: exp}
	return nil
}

func (c *MemoryCache) sweepLocked(now time.Time) {
	for k, e := range c.items {
		if e.expired(now) {
			delete(c.items, k)
		}
	}
	c.nextSweep = now.Add(sweepInterval)
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored keys, expired ones included until the next sweep.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
