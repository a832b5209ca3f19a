package repository

import (
	"context"
	"sync"
	"time"
)

// CacheRepository stores computed results by key. A miss is ("", false, nil);
// an error means the cache could not be consulted.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

const (
	// DefaultMemoryCacheEntries bounds a MemoryCache created with a non-positive size.
	DefaultMemoryCacheEntries = 10000
	defaultSweepInterval      = 10 * time.Minute
)

// MemoryCache is an in-process CacheRepository with per-entry expiry and a
// fixed entry cap. Expired entries are dropped on read, by Sweep, and before
// an eviction; at the cap the entry closest to expiry is evicted.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string]cacheEntry
	maxEntries int
	now        func() time.Time
}

type cacheEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryCacheEntries
	}
	return &MemoryCache{data: make(map[string]cacheEntry), maxEntries: maxEntries, now: time.Now}
}

var _ CacheRepository = (*MemoryCache)(nil)

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if !ok {
		return "", false, nil
	}
	if e.expired(c.now()) {
		delete(c.data, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.data[key]; !exists && len(c.data) >= c.maxEntries {
		if c.sweepLocked(now) == 0 {
			c.evictLocked()
		}
	}

	e := cacheEntry{value: value}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	c.data[key] = e
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(c.now())
}

// Run sweeps every interval until ctx is done.
func (c *MemoryCache) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func (c *MemoryCache) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range c.data {
		if e.expired(now) {
			delete(c.data, k)
			removed++
		}
	}
	return removed
}

// evictLocked removes the entry that would expire first. Entries without
// expiry go last.
func (c *MemoryCache) evictLocked() {
	var victim string
	var soonest time.Time
	found := false
	for k, e := range c.data {
		if e.expiresAt.IsZero() {
			if !found {
				victim, found = k, true
			}
			continue
		}
		if !found || soonest.IsZero() || e.expiresAt.Before(soonest) {
			victim, soonest, found = k, e.expiresAt, true
		}
	}
	if found {
		delete(c.data, victim)
	}
}

// Ping always succeeds.
func (c *MemoryCache) Ping(ctx context.Context) error { return nil }
