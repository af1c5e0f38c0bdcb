package services

import (
	"sync"
	"time"
)

// DefaultCacheTTL is how long computed results stay fresh when no TTL is
// configured.
const DefaultCacheTTL = 5 * time.Minute

// ResultCache memoizes computed period results for a short TTL. It is
// process-local and best-effort only: invocations in other processes do not
// see it, so nothing may rely on it for consistency. Entries are keyed by
// voting-period id and must be invalidated on every nomination mutation for
// that period.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	results  *PeriodResults
	storedAt time.Time
}

// NewResultCache creates a cache with the given TTL. A non-positive TTL
// falls back to DefaultCacheTTL.
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached results for a period if present and fresh.
func (c *ResultCache) Get(periodID string) (*PeriodResults, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[periodID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, periodID)
		return nil, false
	}
	return entry.results, true
}

// Set stores freshly computed results for a period.
func (c *ResultCache) Set(periodID string, results *PeriodResults) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[periodID] = cacheEntry{results: results, storedAt: c.now()}
}

// Invalidate drops the cached results for a period. Safe to call when no
// entry exists.
func (c *ResultCache) Invalidate(periodID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, periodID)
}

// SetClock overrides the cache's clock. Tests use this to step time past
// the TTL without sleeping.
func (c *ResultCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
