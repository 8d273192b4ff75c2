package portfolio

import (
	"sync"
	"time"

	"github.com/priyanshps/fundtrack/internal/models"
)

// ResultCache is a per-user TTL cache of the last computed refresh result.
// Entries expire a fixed duration after the last write; there is no size
// bound or eviction beyond the TTL.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	result   *models.RefreshResult
	storedAt time.Time
}

// NewResultCache creates a ResultCache with the given TTL.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached result for the user if a non-expired entry exists.
func (c *ResultCache) Get(userID string) (*models.RefreshResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, userID)
		return nil, false
	}
	return entry.result, true
}

// Set stores a refresh result for the user, resetting its TTL.
func (c *ResultCache) Set(userID string, result *models.RefreshResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = cacheEntry{result: result, storedAt: c.now()}
}

// Invalidate drops the cached result for the user, if any.
func (c *ResultCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

// Len returns the number of cached entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
