// Package cache holds a short-lived in-memory cache of raw retailer
// query results, so repeated shopping-list queries skip navigation.
//
// Only raw records are cached: normalization and quality scoring re-run
// per request, so ranking state never leaks between requests.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/smartcart/cartscout/models"
)

// entry holds cached records with their creation timestamp.
type entry struct {
	records   []models.RawProductRecord
	createdAt time.Time
}

// Cache is a simple in-memory TTL cache for retailer query results.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	maxAge     time.Duration
}

// New creates a Cache with the given capacity and freshness window.
// A maxAge of zero disables caching entirely (Get always misses, Set is
// a no-op). A background goroutine evicts stale entries every minute.
func New(maxEntries int, maxAge time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
	}
	if maxAge > 0 {
		go c.cleanupLoop()
	}
	return c
}

// Key generates a cache key from a retailer identifier and query text.
func Key(retailer, query string) string {
	h := sha256.New()
	h.Write([]byte(retailer))
	h.Write([]byte("|"))
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves cached records if they exist and are still fresh.
func (c *Cache) Get(key string) ([]models.RawProductRecord, bool) {
	if c == nil || c.maxAge <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.maxAge {
		return nil, false
	}
	return e.records, true
}

// Set stores records for a key. If the cache is at capacity, a random
// entry is evicted to make room (map iteration is random in Go).
func (c *Cache) Set(key string, records []models.RawProductRecord) {
	if c == nil || c.maxAge <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		records:   records,
		createdAt: time.Now(),
	}
}

// cleanupLoop evicts stale entries every minute.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.maxAge)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
