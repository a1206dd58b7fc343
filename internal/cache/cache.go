// Package cache provides the bounded extraction-result cache shared by
// concurrent analyses.
package cache

import (
	"sync"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// DefaultCapacity bounds the cache when no capacity is configured.
const DefaultCapacity = 128

// ResultCache maps input-text hashes to profile-independent extraction
// results. Eviction is insertion-ordered: when full, the oldest entry leaves
// first regardless of how often it was read. Safe for concurrent use.
type ResultCache struct {
	mu       sync.RWMutex
	entries  map[string]types.ExtractionResult
	order    []string
	capacity int
}

// New creates a cache holding at most capacity entries. Non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ResultCache{
		entries:  make(map[string]types.ExtractionResult, capacity),
		capacity: capacity,
	}
}

// Get returns the cached result for a key. Reading does not refresh the
// entry's eviction position.
func (c *ResultCache) Get(key string) (types.ExtractionResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.entries[key]
	return result, ok
}

// Put stores a result, evicting the oldest entry when the cache is full.
// Re-putting an existing key replaces the value but keeps its original slot.
func (c *ResultCache) Put(key string, result types.ExtractionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = result
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = result
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]types.ExtractionResult, c.capacity)
	c.order = nil
}
