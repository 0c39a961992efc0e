// Package memory provides the in-memory preview cache used for a single
// page session.
package memory

import (
	"sync"

	"github.com/fwojciec/docpeek"
)

// Ensure Cache implements docpeek.Cache at compile time.
var _ docpeek.Cache = (*Cache)(nil)

// Cache holds resolved previews for the lifetime of one page session.
// It is unbounded and never evicts; entries are write-once.
// Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]string),
	}
}

// Get returns the preview stored for key.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	text, ok := c.entries[key]
	return text, ok
}

// Set stores text for key unless key already holds a value.
func (c *Cache) Set(key string, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		return
	}
	c.entries[key] = text
}

// Len returns the number of cached previews.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
