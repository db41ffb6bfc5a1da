package mask

import (
	"fmt"
	"sync"
)

// Cache is a thread-safe store of named masks.
//
// MCP clients register a mask once under a name and reference it by name
// in later tool calls, instead of resending the full grid with every
// request. Masks remain cached until explicitly removed via Evict() or
// Clear().
type Cache struct {
	mu    sync.RWMutex
	masks map[string]*Mask
}

// NewCache creates an empty mask cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{
		masks: make(map[string]*Mask),
	}
}

// Store registers a mask under the given name, replacing any previous
// mask stored under the same name.
func (c *Cache) Store(name string, m *Mask) {
	c.mu.Lock()
	c.masks[name] = m
	c.mu.Unlock()
}

// Get returns the mask stored under the given name.
func (c *Cache) Get(name string) (*Mask, error) {
	c.mu.RLock()
	m, ok := c.masks[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no mask stored under %q", name)
	}
	return m, nil
}

// Evict removes the mask stored under the given name, if any.
func (c *Cache) Evict(name string) {
	c.mu.Lock()
	delete(c.masks, name)
	c.mu.Unlock()
}

// Clear removes all stored masks.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.masks = make(map[string]*Mask)
	c.mu.Unlock()
}
