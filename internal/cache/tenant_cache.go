// Package cache provides a schema-scoped memoization store. A plain
// compute-once cache keys only on the property name, so a value computed
// under one tenant's schema would be served under every other tenant's
// schema for the lifetime of the instance. TenantCache adds the schema as a
// key dimension.
package cache

import (
	"sync"
)

// TenantCache memoizes computed property values keyed by
// (schema name, property name). Safe for concurrent use.
type TenantCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]interface{}
}

func NewTenantCache() *TenantCache {
	return &TenantCache{
		entries: make(map[string]map[string]interface{}),
	}
}

// Get returns the cached value for (schema, property) and whether one is
// present.
func (c *TenantCache) Get(schema, property string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	props, ok := c.entries[schema]
	if !ok {
		return nil, false
	}
	value, ok := props[property]
	return value, ok
}

// GetOrCompute returns the cached value for (schema, property), computing
// and storing it on a miss. The computed value for schema A is never served
// for a read under schema B. A compute error is returned unstored.
func (c *TenantCache) GetOrCompute(schema, property string, compute func() (interface{}, error)) (interface{}, error) {
	if value, ok := c.Get(schema, property); ok {
		return value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	props, ok := c.entries[schema]
	if !ok {
		props = make(map[string]interface{})
		c.entries[schema] = props
	}
	// Another goroutine may have raced the compute; first write wins so
	// repeated reads stay stable.
	if existing, ok := props[property]; ok {
		return existing, nil
	}
	props[property] = value
	return value, nil
}

// Invalidate removes the entry for (schema, property) if present.
func (c *TenantCache) Invalidate(schema, property string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if props, ok := c.entries[schema]; ok {
		delete(props, property)
		if len(props) == 0 {
			delete(c.entries, schema)
		}
	}
}

// InvalidateSchema removes every entry cached under the given schema. Used
// when a user is removed from a tenant so stale authorization answers for
// that schema cannot survive the membership.
func (c *TenantCache) InvalidateSchema(schema string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, schema)
}

// Len returns the number of cached entries across all schemas.
func (c *TenantCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, props := range c.entries {
		n += len(props)
	}
	return n
}
