package storage

import (
	"context"
	"sync"

	"bikeshare-explorer/models"
)

// CachedSource keeps each city's dataset for the lifetime of the process.
// It is safe for concurrent use. Failed loads are not cached.
type CachedSource struct {
	src TripSource

	mu      sync.RWMutex
	entries map[models.City]*models.Dataset
}

// NewCachedSource wraps src with a per-city cache.
func NewCachedSource(src TripSource) *CachedSource {
	return &CachedSource{src: src, entries: make(map[models.City]*models.Dataset)}
}

// Load returns the cached dataset or loads it from the wrapped source.
func (c *CachedSource) Load(ctx context.Context, city models.City) (*models.Dataset, error) {
	if ds, ok := c.lookup(city); ok {
		return ds, nil
	}

	ds, err := c.src.Load(ctx, city)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[city]; ok {
		return existing, nil
	}
	c.entries[city] = ds
	return ds, nil
}

func (c *CachedSource) lookup(city models.City) (*models.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.entries[city]
	return ds, ok
}

// Size returns the number of cached cities.
func (c *CachedSource) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
