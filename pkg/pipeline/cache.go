package pipeline

import (
	"sync"

	"github.com/siyuan-infoblox/sort-imports/pkg/sortconfig"
)

// Cache holds at most one resolved sort config. Once populated it is
// returned for every file, whatever its extension or directory, until the
// process exits.
type Cache struct {
	mu     sync.Mutex
	config *sortconfig.SortConfig
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached config, if any
func (c *Cache) Get() (sortconfig.SortConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.config == nil {
		return sortconfig.SortConfig{}, false
	}
	return *c.config, true
}

// GetOrResolve returns the cached config, calling resolve to populate the
// cache when it is empty. Failed resolutions leave the cache empty.
func (c *Cache) GetOrResolve(resolve func() (sortconfig.SortConfig, error)) (sortconfig.SortConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.config != nil {
		return *c.config, nil
	}

	config, err := resolve()
	if err != nil {
		return sortconfig.SortConfig{}, err
	}
	c.config = &config
	return config, nil
}
