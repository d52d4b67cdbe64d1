package memory

import (
	"context"
	"sync"

	"github.com/DMarby/photo-gateway/internal/cache"
)

// Provider implements a simple in-memory cache
// Entries are kept for the lifetime of the process
type Provider struct {
	cache map[string]cache.Entry
	mutex sync.RWMutex
}

// New returns a new Provider instance
func New() *Provider {
	return &Provider{
		cache: make(map[string]cache.Entry),
	}
}

// Get returns an object from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) (entry cache.Entry, err error) {
	p.mutex.RLock()
	entry, exists := p.cache[key]
	p.mutex.RUnlock()

	if !exists {
		return cache.Entry{}, cache.ErrNotFound
	}

	return entry, nil
}

// Set adds an object to the cache, replacing any existing entry for the key
func (p *Provider) Set(ctx context.Context, key string, entry cache.Entry) (err error) {
	p.mutex.Lock()
	p.cache[key] = entry
	p.mutex.Unlock()

	return nil
}

// Len returns the number of entries in the cache
func (p *Provider) Len() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return len(p.cache)
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {}
