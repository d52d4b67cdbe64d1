package otter

import (
	"context"
	"fmt"

	"github.com/DMarby/photo-gateway/internal/cache"
	otterCache "github.com/maypok86/otter/v2"
)

const initialCapacity = 64

// Provider implements an in-memory cache backed by otter
// No maximum size or expiry is configured, so entries are never evicted
type Provider struct {
	cache *otterCache.Cache[string, cache.Entry]
}

// New returns a new Provider instance
func New() (*Provider, error) {
	c, err := otterCache.New(&otterCache.Options[string, cache.Entry]{
		InitialCapacity: initialCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("create otter cache: %w", err)
	}

	return &Provider{
		cache: c,
	}, nil
}

// Get returns an object from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) (entry cache.Entry, err error) {
	entry, ok := p.cache.GetIfPresent(key)
	if !ok {
		return cache.Entry{}, cache.ErrNotFound
	}

	return entry, nil
}

// Set adds an object to the cache
func (p *Provider) Set(ctx context.Context, key string, entry cache.Entry) (err error) {
	p.cache.Set(key, entry)
	return nil
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {
	p.cache.InvalidateAll()
}
