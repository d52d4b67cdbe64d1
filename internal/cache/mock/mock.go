package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/DMarby/photo-gateway/internal/cache"
)

// Provider is a mock cache
// Keys starting with "error" fail on Get, keys starting with "seterror" fail on Set, everything else is a miss
type Provider struct{}

// Get returns an object from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) (entry cache.Entry, err error) {
	if strings.HasPrefix(key, "error") {
		return cache.Entry{}, fmt.Errorf("error")
	}

	return cache.Entry{}, cache.ErrNotFound
}

// Set adds an object to the cache
func (p *Provider) Set(ctx context.Context, key string, entry cache.Entry) (err error) {
	if strings.HasPrefix(key, "seterror") {
		return fmt.Errorf("seterror")
	}

	return nil
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {}

