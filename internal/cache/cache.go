package cache

import (
	"context"
	"errors"

	"github.com/DMarby/photo-gateway/internal/params"
	"github.com/DMarby/photo-gateway/internal/tracing"
)

// Entry is a cached photo
// Entries are never modified once stored
type Entry struct {
	Data     []byte
	MIMEType string
}

// Provider is an interface for getting and setting cached photos
type Provider interface {
	Get(ctx context.Context, key string) (entry Entry, err error)
	Set(ctx context.Context, key string, entry Entry) (err error)
	Shutdown()
}

// Errors
var (
	ErrNotFound = errors.New("not found in cache")
)

// Key returns the cache key for a provider and a set of overrides
// The key doesn't depend on the order the overrides were added in
func Key(providerID string, overrides params.Values) string {
	return providerID + params.BuildQuery(overrides)
}

// Store is the photo cache used when fetching photos
// When it's disabled, nothing is ever read from or written to the underlying Provider
type Store struct {
	Provider Provider
	Enabled  bool
	Tracer   *tracing.Tracer
}

// Get returns the cached photo for a provider and set of overrides, or ErrNotFound
func (s *Store) Get(ctx context.Context, providerID string, overrides params.Values) (Entry, error) {
	if !s.Enabled {
		return Entry{}, ErrNotFound
	}

	ctx, span := s.Tracer.Start(ctx, "cache.Get")
	defer span.End()

	return s.Provider.Get(ctx, Key(providerID, overrides))
}

// Put stores a photo for a provider and set of overrides
func (s *Store) Put(ctx context.Context, providerID string, overrides params.Values, entry Entry) error {
	if !s.Enabled {
		return nil
	}

	ctx, span := s.Tracer.Start(ctx, "cache.Put")
	defer span.End()

	return s.Provider.Set(ctx, Key(providerID, overrides), entry)
}
