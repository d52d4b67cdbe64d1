// Package provider contains the photo provider abstraction, the provider registry and the outbound http client
package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/DMarby/photo-gateway/internal/params"
)

// DefaultMIMEType is used when a provider response doesn't specify a Content-Type
const DefaultMIMEType = "image/jpeg"

// Errors
var (
	ErrUnknownProvider = errors.New("unknown provider")
)

// Config contains the static configuration of a provider
type Config struct {
	ID       string
	BaseURL  string
	Headers  map[string]string
	Defaults params.Values
}

// Request is the input to a provider's pre-processing hook
type Request struct {
	// URL is the provider base URL
	URL string
	// Params are the provider defaults merged with the overrides
	Params params.Values
	// Overrides are the parameters supplied by the caller
	Overrides params.Values
}

// Provider is a photo provider
type Provider interface {
	// Config returns the static provider configuration
	Config() *Config
	// Preprocess returns the URL and query parameters to request from the provider
	Preprocess(req Request) (target string, query params.Values, err error)
	// Postprocess extracts the photo and its MIME type from the provider response
	Postprocess(ctx context.Context, client *Client, resp *Response, query params.Values) (data []byte, mimeType string, err error)
}

// Base implements a provider without any transformations
// The request is sent as is, and the response body is returned as the photo
type Base struct {
	Cfg Config
}

// Config returns the static provider configuration
func (b *Base) Config() *Config {
	return &b.Cfg
}

// Preprocess returns the base URL and the merged parameters unchanged
func (b *Base) Preprocess(req Request) (string, params.Values, error) {
	return req.URL, req.Params, nil
}

// Postprocess returns the response body and Content-Type
func (b *Base) Postprocess(ctx context.Context, client *Client, resp *Response, query params.Values) ([]byte, string, error) {
	return resp.Body, resp.ContentType(), nil
}

// Registry maps provider IDs to providers
// It's built once and is read-only afterwards, so it's safe for concurrent use
type Registry struct {
	providers map[string]Provider
}

// NewRegistry returns a registry containing the given providers
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{
		providers: make(map[string]Provider, len(providers)),
	}

	for _, p := range providers {
		r.providers[p.Config().ID] = p
	}

	return r
}

// Lookup returns the provider with the given ID
func (r *Registry) Lookup(id string) (Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, id)
	}

	return p, nil
}

// IDs returns the IDs of all the registered providers, sorted
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids
}
