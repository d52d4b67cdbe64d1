// Package picsum implements the Lorem Picsum photo provider
package picsum

import (
	"net/url"

	"github.com/DMarby/photo-gateway/internal/params"
	"github.com/DMarby/photo-gateway/internal/provider"
)

const (
	// ID is the provider ID
	ID = "lorem_picsum"
	// BaseURL is the Lorem Picsum host
	BaseURL = "https://picsum.photos"

	defaultWidth  = "1920"
	defaultHeight = "1080"
)

// Provider is the Lorem Picsum provider
type Provider struct {
	provider.Base
}

// New returns a new Provider
func New(baseURL string) *Provider {
	return &Provider{
		provider.Base{
			Cfg: provider.Config{
				ID:      ID,
				BaseURL: baseURL,
				Headers: map[string]string{},
				Defaults: params.Values{
					"w": defaultWidth,
					"h": defaultHeight,
				},
			},
		},
	}
}

// Preprocess builds the picsum URL from the overrides
// The size and format are part of the path, and only grayscale and blur are kept as query parameters
func (p *Provider) Preprocess(req provider.Request) (string, params.Values, error) {
	overrides := req.Overrides

	width := overrides.GetDefault("w", defaultWidth)
	height := overrides.GetDefault("h", defaultHeight)

	extension := ""
	if overrides.Has("webp") {
		extension = ".webp"
	}

	target := p.Cfg.BaseURL + "/" + url.PathEscape(width) + "/" + url.PathEscape(height) + extension

	query := params.Values{}
	if overrides.Has("grayscale") {
		query["grayscale"] = ""
	}

	if overrides.Has("blur") {
		query["blur"] = overrides["blur"]
	}

	return target, query, nil
}
