// Package unsplash implements the Unsplash photo provider
// The random photo endpoint returns JSON metadata, and the photo itself is downloaded from the URL it points to
package unsplash

import (
	"context"
	"errors"

	"github.com/DMarby/photo-gateway/internal/params"
	"github.com/DMarby/photo-gateway/internal/provider"
	"github.com/tidwall/gjson"
)

const (
	// ID is the provider ID
	ID = "unsplash"
	// BaseURL is the random photo endpoint
	BaseURL = "https://api.unsplash.com/photos/random"

	photoURLPath = "urls.full"
)

// Errors
var (
	ErrInvalidResponse = errors.New("unsplash: response is not valid json")
	ErrMissingPhotoURL = errors.New("unsplash: response is missing " + photoURLPath)
)

// Provider is the Unsplash provider
type Provider struct {
	provider.Base
}

// New returns a new Provider, authenticating with the given access key
func New(baseURL, accessKey string) *Provider {
	return &Provider{
		provider.Base{
			Cfg: provider.Config{
				ID:      ID,
				BaseURL: baseURL,
				Headers: map[string]string{
					"Authorization": "Client-ID " + accessKey,
				},
				Defaults: params.Values{
					"orientation": "landscape",
					"w":           "1920",
					"h":           "1080",
				},
			},
		},
	}
}

// Postprocess downloads the full size photo referenced by the metadata response
func (p *Provider) Postprocess(ctx context.Context, client *provider.Client, resp *provider.Response, query params.Values) ([]byte, string, error) {
	if !gjson.ValidBytes(resp.Body) {
		return nil, "", ErrInvalidResponse
	}

	photoURL := gjson.GetBytes(resp.Body, photoURLPath)
	if !photoURL.Exists() || photoURL.String() == "" {
		return nil, "", ErrMissingPhotoURL
	}

	photo, err := client.Get(ctx, photoURL.String(), nil, nil)
	if err != nil {
		return nil, "", err
	}

	return photo.Body, photo.ContentType(), nil
}
