package mock

import (
	"context"
	"fmt"

	"github.com/DMarby/photo-gateway/internal/params"
	"github.com/DMarby/photo-gateway/internal/provider"
)

// ErrPostprocess is returned by Provider.Postprocess when the response body is "malformed"
var ErrPostprocess = fmt.Errorf("malformed response")

// Provider is a mock provider that passes the request through
// A "malformed" response body makes Postprocess fail with ErrPostprocess
type Provider struct {
	provider.Base
}

// New returns a new mock Provider
func New(id, baseURL string) *Provider {
	return &Provider{
		provider.Base{
			Cfg: provider.Config{
				ID:       id,
				BaseURL:  baseURL,
				Headers:  map[string]string{"X-Provider": id},
				Defaults: params.Values{"size": "large"},
			},
		},
	}
}

// Postprocess returns the response body, unless it's "malformed"
func (p *Provider) Postprocess(ctx context.Context, client *provider.Client, resp *provider.Response, query params.Values) ([]byte, string, error) {
	if string(resp.Body) == "malformed" {
		return nil, "", ErrPostprocess
	}

	return p.Base.Postprocess(ctx, client, resp, query)
}
