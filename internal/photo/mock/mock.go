package mock

import (
	"context"
	"fmt"

	"github.com/DMarby/photo-gateway/internal/params"
	"github.com/DMarby/photo-gateway/internal/photo"
	"github.com/DMarby/photo-gateway/internal/provider"
)

// Fetcher is a mock photo fetcher
// The provider ID decides the outcome: "unknown" is an unknown provider, "unreachable" a fetch failure, "error" an unexpected error
type Fetcher struct{}

// Fetch returns a photo containing the provider ID and the number of overrides
func (f *Fetcher) Fetch(ctx context.Context, providerID string, overrides params.Values) (*photo.Photo, error) {
	switch providerID {
	case "unknown":
		return nil, fmt.Errorf("%w: %s", provider.ErrUnknownProvider, providerID)
	case "unreachable":
		return nil, &photo.FetchError{Provider: providerID, Err: fmt.Errorf("connection refused")}
	case "error":
		return nil, fmt.Errorf("error")
	case "panic":
		panic("mock fetcher panic")
	}

	return &photo.Photo{
		Data:     []byte(fmt.Sprintf("%s:%d", providerID, len(overrides))),
		MIMEType: "image/webp",
	}, nil
}
