package photo

import (
	"context"
	"errors"
	"fmt"

	"github.com/DMarby/photo-gateway/internal/params"
)

// Photo is a photo fetched from a provider
type Photo struct {
	Data     []byte
	MIMEType string
}

// Fetcher is an interface for fetching photos from a provider
type Fetcher interface {
	Fetch(ctx context.Context, providerID string, overrides params.Values) (*Photo, error)
}

// Errors
var (
	ErrFetchFailed = errors.New("fetch failed")
)

// FetchError is returned when a provider couldn't be reached, or responded with an error
type FetchError struct {
	Provider string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch photo from %s", e.Provider)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes FetchError match ErrFetchFailed
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
