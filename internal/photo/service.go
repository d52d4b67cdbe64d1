package photo

import (
	"context"
	"errors"
	"time"

	"github.com/DMarby/photo-gateway/internal/cache"
	"github.com/DMarby/photo-gateway/internal/logger"
	"github.com/DMarby/photo-gateway/internal/params"
	"github.com/DMarby/photo-gateway/internal/provider"
	"github.com/DMarby/photo-gateway/internal/tracing"
)

// Service fetches photos from the registered providers, caching the results
type Service struct {
	Registry *provider.Registry
	Cache    *cache.Store
	Client   *provider.Client
	Log      *logger.Logger
	Tracer   *tracing.Tracer
}

// Fetch returns a photo from the provider, using the overrides as request parameters
// Transport failures are returned as a *FetchError, anything else is returned as is
func (s *Service) Fetch(ctx context.Context, providerID string, overrides params.Values) (*Photo, error) {
	ctx, span := s.Tracer.Start(ctx, "photo.Fetch")
	defer span.End()
	span.SetAttributes(tracing.ProviderAttribute(providerID))

	p, err := s.Registry.Lookup(providerID)
	if err != nil {
		return nil, err
	}

	built := params.Build(p.Config().Defaults, overrides)
	s.Log.Debugw("built request params", "provider", providerID, "params", built)

	// The cache is keyed on the overrides rather than the built params
	entry, err := s.Cache.Get(ctx, providerID, overrides)
	switch {
	case err == nil:
		cacheLookups.WithLabelValues(providerID, "hit").Inc()
		s.Log.Debugw("cache hit", "provider", providerID, "overrides", overrides)
		return &Photo{Data: entry.Data, MIMEType: entry.MIMEType}, nil
	case err != cache.ErrNotFound:
		tracing.RecordError(span, err)
		return nil, err
	}

	if s.Cache.Enabled {
		cacheLookups.WithLabelValues(providerID, "miss").Inc()
	}

	// Once issued, a provider request runs to completion or to the client timeout, even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	data, mimeType, err := s.fetch(ctx, p, built, overrides)
	if err != nil {
		tracing.RecordError(span, err)

		var transportErr *provider.TransportError
		if errors.As(err, &transportErr) {
			s.Log.Errorw("error fetching from provider", "provider", providerID, "error", err)
			return nil, &FetchError{Provider: providerID, Err: err}
		}

		return nil, err
	}

	if err := s.Cache.Put(ctx, providerID, overrides, cache.Entry{Data: data, MIMEType: mimeType}); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	return &Photo{Data: data, MIMEType: mimeType}, nil
}

// fetch runs the provider hooks around the request to the provider
func (s *Service) fetch(ctx context.Context, p provider.Provider, built, overrides params.Values) (data []byte, mimeType string, err error) {
	cfg := p.Config()
	start := time.Now()

	defer func() {
		providerFetchDuration.WithLabelValues(cfg.ID).Observe(time.Since(start).Seconds())
		providerFetches.WithLabelValues(cfg.ID, fetchOutcome(err)).Inc()
	}()

	target, query, err := p.Preprocess(provider.Request{
		URL:       cfg.BaseURL,
		Params:    built.Clone(),
		Overrides: overrides.Clone(),
	})
	if err != nil {
		return nil, "", err
	}

	s.Log.Debugw("requesting photo", "provider", cfg.ID, "url", target, "params", query)

	resp, err := s.Client.Get(ctx, target, cfg.Headers, query)
	if err != nil {
		return nil, "", err
	}

	data, mimeType, err = p.Postprocess(ctx, s.Client, resp, query)
	if err != nil {
		return nil, "", err
	}

	s.Log.Infow("fetched photo", "provider", cfg.ID, "bytes", len(data), "mime-type", mimeType)
	return data, mimeType, nil
}

func fetchOutcome(err error) string {
	var transportErr *provider.TransportError

	switch {
	case err == nil:
		return outcomeSuccess
	case errors.As(err, &transportErr):
		return outcomeTransportError
	default:
		return outcomeError
	}
}
