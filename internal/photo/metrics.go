package photo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "photo_cache_lookups_total",
	Help: "Number of photo cache lookups, by provider and result",
}, []string{"provider", "result"})

var providerFetches = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "photo_provider_fetches_total",
	Help: "Number of photo fetches from providers, by provider and outcome",
}, []string{"provider", "outcome"})

var providerFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "photo_provider_fetch_duration_seconds",
	Help:    "Time spent fetching photos from providers",
	Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
}, []string{"provider"})

// Fetch outcomes
const (
	outcomeSuccess        = "success"
	outcomeTransportError = "transport_error"
	outcomeError          = "error"
)
