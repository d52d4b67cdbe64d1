package handler

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "http_requests_in_flight",
	Help: "Number of http requests currently being served",
})

var httpRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "Duration of http requests, by route and status code",
	Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5, 10},
}, []string{"path", "code"})

// Metrics is a handler that collects performance metrics
func Metrics(h http.Handler, routeMatcher RouteMatcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeMatcher.Match(r)

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		respMetrics := httpsnoop.CaptureMetricsFn(w, func(ww http.ResponseWriter) {
			h.ServeHTTP(ww, r)
		})

		httpRequestDurationSeconds.WithLabelValues(route, strconv.Itoa(respMetrics.Code)).Observe(respMetrics.Duration.Seconds())
	})
}
