package handler

import (
	"fmt"
	"net/http"

	"github.com/DMarby/photo-gateway/internal/logger"
	"github.com/DMarby/photo-gateway/internal/tracing"
	"github.com/felixge/httpsnoop"
)

// Logger is a handler that logs requests using Zap
func Logger(log *logger.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respMetrics := httpsnoop.CaptureMetricsFn(w, func(ww http.ResponseWriter) {
			h.ServeHTTP(ww, r)
		})

		traceID, _ := tracing.TraceInfo(r.Context())
		logFields := LogFields(r,
			"trace-id", traceID,
			"http-method", r.Method,
			"remote-addr", r.RemoteAddr,
			"user-agent", r.UserAgent(),
			"uri", r.URL.String(),
			"status-code", respMetrics.Code,
			"bytes", respMetrics.Written,
			"elapsed", fmt.Sprintf("%.9fs", respMetrics.Duration.Seconds()),
		)

		switch {
		case respMetrics.Code >= 500:
			log.Errorw("Request completed", logFields...)
		case respMetrics.Code >= 400:
			log.Infow("Request completed", logFields...)
		default:
			log.Debugw("Request completed", logFields...)
		}
	})
}

// LogFields logs the given keys and values for a request
func LogFields(r *http.Request, keysAndValues ...interface{}) []interface{} {
	ctx := r.Context()
	id := GetReqID(ctx)

	return append([]interface{}{"request-id", id}, keysAndValues...)
}
