package handler

import (
	"net/http"
	"runtime/debug"

	"github.com/DMarby/photo-gateway/internal/logger"
	"github.com/DMarby/photo-gateway/internal/tracing"
)

// Recovery is a handler for handling panics
func Recovery(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				WriteError(w, InternalServerError())

				ctx := r.Context()
				traceID, spanID := tracing.TraceInfo(ctx)
				log.Errorw("panic handling request",
					"request-id", GetReqID(ctx),
					"trace-id", traceID,
					"span-id", spanID,
					"panic", err,
					"stacktrace", string(debug.Stack()),
				)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
