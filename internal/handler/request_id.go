package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the header used to pass on and return the request id
const RequestIDHeader = "X-Request-Id"

type ctxKeyRequestID int

const requestIDKey ctxKeyRequestID = 0

// AddRequestID is a handler that adds a request id to the request context and response headers
// An id sent by the client is reused, otherwise a new one is generated
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.Must(uuid.NewV7()).String()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetReqID returns the request id from the context, if there is one
func GetReqID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}

	return ""
}
