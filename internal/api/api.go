package api

import (
	"net/http"
	"time"

	"github.com/DMarby/photo-gateway/internal/handler"
	"github.com/DMarby/photo-gateway/internal/health"
	"github.com/DMarby/photo-gateway/internal/logger"
	"github.com/DMarby/photo-gateway/internal/photo"
	"github.com/DMarby/photo-gateway/internal/tracing"
	"github.com/gorilla/mux"
)

// API is a http api
type API struct {
	Fetcher        photo.Fetcher
	HealthChecker  *health.Checker
	Log            *logger.Logger
	Tracer         *tracing.Tracer
	HandlerTimeout time.Duration
}

// Utility methods for logging
func (a *API) logError(r *http.Request, message string, err error) {
	a.Log.Errorw(message, handler.LogFields(r, "error", err)...)
}

// Router returns a http router
func (a *API) Router() http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = handler.Handler(a.notFoundHandler)
	router.MethodNotAllowedHandler = handler.Handler(a.methodNotAllowedHandler)

	// Redirect trailing slashes
	router.StrictSlash(true)

	// Healthcheck
	router.Handle("/health", handler.Health(a.HealthChecker)).Methods("GET")

	// Route discovery
	router.Handle("/", handler.Handler(a.indexHandler)).Methods("GET").Name("index")

	// Photo routes
	router.Handle("/picture/{provider}", handler.Handler(a.pictureHandler)).Methods("GET")

	// Query parameters are passed on to the provider as overrides, e.g:
	// ?w={width}&h={height} - Photo dimensions
	// ?theme={theme} - Search term, sent as "query"
	// ?grayscale, ?blur={amount}, ?webp - Lorem Picsum only

	routeMatcher := &handler.MuxRouteMatcher{Router: router}

	// Set up handlers for adding a request id, handling panics, request logging, tracing, metrics, setting CORS headers, and handler execution timeout
	return handler.AddRequestID(
		handler.Recovery(a.Log,
			handler.Logger(a.Log,
				handler.Tracer(a.Tracer,
					handler.Metrics(
						handler.CORS([]string{handler.RequestIDHeader}, http.TimeoutHandler(router, a.HandlerTimeout, "Something went wrong. Timed out.")),
						routeMatcher,
					),
					routeMatcher,
				),
			),
		),
	)
}

// Handle not found errors
var notFoundError = &handler.Error{
	Message: "page not found",
	Code:    http.StatusNotFound,
}

func (a *API) notFoundHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	return notFoundError
}

// Handle requests using a method other than GET
var methodNotAllowedError = &handler.Error{
	Message: "method not allowed",
	Code:    http.StatusMethodNotAllowed,
}

func (a *API) methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	w.Header().Set("Allow", http.MethodGet)
	return methodNotAllowedError
}
