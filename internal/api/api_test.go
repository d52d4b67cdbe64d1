package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/DMarby/photo-gateway/internal/api"
	"github.com/DMarby/photo-gateway/internal/health"
	"github.com/DMarby/photo-gateway/internal/logger"
	"github.com/DMarby/photo-gateway/internal/tracing/test"
	"github.com/twmb/murmur3"
	"go.uber.org/zap"

	mockFetcher "github.com/DMarby/photo-gateway/internal/photo/mock"
)

var errorHeaders = map[string]string{
	"Content-Type":  "application/json",
	"Cache-Control": "no-cache, no-store, must-revalidate",
}

func TestAPI(t *testing.T) {
	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker := &health.Checker{Ctx: ctx, Log: log}
	checker.Run()

	router := (&api.API{
		Fetcher:        &mockFetcher.Fetcher{},
		HealthChecker:  checker,
		Log:            log,
		Tracer:         test.Tracer(log),
		HandlerTimeout: time.Minute,
	}).Router()

	tests := []struct {
		Name             string
		URL              string
		ExpectedStatus   int
		ExpectedResponse []byte
		ExpectedHeaders  map[string]string
	}{
		// Photos
		{"photo without overrides", "/picture/unsplash", http.StatusOK, []byte("unsplash:0"), map[string]string{
			"Content-Type":  "image/webp",
			"Cache-Control": "no-cache, no-store, must-revalidate",
			"ETag":          fmt.Sprintf("\"%016x\"", murmur3.Sum64([]byte("unsplash:0"))),
		}},
		{"photo with overrides", "/picture/lorem_picsum?w=800&h=600&grayscale", http.StatusOK, []byte("lorem_picsum:3"), map[string]string{
			"Content-Type": "image/webp",
		}},
		{"repeated query parameters only count once", "/picture/lorem_picsum?w=800&w=600", http.StatusOK, []byte("lorem_picsum:1"), nil},

		// Errors
		{"unknown provider", "/picture/unknown", http.StatusBadRequest, []byte("{\"error\":\"Unknown provider: unknown\"}\n"), errorHeaders},
		{"unreachable provider", "/picture/unreachable", http.StatusBadGateway, []byte("{\"error\":\"failed to fetch photo from unreachable\"}\n"), errorHeaders},
		{"unexpected error", "/picture/error", http.StatusInternalServerError, []byte("{\"error\":\"Internal server error\"}\n"), errorHeaders},
		{"panic", "/picture/panic", http.StatusInternalServerError, []byte("{\"error\":\"Internal server error\"}\n"), errorHeaders},
		{"404", "/asdf", http.StatusNotFound, []byte("{\"error\":\"page not found\"}\n"), errorHeaders},

		// Health
		{"health", "/health", http.StatusOK, []byte("{\"healthy\":true}\n"), map[string]string{
			"Content-Type":  "application/json",
			"Cache-Control": "no-cache, no-store, must-revalidate",
		}},

		// Discovery
		{"index", "/", http.StatusOK, []byte(
			"[{\"route\":\"/\",\"methods\":[\"GET\"],\"description\":\"Lists the available routes\"}," +
				"{\"route\":\"/picture/{provider}\",\"methods\":[\"GET\"],\"description\":\"Returns a random photo from the given provider, query parameters override the provider defaults\"}]\n",
		), map[string]string{
			"Content-Type": "application/json",
		}},
	}

	for _, test := range tests {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", test.URL, nil)
		router.ServeHTTP(w, req)

		if w.Code != test.ExpectedStatus {
			t.Errorf("%s: wrong response code, %#v", test.Name, w.Code)
			continue
		}

		for expectedHeader, expectedValue := range test.ExpectedHeaders {
			if headerValue := w.Header().Get(expectedHeader); headerValue != expectedValue {
				t.Errorf("%s: wrong header value for %s, %#v", test.Name, expectedHeader, headerValue)
			}
		}

		if w.Header().Get("X-Request-Id") == "" {
			t.Errorf("%s: missing request id", test.Name)
		}

		if !reflect.DeepEqual(w.Body.Bytes(), test.ExpectedResponse) {
			t.Errorf("%s: wrong response %#v", test.Name, w.Body.String())
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	router := (&api.API{
		Fetcher:        &mockFetcher.Fetcher{},
		HealthChecker:  &health.Checker{Ctx: context.Background(), Log: log},
		Log:            log,
		Tracer:         test.Tracer(log),
		HandlerTimeout: time.Minute,
	}).Router()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/picture/unsplash", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("wrong response code, %#v", w.Code)
	}

	for expectedHeader, expectedValue := range errorHeaders {
		if headerValue := w.Header().Get(expectedHeader); headerValue != expectedValue {
			t.Errorf("wrong header value for %s, %#v", expectedHeader, headerValue)
		}
	}

	if allow := w.Header().Get("Allow"); allow != "GET" {
		t.Errorf("wrong allow header %#v", allow)
	}

	if body := w.Body.String(); body != "{\"error\":\"method not allowed\"}\n" {
		t.Errorf("wrong response %#v", body)
	}
}

func TestConditionalRequest(t *testing.T) {
	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	router := (&api.API{
		Fetcher:        &mockFetcher.Fetcher{},
		HealthChecker:  &health.Checker{Ctx: context.Background(), Log: log},
		Log:            log,
		Tracer:         test.Tracer(log),
		HandlerTimeout: time.Minute,
	}).Router()

	tag := fmt.Sprintf("\"%016x\"", murmur3.Sum64([]byte("unsplash:0")))

	tests := []struct {
		Name           string
		IfNoneMatch    string
		ExpectedStatus int
		ExpectedBody   string
	}{
		{"matching etag", tag, http.StatusNotModified, ""},
		{"matching weak etag in a list", "\"other\", W/" + tag, http.StatusNotModified, ""},
		{"wildcard", "*", http.StatusNotModified, ""},
		{"stale etag", "\"0000000000000000\"", http.StatusOK, "unsplash:0"},
		{"no etag", "", http.StatusOK, "unsplash:0"},
	}

	for _, test := range tests {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/picture/unsplash", nil)
		if test.IfNoneMatch != "" {
			req.Header.Set("If-None-Match", test.IfNoneMatch)
		}
		router.ServeHTTP(w, req)

		if w.Code != test.ExpectedStatus {
			t.Errorf("%s: wrong response code, %#v", test.Name, w.Code)
			continue
		}

		if etag := w.Header().Get("ETag"); etag != tag {
			t.Errorf("%s: wrong etag %#v", test.Name, etag)
		}

		if body := w.Body.String(); body != test.ExpectedBody {
			t.Errorf("%s: wrong response %#v", test.Name, body)
		}
	}
}
