package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DMarby/photo-gateway/internal/logger"
	"github.com/DMarby/photo-gateway/internal/params"
	"github.com/DMarby/photo-gateway/internal/provider"
	"github.com/DMarby/photo-gateway/internal/tracing/test"
	"github.com/rs/dnscache"
	"go.uber.org/zap"
)

func TestClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/photo":
			w.Header().Set("Content-Type", "image/webp")
			w.Header().Set("X-Query", r.URL.RawQuery)
			w.Header().Set("X-Auth", r.Header.Get("Authorization"))
			w.Write([]byte("photo"))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte("slow"))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer ts.Close()

	log := logger.New(zap.FatalLevel)
	defer log.Sync()

	client := provider.NewClient(provider.NewTransport(&dnscache.Resolver{}), test.Tracer(log), 100*time.Millisecond)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		resp, err := client.Get(ctx, ts.URL+"/photo", map[string]string{"Authorization": "Client-ID key"}, params.Values{"grayscale": "", "blur": "2"})
		if err != nil {
			t.Fatal(err)
		}

		if string(resp.Body) != "photo" {
			t.Errorf("wrong body %s", resp.Body)
		}

		if resp.ContentType() != "image/webp" {
			t.Errorf("wrong content type %s", resp.ContentType())
		}

		if query := resp.Header.Get("X-Query"); query != "blur=2&grayscale" {
			t.Errorf("wrong query %s", query)
		}

		if auth := resp.Header.Get("X-Auth"); auth != "Client-ID key" {
			t.Errorf("wrong authorization header %s", auth)
		}
	})

	t.Run("existing query", func(t *testing.T) {
		resp, err := client.Get(ctx, ts.URL+"/photo?a=1", nil, params.Values{"b": "2"})
		if err != nil {
			t.Fatal(err)
		}

		if query := resp.Header.Get("X-Query"); query != "a=1&b=2" {
			t.Errorf("wrong query %s", query)
		}
	})

	t.Run("non-2xx status", func(t *testing.T) {
		_, err := client.Get(ctx, ts.URL+"/missing", nil, nil)

		var transportErr *provider.TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("wrong error %v", err)
		}

		var statusErr *provider.StatusError
		if !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound {
			t.Fatalf("wrong status error %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		_, err := client.Get(ctx, ts.URL+"/slow", nil, nil)

		var transportErr *provider.TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("wrong error %v", err)
		}
	})

	t.Run("connection error", func(t *testing.T) {
		closed := httptest.NewServer(http.NotFoundHandler())
		closed.Close()

		_, err := client.Get(ctx, closed.URL, nil, nil)

		var transportErr *provider.TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("wrong error %v", err)
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := client.Get(ctx, "://invalid", nil, nil)
		if err == nil {
			t.Fatal("no error")
		}

		var transportErr *provider.TransportError
		if errors.As(err, &transportErr) {
			t.Fatal("an invalid url is not a transport error")
		}
	})
}
