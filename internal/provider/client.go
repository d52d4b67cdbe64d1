package provider

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DMarby/photo-gateway/internal/params"
	"github.com/DMarby/photo-gateway/internal/tracing"
	"github.com/rs/dnscache"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TransportError is returned when a request to a provider fails at the transport level,
// either by not completing or by completing with a non-2xx status
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %s", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is the cause of a TransportError for responses with a non-2xx status
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// Response is a fully buffered provider response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the Content-Type of the response, or DefaultMIMEType if it isn't set
func (r *Response) ContentType() string {
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		return contentType
	}

	return DefaultMIMEType
}

// Client performs requests to photo providers
type Client struct {
	HTTP *http.Client
}

// NewTransport returns a pooled transport, resolving hosts through the resolver if it's not nil
func NewTransport(resolver *dnscache.Resolver) *http.Transport {
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	if resolver != nil {
		t.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}

			ips, err := resolver.LookupHost(ctx, host)
			if err != nil {
				return nil, err
			}

			var d net.Dialer
			return d.DialContext(ctx, network, net.JoinHostPort(ips[0], port))
		}
	}

	return t
}

// NewClient returns a client where every request has the given timeout
// Outgoing requests are traced when a tracer is given
func NewClient(transport http.RoundTripper, tracer *tracing.Tracer, timeout time.Duration) *Client {
	if tracer != nil {
		transport = otelhttp.NewTransport(transport, otelhttp.WithTracerProvider(tracer))
	}

	return &Client{
		HTTP: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// Get performs a GET request and buffers the response
// Any failure, including a non-2xx status, is returned as a *TransportError
func (c *Client) Get(ctx context.Context, target string, headers map[string]string, query params.Values) (*Response, error) {
	u, err := buildURL(target, query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransportError{URL: redact(u), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain the body so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{URL: redact(u), Err: &StatusError{Code: resp.StatusCode}}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: redact(u), Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// buildURL appends the query parameters to the target URL, keeping any query it already has
func buildURL(target string, query params.Values) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid provider url: %w", err)
	}

	encoded := strings.TrimPrefix(params.BuildQuery(query), "?")
	if encoded == "" {
		return u.String(), nil
	}

	if u.RawQuery != "" {
		u.RawQuery += "&" + encoded
	} else {
		u.RawQuery = encoded
	}

	return u.String(), nil
}

// redact strips the query from a URL before it's used in an error message
func redact(target string) string {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		return target[:i]
	}

	return target
}
