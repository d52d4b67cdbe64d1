package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheOtter  = "otter"
)

// DefaultFetchTimeout is the deadline for a single outbound provider request
const DefaultFetchTimeout = 10 * time.Second

// Config is the gateway configuration, built once at startup
type Config struct {
	// CacheEnabled toggles memoizing fetched photos in process memory
	CacheEnabled bool
	// CacheBackend is the in-process cache implementation to use
	CacheBackend string
	// UnsplashAccessKey is used to authenticate against the Unsplash API
	UnsplashAccessKey string
	// FetchTimeout is the deadline for each request made to a provider
	FetchTimeout time.Duration
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case CacheMemory, CacheOtter:
	default:
		return fmt.Errorf("invalid cache backend %q", c.CacheBackend)
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("invalid fetch timeout %s", c.FetchTimeout)
	}

	return nil
}

// ParseToggle returns whether the value is one of the truthy values "1", "true" or "yes", ignoring case
// Surrounding whitespace is not trimmed
func ParseToggle(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// Fallback returns value, or the named environment variable if value is empty
// It's used to honour the unprefixed environment variables of earlier deployments
func Fallback(value string, envKey string) string {
	if value != "" {
		return value
	}

	return os.Getenv(envKey)
}
