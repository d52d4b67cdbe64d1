package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/DMarby/photo-gateway/internal/api"
	"github.com/DMarby/photo-gateway/internal/cache"
	"github.com/DMarby/photo-gateway/internal/cache/memory"
	"github.com/DMarby/photo-gateway/internal/cache/otter"
	"github.com/DMarby/photo-gateway/internal/cmd"
	"github.com/DMarby/photo-gateway/internal/config"
	"github.com/DMarby/photo-gateway/internal/health"
	"github.com/DMarby/photo-gateway/internal/logger"
	"github.com/DMarby/photo-gateway/internal/metrics"
	"github.com/DMarby/photo-gateway/internal/photo"
	"github.com/DMarby/photo-gateway/internal/provider"
	"github.com/DMarby/photo-gateway/internal/provider/picsum"
	"github.com/DMarby/photo-gateway/internal/provider/unsplash"
	"github.com/DMarby/photo-gateway/internal/tracing"

	"github.com/jamiealquiza/envy"
	"github.com/joho/godotenv"
	"github.com/rs/dnscache"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const dnsRefreshInterval = 5 * time.Minute

// Comandline flags
var (
	// Global
	listen        = flag.String("listen", ":8080", "listen address")
	metricsListen = flag.String("metrics-listen", "127.0.0.1:8082", "metrics listen address")
	loglevel      = zap.LevelFlag("log-level", zap.InfoLevel, "log level (default \"info\") (debug, info, warn, error, dpanic, panic, fatal)")

	// Cache
	enableCache  = flag.String("enable-cache", "", "whether to cache fetched photos in memory (1, true, yes)")
	cacheBackend = flag.String("cache", config.CacheMemory, "which cache backend to use (memory, otter)")

	// Providers
	unsplashAccessKey = flag.String("unsplash-access-key", "", "unsplash api access key")
	fetchTimeout      = flag.Duration("fetch-timeout", config.DefaultFetchTimeout, "timeout for each request to a photo provider")
)

func main() {
	// Load the .env file, if there is one
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "error loading .env file: %s\n", err)
		os.Exit(1)
	}

	// Parse environment variables
	envy.Parse("PHOTO")

	// Parse commandline flags
	flag.Parse()

	// Initialize the logger
	log := logger.New(*loglevel)
	defer log.Sync()

	// Set GOMAXPROCS
	maxprocs.Set(maxprocs.Logger(log.Infof))

	cfg := config.Config{
		CacheEnabled:      config.ParseToggle(config.Fallback(*enableCache, "ENABLE_PHOTO_CACHE")),
		CacheBackend:      *cacheBackend,
		UnsplashAccessKey: config.Fallback(*unsplashAccessKey, "UNSPLASH_ACCESS_KEY"),
		FetchTimeout:      *fetchTimeout,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %s", err)
	}

	if cfg.UnsplashAccessKey == "" {
		log.Warn("no unsplash access key configured, requests to unsplash will fail")
	}

	// Set up context for shutting down
	shutdownCtx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	// Initialize tracing
	tracer, err := tracing.New(shutdownCtx, log, "photo-gateway")
	if err != nil {
		log.Fatalf("error initializing tracing: %s", err)
	}
	defer func() {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), cmd.ShutdownTimeout)
		defer tracerCancel()
		tracer.Shutdown(tracerCtx)
	}()

	// Initialize the cache
	cacheProvider, err := setupCache(cfg)
	if err != nil {
		log.Fatalf("error initializing cache: %s", err)
	}
	defer cacheProvider.Shutdown()

	// Initialize the outbound client, resolving provider hosts through a dns cache
	resolver := &dnscache.Resolver{}
	go refreshDNS(shutdownCtx, resolver)

	client := provider.NewClient(provider.NewTransport(resolver), tracer, cfg.FetchTimeout)

	registry := provider.NewRegistry(
		unsplash.New(unsplash.BaseURL, cfg.UnsplashAccessKey),
		picsum.New(picsum.BaseURL),
	)

	service := &photo.Service{
		Registry: registry,
		Cache: &cache.Store{
			Provider: cacheProvider,
			Enabled:  cfg.CacheEnabled,
			Tracer:   tracer,
		},
		Client: client,
		Log:    log,
		Tracer: tracer,
	}

	// Initialize and start the health checker
	checker := &health.Checker{
		Ctx:      shutdownCtx,
		Cache:    cacheProvider,
		Registry: registry,
		Log:      log,
	}
	go checker.Run()

	log.Infow("starting photo gateway",
		"providers", registry.IDs(),
		"cache-enabled", cfg.CacheEnabled,
		"cache-backend", cfg.CacheBackend,
		"fetch-timeout", cfg.FetchTimeout,
	)

	// Start and listen on http
	api := &api.API{
		Fetcher:        service,
		HealthChecker:  checker,
		Log:            log,
		Tracer:         tracer,
		HandlerTimeout: cmd.HandlerTimeout,
	}
	server := &http.Server{
		Addr:         *listen,
		Handler:      api.Router(),
		ReadTimeout:  cmd.ReadTimeout,
		WriteTimeout: cmd.WriteTimeout,
		ErrorLog:     logger.NewHTTPErrorLog(log),
	}

	g, gCtx := errgroup.WithContext(shutdownCtx)

	g.Go(func() error {
		log.Infof("http server listening on %s", *listen)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return metrics.Serve(gCtx, log, checker, *metricsListen)
	})

	g.Go(func() error {
		// Wait for shutdown or error
		err := cmd.WaitForInterrupt(gCtx)
		log.Infof("shutting down: %s", err)

		// Shut down http server
		serverCtx, serverCancel := context.WithTimeout(context.Background(), cmd.ShutdownTimeout)
		defer serverCancel()
		if err := server.Shutdown(serverCtx); err != nil {
			log.Warnf("error shutting down: %s", err)
		}

		shutdown()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Errorf("error running servers: %s", err)
	}
}

func setupCache(cfg config.Config) (cache.Provider, error) {
	switch cfg.CacheBackend {
	case config.CacheMemory:
		return memory.New(), nil
	case config.CacheOtter:
		return otter.New()
	default:
		return nil, fmt.Errorf("invalid cache backend")
	}
}

func refreshDNS(ctx context.Context, resolver *dnscache.Resolver) {
	ticker := time.NewTicker(dnsRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			resolver.Refresh(true)
		case <-ctx.Done():
			return
		}
	}
}
