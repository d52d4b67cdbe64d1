package metrics

import (
	"context"
	"net/http"
	"net/http/pprof"

	"github.com/DMarby/photo-gateway/internal/handler"
	"github.com/DMarby/photo-gateway/internal/health"
	"github.com/DMarby/photo-gateway/internal/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router returns the http router for metrics, healthchecks and profiling
func Router(healthChecker *health.Checker) http.Handler {
	router := http.NewServeMux()
	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/health", handler.Health(healthChecker))

	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return router
}

// Serve starts an http server for metrics and healthchecks, and blocks until the context is done
func Serve(ctx context.Context, log *logger.Logger, healthChecker *health.Checker, listenAddress string) error {
	server := &http.Server{
		Addr:     listenAddress,
		Handler:  Router(healthChecker),
		ErrorLog: logger.NewHTTPErrorLog(log),
	}

	errs := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
		close(errs)
	}()

	log.Infof("metrics http server listening on %s", listenAddress)

	select {
	case err := <-errs:
		if err != nil {
			log.Infof("shutting down the metrics http server: %s", err)
		}
		return err
	case <-ctx.Done():
	}

	if err := server.Close(); err != nil {
		log.Warnf("error shutting down metrics http server: %s", err)
	}

	return nil
}
