package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Http timeouts
// The handler timeout has to fit a full upstream fetch, including the secondary unsplash download
const (
	ReadTimeout    = 5 * time.Second
	WriteTimeout   = time.Minute
	HandlerTimeout = 45 * time.Second
)

// ShutdownTimeout is how long in-flight requests get to finish when shutting down
const ShutdownTimeout = 10 * time.Second

// WaitForInterrupt waits for an interrupt
func WaitForInterrupt(ctx context.Context) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		return fmt.Errorf("received signal %s", sig)
	case <-ctx.Done():
		return errors.New("canceled")
	}
}
