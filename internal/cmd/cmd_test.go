package cmd_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/DMarby/photo-gateway/internal/cmd"
)

func TestWaitForInterruptCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cmd.WaitForInterrupt(ctx); err == nil || err.Error() != "canceled" {
		t.Errorf("wrong error %#v", err)
	}
}

func TestWaitForInterruptSignal(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		time.Sleep(50 * time.Millisecond)
		syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
	}()

	if err := cmd.WaitForInterrupt(ctx); err == nil || err.Error() != "received signal terminated" {
		t.Errorf("wrong error %#v", err)
	}
}
