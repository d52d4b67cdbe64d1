package health

import (
	"context"
	"sync"
	"time"

	"github.com/DMarby/photo-gateway/internal/cache"
	"github.com/DMarby/photo-gateway/internal/logger"
	"github.com/DMarby/photo-gateway/internal/provider"
)

const checkInterval = 10 * time.Second
const checkTimeout = 8 * time.Second

const cacheCheckKey = "healthcheck"

// Checker is a periodic health checker
type Checker struct {
	Ctx      context.Context
	Cache    cache.Provider     // Only checked if set
	Registry *provider.Registry // Only checked if set
	status   Status
	mutex    sync.RWMutex
	Log      *logger.Logger
}

// Status contains the healtcheck status
type Status struct {
	Healthy   bool     `json:"healthy"`
	Cache     string   `json:"cache,omitempty"`
	Providers []string `json:"providers,omitempty"`
}

// Run starts the health checker
func (c *Checker) Run() {
	ticker := time.NewTicker(checkInterval)
	go func() {
		for {
			select {
			case <-ticker.C:
				c.runCheck()
			case <-c.Ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()

	c.runCheck()
}

// Status returns the status of the health checks
func (c *Checker) Status() Status {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.status
}

func (c *Checker) runCheck() {
	ctx, cancel := context.WithTimeout(c.Ctx, checkTimeout)
	defer cancel()

	channel := make(chan Status, 1)
	go func() {
		c.check(ctx, channel)
	}()

	select {
	case <-ctx.Done():
		c.mutex.Lock()

		c.status = Status{
			Healthy: false,
		}
		if c.Cache != nil {
			c.status.Cache = "unknown"
		}

		c.mutex.Unlock()
		c.Log.Errorw("healthcheck timed out")
	case status, ok := <-channel:
		if !ok {
			return
		}

		c.mutex.Lock()
		c.status = status
		c.mutex.Unlock()
		if !status.Healthy {
			c.Log.Errorw("healthcheck error",
				"status", status,
			)
		}
	}
}

func (c *Checker) check(ctx context.Context, channel chan Status) {
	defer close(channel)

	if ctx.Err() != nil {
		return
	}

	status := Status{
		Healthy: true,
	}

	if c.Cache != nil {
		if _, err := c.Cache.Get(ctx, cacheCheckKey); err != cache.ErrNotFound {
			status.Healthy = false
			status.Cache = "unhealthy"
		} else {
			status.Cache = "healthy"
		}
	}

	if ctx.Err() != nil {
		return
	}

	if c.Registry != nil {
		status.Providers = c.Registry.IDs()
		if len(status.Providers) == 0 {
			status.Healthy = false
		}
	}

	channel <- status
}
