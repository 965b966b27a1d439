package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/kbc-construction/site/pkg/live"
)

// LivePath is where the live WebSocket endpoint is mounted.
const LivePath = "/_live"

// Config configures the site server.
type Config struct {
	// Address is the listen address (default ":8080").
	Address string

	// PublicDir holds the /images and /videos trees. Empty disables static
	// file serving.
	PublicDir string

	// DevMode disables client script caching.
	DevMode bool

	// Metrics exposes /metrics and records request metrics.
	Metrics bool

	// Tracing wraps every request in an OpenTelemetry server span.
	Tracing bool

	// ShutdownTimeout bounds graceful shutdown (default 15s).
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers (default 10s).
	ReadHeaderTimeout time.Duration

	// IdleTimeout closes idle keep-alive connections (default 120s).
	IdleTimeout time.Duration

	// Live configures the live session hub.
	Live live.Config
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		Address:           ":8080",
		PublicDir:         "public",
		Metrics:           true,
		ShutdownTimeout:   15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		Live:              live.DefaultConfig(),
	}
}

// withDefaults fills unset durations and the address from DefaultConfig.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Address == "" {
		c.Address = defaults.Address
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = defaults.IdleTimeout
	}
	return c
}

// Validate reports configuration that would prevent the server from
// starting.
func (c Config) Validate() error {
	var errs []error
	if c.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout))
	}
	if c.Live.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("live max sessions must not be negative, got %d", c.Live.MaxSessions))
	}
	if c.Live.FrameInterval < 0 {
		errs = append(errs, fmt.Errorf("live frame interval must not be negative, got %s", c.Live.FrameInterval))
	}
	return errors.Join(errs...)
}
