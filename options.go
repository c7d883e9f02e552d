package giiker

import (
	"log/slog"
	"time"
)

// Option configures driver behavior.
type Option func(*config)

type config struct {
	scanTimeout    time.Duration
	requestTimeout time.Duration
	logger         *slog.Logger
}

func defaultConfig() *config {
	return &config{
		scanTimeout:    10 * time.Second,
		requestTimeout: 3 * time.Second,
		logger:         slog.Default(),
	}
}

// WithScanTimeout sets how long ConnectFirst scans before giving up.
func WithScanTimeout(d time.Duration) Option {
	return func(c *config) {
		c.scanTimeout = d
	}
}

// WithRequestTimeout sets the timeout applied to battery and move count
// queries when the caller's context carries no deadline of its own.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *config) {
		c.requestTimeout = d
	}
}

// WithLogger sets the logger used by the driver and the underlying BLE
// client. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
