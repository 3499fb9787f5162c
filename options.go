package caskdb

import (
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"

	"caskdb/internal"
)

type Option func(*internal.Config)

// WithLogger routes store lifecycle events to the given logger. The
// default logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = logger
	}
}

// WithRegisterer registers the store's operation counters with the given
// Prometheus registerer. Metrics are disabled by default.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(c *internal.Config) {
		c.Registerer = registerer
	}
}
