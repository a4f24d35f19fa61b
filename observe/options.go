package observe

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type config struct {
	name    string
	id      uuid.UUID
	logger  zerolog.Logger
	metrics *Metrics
}

func defaultConfig() config {
	return config{
		name:   "channel",
		logger: zerolog.Nop(),
	}
}

// Option configures an observed channel.
type Option func(*config)

// WithName sets the channel label used in log lines and metrics.
// The default is "channel".
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithID overrides the generated identifier. Mostly useful in tests.
func WithID(id uuid.UUID) Option {
	return func(c *config) {
		c.id = id
	}
}

// WithLogger sets the logger that receives one event per operation.
// Without it nothing is logged.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics records every operation in m. Several observed channels may
// share one Metrics; they are told apart by their name.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}
