package trie

import (
	"github.com/rs/zerolog"
)

const defaultCapacity = 256

type config struct {
	capacity int
	logger   zerolog.Logger
}

func defaultConfig() config {
	return config{
		capacity: defaultCapacity,
		logger:   zerolog.Nop(),
	}
}

// Option configures a DoubleArray.
type Option func(*config)

// WithCapacity sets the initial length of the base and check arrays.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 1 {
			c.capacity = n
		}
	}
}

// WithLogger sets the logger that array growth and relocations are
// reported to at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
