package lang

import (
	"github.com/ardnew/curly/log"
)

// DefaultMaxDepth is the maximum nesting depth of conditionals when no
// [WithMaxDepth] option is given.
const DefaultMaxDepth = 256

// config holds parse and evaluation options.
type config struct {
	maxDepth int
	logger   log.Logger // zero value discards everything
}

// Option configures parsing or evaluation behavior.
type Option func(*config)

// WithMaxDepth sets the maximum nesting depth of conditional blocks.
// Both the parser and the evaluator recurse once per level, so this bounds
// their call-stack usage on hostile input. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func makeConfig(opts ...Option) config {
	c := config{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
