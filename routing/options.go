package routing

import (
	"fmt"

	"github.com/erraggy/oastest"
	"github.com/erraggy/oastest/internal/options"
)

// Option is a functional option for configuring a Resolver.
type Option func(*resolverConfig) error

// resolverConfig holds the configuration for path resolution
type resolverConfig struct {
	logger         oastest.Logger
	endpoints      EndpointEnumerator
	maxSuggestions int
}

// applyOptions applies all options to a new config with defaults
func applyOptions(opts ...Option) (*resolverConfig, error) {
	cfg := &resolverConfig{
		logger:         oastest.NopLogger{},
		maxSuggestions: DefaultMaxSuggestions,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets the logger used for resolution diagnostics.
// Default: oastest.NopLogger.
func WithLogger(logger oastest.Logger) Option {
	return func(cfg *resolverConfig) error {
		if logger == nil {
			return fmt.Errorf("routing: logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithEndpoints sets the enumerator consulted for suggestion candidates
// when a path fails to resolve. Default: the URLResolver itself when it
// also implements EndpointEnumerator, otherwise none.
func WithEndpoints(endpoints EndpointEnumerator) Option {
	return func(cfg *resolverConfig) error {
		if endpoints == nil {
			return fmt.Errorf("routing: endpoints cannot be nil")
		}
		cfg.endpoints = endpoints
		return nil
	}
}

// WithMaxSuggestions caps how many near-miss paths a resolution error
// carries. Default: DefaultMaxSuggestions.
func WithMaxSuggestions(n int) Option {
	return func(cfg *resolverConfig) error {
		if err := options.ValidatePositive("routing: max suggestions", n); err != nil {
			return err
		}
		cfg.maxSuggestions = n
		return nil
	}
}
