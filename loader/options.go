package loader

import (
	"fmt"
	"time"

	"github.com/erraggy/oastest"
	"github.com/erraggy/oastest/internal/options"
	"github.com/erraggy/oastest/routing"
	"github.com/erraggy/oastest/schema"
	"github.com/erraggy/oastest/validator"
)

// Option is a functional option for configuring a Loader.
type Option func(*loaderConfig) error

// loaderConfig holds the configuration for building a Loader
type loaderConfig struct {
	source     Source
	schemaPath string
	generator  Generator

	logger    oastest.Logger
	validator *validator.Validator
	routes    *routing.Resolver

	baseDir          string
	baseDirSet       bool
	fetcher          schema.HTTPFetcher
	maxDepth         int
	recursionHandler schema.RecursionHandler
	cacheTTL         time.Duration
	cacheTTLSet      bool
}

// applyOptions applies all options to a new config with defaults
func applyOptions(opts ...Option) (*loaderConfig, error) {
	cfg := &loaderConfig{
		logger:  oastest.NopLogger{},
		baseDir: ".",
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithSource sets the schema source. Exactly one of WithSource,
// WithSchemaPath, and WithGenerator must be given.
func WithSource(source Source) Option {
	return func(cfg *loaderConfig) error {
		if source == nil {
			return fmt.Errorf("loader: source cannot be nil")
		}
		cfg.source = source
		return nil
	}
}

// WithSchemaPath reads the schema from a file path or http(s) URL.
// Relative file references resolve against the file's directory unless
// WithBaseDir overrides it; for URL paths they resolve against the URL.
func WithSchemaPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("loader: schema path cannot be empty")
		}
		cfg.schemaPath = path
		return nil
	}
}

// WithGenerator sets a schema generator as the source. A generator that
// implements PrefixedGenerator has its path prefix stripped from resolved
// paths by GetRoute.
func WithGenerator(gen Generator) Option {
	return func(cfg *loaderConfig) error {
		if gen == nil {
			return fmt.Errorf("loader: generator cannot be nil")
		}
		cfg.generator = gen
		return nil
	}
}

// WithLogger sets the logger used by the loader, its source, and the
// default validator. Default: oastest.NopLogger.
func WithLogger(logger oastest.Logger) Option {
	return func(cfg *loaderConfig) error {
		if logger == nil {
			return fmt.Errorf("loader: logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithValidator sets the validator run between the two dereference passes.
// Default: validator.New() sharing the loader's logger.
func WithValidator(v *validator.Validator) Option {
	return func(cfg *loaderConfig) error {
		if v == nil {
			return fmt.Errorf("loader: validator cannot be nil")
		}
		cfg.validator = v
		return nil
	}
}

// WithRoutes sets the route resolver GetRoute delegates to.
// Default: none; GetRoute fails until one is configured.
func WithRoutes(routes *routing.Resolver) Option {
	return func(cfg *loaderConfig) error {
		if routes == nil {
			return fmt.Errorf("loader: routes cannot be nil")
		}
		cfg.routes = routes
		return nil
	}
}

// WithBaseDir sets the directory relative file references resolve against.
// Default: the schema file's directory with WithSchemaPath, "." otherwise.
func WithBaseDir(dir string) Option {
	return func(cfg *loaderConfig) error {
		if dir == "" {
			return fmt.Errorf("loader: base directory cannot be empty")
		}
		cfg.baseDir = dir
		cfg.baseDirSet = true
		return nil
	}
}

// WithHTTPFetcher enables resolution of http(s) references through fetch.
// Pass DefaultHTTPFetcher for a client with a 30-second timeout and the
// module's User-Agent. Default: disabled; HTTP references fail to resolve.
func WithHTTPFetcher(fetch schema.HTTPFetcher) Option {
	return func(cfg *loaderConfig) error {
		if fetch == nil {
			return fmt.Errorf("loader: fetcher cannot be nil")
		}
		cfg.fetcher = fetch
		return nil
	}
}

// WithResolverMaxDepth sets the reference nesting depth at which the
// resolver treats expansion as recursive. Default: schema.MaxRefDepth.
func WithResolverMaxDepth(depth int) Option {
	return func(cfg *loaderConfig) error {
		if err := options.ValidatePositive("loader: resolver max depth", depth); err != nil {
			return err
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithRecursionHandler overrides how recursive references are replaced.
// Default: the resolver's placeholder substitution; see
// [schema.RecursionHandler].
func WithRecursionHandler(handler schema.RecursionHandler) Option {
	return func(cfg *loaderConfig) error {
		if handler == nil {
			return fmt.Errorf("loader: recursion handler cannot be nil")
		}
		cfg.recursionHandler = handler
		return nil
	}
}

// WithCacheTTL bounds how long the resolver caches fetched external
// reference documents. Zero or negative keeps them until eviction.
// Default: five minutes.
func WithCacheTTL(ttl time.Duration) Option {
	return func(cfg *loaderConfig) error {
		cfg.cacheTTL = ttl
		cfg.cacheTTLSet = true
		return nil
	}
}
