package loader

import (
	"fmt"
	"path/filepath"

	"github.com/erraggy/oastest"
	"github.com/erraggy/oastest/internal/options"
	"github.com/erraggy/oastest/internal/pathutil"
	"github.com/erraggy/oastest/oaserrors"
	"github.com/erraggy/oastest/routing"
	"github.com/erraggy/oastest/schema"
	"github.com/erraggy/oastest/validator"
)

// Loader runs the schema acquisition pipeline: fetch a raw document from
// its Source, dereference every $ref, validate against the right
// meta-schema, and memoize the result for the life of the instance.
type Loader struct {
	source    Source
	validator *validator.Validator
	routes    *routing.Resolver
	resolver  *schema.Resolver
	logger    oastest.Logger
	cache     memo
}

// New builds a Loader around source. Use NewWithOptions to configure the
// source through options instead.
func New(source Source, opts ...Option) (*Loader, error) {
	if source == nil {
		return nil, fmt.Errorf("loader: source cannot be nil")
	}
	return NewWithOptions(append([]Option{WithSource(source)}, opts...)...)
}

// NewWithOptions builds a Loader entirely from options. Exactly one schema
// source must be specified with WithSource, WithSchemaPath, or
// WithGenerator.
func NewWithOptions(opts ...Option) (*Loader, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err := options.ValidateSingleInputSource(
		"loader: no schema source specified: use WithSource, WithSchemaPath, or WithGenerator",
		"loader: multiple schema sources specified: use only one of WithSource, WithSchemaPath, or WithGenerator",
		cfg.source != nil, cfg.schemaPath != "", cfg.generator != nil,
	); err != nil {
		return nil, err
	}

	source := cfg.source
	baseDir := cfg.baseDir
	baseURL := ""
	switch {
	case cfg.schemaPath != "":
		src := NewStaticSource(cfg.schemaPath)
		src.Logger = cfg.logger
		source = src
		if pathutil.IsURL(cfg.schemaPath) {
			baseURL = cfg.schemaPath
		} else if !cfg.baseDirSet {
			baseDir = filepath.Dir(cfg.schemaPath)
		}
	case cfg.generator != nil:
		var gs *GeneratorSource
		if pg, ok := cfg.generator.(PrefixedGenerator); ok {
			gs = NewGeneratorSource(pg)
		} else {
			gs = NewGeneratorSourceWithPrefix(cfg.generator, "")
		}
		gs.Logger = cfg.logger
		source = gs
	}

	v := cfg.validator
	if v == nil {
		v = validator.New()
		v.Logger = cfg.logger
	}

	resolver := schema.NewResolverWithHTTP(baseDir, baseURL, cfg.fetcher)
	if cfg.maxDepth > 0 {
		resolver.SetMaxDepth(cfg.maxDepth)
	}
	if cfg.recursionHandler != nil {
		resolver.SetRecursionHandler(cfg.recursionHandler)
	}
	if cfg.cacheTTLSet {
		resolver.SetCacheTTL(cfg.cacheTTL)
	}

	return &Loader{
		source:    source,
		validator: v,
		routes:    cfg.routes,
		resolver:  resolver,
		logger:    cfg.logger,
	}, nil
}

// GetSchema returns the fully dereferenced, validated schema document.
//
// The first call runs the pipeline and memoizes the result; later calls
// return the same document. Treat it as read-only: it is shared between
// callers, and mutating it changes what every later GetSchema returns. Use
// [schema.Document.Clone] for a mutable copy, or [Loader.Reset] to force a
// clean reload.
func (l *Loader) GetSchema() (schema.Document, error) {
	return l.cache.schemaOrCompute(l.loadAndValidate)
}

func (l *Loader) loadAndValidate() (schema.Document, error) {
	raw, err := l.source.LoadSchema()
	if err != nil {
		return nil, err
	}
	doc := schema.Document(raw)

	if _, err := l.resolver.Resolve(doc); err != nil {
		return nil, err
	}
	if err := l.validator.Validate(doc); err != nil {
		return nil, err
	}
	// Cycle breaking splices snapshot content that can still carry live
	// references, and validation can rewrite version-specific sections;
	// the second pass picks both up.
	if _, err := l.resolver.Resolve(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetRoute resolves a concrete request path to its templated form through
// the configured route resolver. When the schema source reports a path
// prefix, the prefix is stripped from the templated path so it matches the
// schema's path keys.
func (l *Loader) GetRoute(path string) (*routing.Route, error) {
	if l.routes == nil {
		return nil, &oaserrors.ConfigError{
			Setting: "routes",
			Message: "no route resolver configured; pass WithRoutes to enable path resolution",
		}
	}
	route, err := l.routes.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	ps, ok := l.source.(PrefixSource)
	if !ok {
		return route, nil
	}
	prefix, err := l.pathPrefix(ps)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("path prefix", "prefix", prefix)
	if prefix == "" {
		return route, nil
	}
	return &routing.Route{
		TemplatedPath: stripPrefix(route.TemplatedPath, prefix),
		Match:         route.Match,
	}, nil
}

// pathPrefix memoizes the source's path prefix, normalizing the bare-root
// prefix "/" to "" so it never strips anything. Sources with a fixed prefix
// skip route enumeration entirely.
func (l *Loader) pathPrefix(ps PrefixSource) (string, error) {
	return l.cache.prefixOrCompute(func() (string, error) {
		var paths []string
		if np, ok := ps.(interface{ NeedsEndpointPaths() bool }); !ok || np.NeedsEndpointPaths() {
			var err error
			paths, err = l.routes.EndpointPaths()
			if err != nil {
				return "", err
			}
		}
		prefix, err := ps.PathPrefix(paths)
		if err != nil {
			return "", err
		}
		if prefix == "/" {
			prefix = ""
		}
		return prefix, nil
	})
}

// Reset clears the memoized schema and path prefix so the next access
// recomputes them. Intended for test isolation between cases that mutate
// the shared document.
func (l *Loader) Reset() {
	l.cache.reset()
}

// stripPrefix cuts prefix-many bytes off the front of path. A prefix as
// long as the path or longer leaves nothing.
func stripPrefix(path, prefix string) string {
	if len(prefix) >= len(path) {
		return ""
	}
	return path[len(prefix):]
}
