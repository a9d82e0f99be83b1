package routing

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/erraggy/oastest"
	"github.com/erraggy/oastest/oaserrors"
)

// Resolver resolves concrete request paths to their templated form through
// a router adapter.
type Resolver struct {
	urls           URLResolver
	endpoints      EndpointEnumerator
	logger         oastest.Logger
	maxSuggestions int
}

// New constructs a Resolver around a router adapter. When urls also
// implements EndpointEnumerator it doubles as the suggestion source unless
// WithEndpoints overrides it.
func New(urls URLResolver, opts ...Option) (*Resolver, error) {
	if urls == nil {
		return nil, fmt.Errorf("routing: a URLResolver is required")
	}
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	endpoints := cfg.endpoints
	if endpoints == nil {
		if e, ok := urls.(EndpointEnumerator); ok {
			endpoints = e
		}
	}
	return &Resolver{
		urls:           urls,
		endpoints:      endpoints,
		logger:         cfg.logger,
		maxSuggestions: cfg.maxSuggestions,
	}, nil
}

// ResolvePath resolves a concrete request path to the templated path the
// application's router serves it under.
//
// The path is normalized first: any query string is dropped, a leading
// slash is added when missing, and one trailing slash is stripped unless
// the path is the bare root. When the router reports no match, resolution
// is retried once with a trailing slash appended, covering routers whose
// templates require one; the templated result stays in the normalized,
// slash-free form either way.
//
// Each captured parameter value is then substituted back out of the
// matched path at its rightmost occurrence, once per parameter, yielding
// the {name} template form. A static segment that ends with the exact
// value text can be templated in its place; see the package documentation.
//
// When no route matches even after the retry, the returned error is a
// *oaserrors.ResolutionError listing the closest known endpoint paths.
// Router errors other than a missed match are returned as-is.
func (r *Resolver) ResolvePath(path string) (*Route, error) {
	r.logger.Debug("resolving path", "path", path)
	path = r.normalizePath(path)

	match, err := r.urls.ResolveURL(path)
	if err != nil {
		if !errors.Is(err, ErrNoMatch) {
			return nil, err
		}
		match, err = r.urls.ResolveURL(path + "/")
		if err != nil && !errors.Is(err, ErrNoMatch) {
			return nil, err
		}
	}
	if err != nil {
		r.logger.Warn("path did not resolve successfully", "path", path)
		return nil, &oaserrors.ResolutionError{
			Path:        path,
			Suggestions: r.suggestions(path),
			Cause:       err,
		}
	}
	r.logger.Debug("resolved path successfully", "path", path)

	templated := path
	for _, p := range match.Params {
		// Substitute at the rightmost occurrence so earlier static
		// segments containing the same text stay intact.
		idx := strings.LastIndex(templated, p.Value)
		if idx < 0 {
			continue
		}
		templated = templated[:idx] + "{" + p.Name + "}" + templated[idx+len(p.Value):]
	}
	return &Route{TemplatedPath: templated, Match: match}, nil
}

// normalizePath reduces a request path to the form routers match against.
// Full URLs and query strings are reduced to the path component.
func (r *Resolver) normalizePath(raw string) string {
	path := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		path = u.Path
	} else if before, _, found := strings.Cut(raw, "?"); found {
		path = before
	}
	if path == "" || path[0] != '/' {
		r.logger.Debug("adding leading slash to provided path")
		path = "/" + path
	}
	if len(path) > 2 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}

// EndpointPaths returns the deduplicated templated paths of the configured
// endpoint source, sorted. It returns nil when no endpoint source is
// available, satisfying EndpointEnumerator either way.
func (r *Resolver) EndpointPaths() ([]string, error) {
	if r.endpoints == nil {
		return nil, nil
	}
	paths, err := r.endpoints.EndpointPaths()
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// suggestions ranks the known endpoint paths against an unresolved path.
// Enumeration failures are logged at debug level and produce no suggestions.
func (r *Resolver) suggestions(path string) []string {
	paths, err := r.EndpointPaths()
	if err != nil {
		r.logger.Debug("endpoint enumeration failed", "error", err)
		return nil
	}
	return ClosestMatches(path, paths, r.maxSuggestions)
}
