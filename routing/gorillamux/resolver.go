// Package gorillamux adapts a gorilla/mux router to the routing package's
// URLResolver and EndpointEnumerator interfaces.
//
// Path resolution is method-blind: a path resolves when any HTTP method
// matches it, so contract tests can recover an operation's templated path
// without knowing which method the route was registered with.
package gorillamux

import (
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"

	"github.com/erraggy/oastest/internal/pathutil"
	"github.com/erraggy/oastest/routing"
	"github.com/gorilla/mux"
)

var (
	_ routing.URLResolver        = (*Resolver)(nil)
	_ routing.EndpointEnumerator = (*Resolver)(nil)
)

// probeMethods are tried in order until one matches; GET covers routes
// registered without method matchers.
var probeMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// Resolver adapts a *mux.Router for path resolution.
type Resolver struct {
	router *mux.Router
}

// New wraps router. The router is consulted read-only, so routes
// registered after New are visible to later lookups.
func New(router *mux.Router) (*Resolver, error) {
	if router == nil {
		return nil, fmt.Errorf("gorillamux: router cannot be nil")
	}
	return &Resolver{router: router}, nil
}

// ResolveURL matches path against the route table, probing each HTTP
// method until one matches. Paths with no matching route return an error
// satisfying errors.Is(err, routing.ErrNoMatch).
func (r *Resolver) ResolveURL(path string) (*routing.Match, error) {
	for _, method := range probeMethods {
		req := &http.Request{Method: method, URL: &url.URL{Path: path}}
		var m mux.RouteMatch
		if !r.router.Match(req, &m) || m.MatchErr != nil || m.Route == nil {
			continue
		}
		return buildMatch(&m), nil
	}
	return nil, fmt.Errorf("%s: %w", path, routing.ErrNoMatch)
}

// EndpointPaths returns the templated path of every registered route, with
// constraint syntax such as {id:[0-9]+} reduced to bare {id} parameters.
// Routes without a path template (host-only matchers) and prefix routes
// that delegate to a subrouter are skipped; the subrouter's own routes are
// listed with their full templates.
func (r *Resolver) EndpointPaths() ([]string, error) {
	var paths []string
	err := r.router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if _, ok := route.GetHandler().(*mux.Router); ok {
			return nil
		}
		tmpl, tmplErr := route.GetPathTemplate()
		if tmplErr != nil {
			return nil
		}
		paths = append(paths, pathutil.NormalizeTemplate(tmpl))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gorillamux: walking routes: %w", err)
	}
	return paths, nil
}

// buildMatch converts a mux route match, ordering captured parameters by
// their position in the route's path template.
func buildMatch(m *mux.RouteMatch) *routing.Match {
	match := &routing.Match{RouteName: m.Route.GetName()}
	tmpl, err := m.Route.GetPathTemplate()
	if err == nil {
		match.Pattern = tmpl
	}
	if len(m.Vars) == 0 {
		return match
	}

	match.Params = make([]routing.Param, 0, len(m.Vars))
	remaining := maps.Clone(m.Vars)
	for _, name := range pathutil.TemplateParams(tmpl) {
		if v, ok := remaining[name]; ok {
			match.Params = append(match.Params, routing.Param{Name: name, Value: v})
			delete(remaining, name)
		}
	}
	// Vars captured outside the path template (host variables) follow in
	// name order.
	for _, name := range slices.Sorted(maps.Keys(remaining)) {
		match.Params = append(match.Params, routing.Param{Name: name, Value: remaining[name]})
	}
	return match
}
