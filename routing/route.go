package routing

import "errors"

// ErrNoMatch is returned by a URLResolver when no route matches the path.
// Implementations may wrap it; Resolver checks with errors.Is.
var ErrNoMatch = errors.New("no matching route")

// Param is a single path parameter captured by a route match. Params keep
// the order the parameters appear in the route's template.
type Param struct {
	// Name is the parameter name as written in the template, without braces.
	Name string

	// Value is the concrete segment text the router captured for the name.
	Value string
}

// Match is the outcome of a successful router lookup.
type Match struct {
	// RouteName is the router's registered name for the route, when set.
	RouteName string

	// Pattern is the route's path template as the router knows it. The form
	// is router-specific and may carry constraint syntax such as
	// {id:[0-9]+}.
	Pattern string

	// Params holds the captured path parameters in template order.
	Params []Param
}

// Param returns the value captured for name and whether it was captured.
func (m *Match) Param(name string) (string, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Route pairs a resolved path's templated form with the match that
// produced it.
type Route struct {
	// TemplatedPath is the path with every captured parameter value
	// substituted back to its {name} placeholder, suitable for indexing an
	// OpenAPI paths object.
	TemplatedPath string

	// Match is the router match the template was derived from.
	Match *Match
}

// URLResolver matches concrete request paths against an application's
// route table. Adapters for specific routers implement it; see the
// gorillamux subpackage.
type URLResolver interface {
	// ResolveURL returns the match for path. When no route matches it
	// returns an error matching ErrNoMatch via errors.Is.
	ResolveURL(path string) (*Match, error)
}

// EndpointEnumerator lists the templated paths an application serves.
// Duplicates and ordering are tolerated; consumers deduplicate.
type EndpointEnumerator interface {
	EndpointPaths() ([]string, error)
}
