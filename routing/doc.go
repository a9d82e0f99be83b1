// Package routing resolves concrete request URLs back to the templated
// paths an OpenAPI document keys its operations by.
//
// # Overview
//
// Contract tests observe concrete URLs such as /users/42/posts, while the
// schema under test indexes operations by templated paths such as
// /users/{id}/posts. The [Resolver] bridges the two: it normalizes the
// concrete path, matches it through a [URLResolver] (an adapter over the
// application's router), and substitutes each captured parameter value back
// out of the matched path to recover the template:
//
//	r, err := routing.New(adapter)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	route, err := r.ResolvePath("/users/42/posts?page=2")
//	// route.TemplatedPath == "/users/{id}/posts"
//
// Adapters for specific routers live in subpackages; see
// [github.com/erraggy/oastest/routing/gorillamux].
//
// # Parameter Substitution
//
// For each captured parameter the resolver replaces the rightmost occurrence
// of the value's string form with {name}, substituting once per parameter.
// Parameter values usually sit at segment ends, so rightmost matching avoids
// corrupting earlier static segments that happen to contain the same text.
// It remains a textual heuristic: a static segment that ends with the exact
// value string can still be templated by mistake.
//
// # Suggestions
//
// When a path fails to resolve and the adapter also implements
// [EndpointEnumerator], the returned error carries the closest known
// templated paths ranked by string similarity, capped at a configurable
// count.
package routing
