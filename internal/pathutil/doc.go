// Package pathutil provides path template helpers shared by the routing and
// loader packages.
//
// The helpers operate on brace-templated endpoint paths, the form used by
// OpenAPI paths objects:
//
//	/api/v1/users/{id}
//
// [PathParamRegex] matches template parameters and captures their names.
// [TemplateParams] lists a template's parameter names in order of appearance,
// and [NormalizeTemplate] rewrites router captures like {id:[0-9]+} to the
// bare {id} form:
//
//	pathutil.TemplateParams("/users/{id:[0-9]+}/posts/{slug}")
//	// ["id", "slug"]
//
//	pathutil.NormalizeTemplate("/users/{id:[0-9]+}")
//	// "/users/{id}"
//
// [CommonPrefix] infers the static path prefix shared by a set of endpoint
// paths, for generator plugins that strip a mount prefix from schema path
// keys:
//
//	pathutil.CommonPrefix([]string{"/api/v1/items/", "/api/v1/items/{pk}/"})
//	// "/api/v1"
//
// [IsURL] classifies schema locations as HTTP(S) URLs versus file paths.
package pathutil
