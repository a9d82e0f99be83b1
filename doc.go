// Package oastest provides the schema-acquisition layer for OpenAPI contract testing.
//
// oastest loads an OpenAPI Specification (OAS) document from a file, a URL, or a
// schema-generator plugin, fully dereferences its $ref references, validates it
// against the OpenAPI specification, and maps concrete request URLs back to the
// templated endpoint paths that key the document's paths object. Test harnesses
// built on top of it call GetSchema once per suite and GetRoute once per
// request/response pair to locate the schema section a response must satisfy.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - schema: the document model, $ref dereferencing, and section normalization
//   - validator: specification validation, delegated to standard validators
//   - loader: schema acquisition strategies and the memoized loading pipeline
//   - routing: concrete URL to templated endpoint path resolution
//
// Documents are plain map[string]any trees throughout. Schemas are data under
// test, not Go types, so nothing here marshals them into structs.
//
// Both OAS 2.0 (Swagger) and OAS 3.x documents are supported:
//   - OAS 2.0 (Swagger): https://spec.openapis.org/oas/v2.0.html
//   - OAS 3.0.x: https://spec.openapis.org/oas/v3.0.0.html
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/oastest
//
// # Quick Start
//
// Load a schema from disk and look up the route for a concrete URL:
//
//	import (
//		"github.com/erraggy/oastest/loader"
//		"github.com/erraggy/oastest/routing"
//		"github.com/erraggy/oastest/routing/gorillamux"
//	)
//
//	urls, err := gorillamux.New(router)
//	if err != nil {
//		log.Fatal(err)
//	}
//	routes, err := routing.New(urls)
//	if err != nil {
//		log.Fatal(err)
//	}
//	l, err := loader.New(
//		loader.NewStaticSource("testdata/openapi.yaml"),
//		loader.WithRoutes(routes),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	doc, err := l.GetSchema()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	route, err := l.GetRoute("/api/v1/users/42")
//	if err != nil {
//		log.Fatal(err) // includes near-miss suggestions when the path is unknown
//	}
//	op, ok := doc.Operation(route.TemplatedPath, "get")
//
// # Schema Package
//
// The schema package models OAS documents as map trees and dereferences $ref
// references in place. Recursive references are replaced with a placeholder
// node so that consumers can treat the section as accepting any value:
//
//	if schema.IsRecursionPlaceholder(section) {
//		// recursion point: any value is permitted here
//	}
//
// See the schema package documentation for resolver limits and the recursion
// placeholder contract.
//
// # Validator Package
//
// The validator package checks a document against its declared specification
// version. Validation is delegated: OAS 3.x documents go to
// github.com/getkin/kin-openapi and OAS 2.0 documents to
// github.com/go-openapi/validate. A document is treated as OAS 3.x when its
// top-level "openapi" key is present, and as OAS 2.0 otherwise.
//
// # Loader Package
//
// The loader package acquires the raw document through a Source strategy
// (static file or URL, or a generator plugin), runs the
// dereference/validate/dereference pipeline, and memoizes the result. Reset
// clears the memo for test isolation.
//
// # Routing Package
//
// The routing package resolves a concrete request URL such as
// /api/v1/users/42 to the templated path /api/v1/users/{id} by asking a
// router which route matched and substituting each captured parameter value
// back out of the path, rightmost occurrence first. Unresolvable paths
// produce an error listing the closest known endpoint paths.
//
// The routing/gorillamux subpackage adapts a *mux.Router to the routing
// interfaces; any router can be plugged in by implementing URLResolver and
// EndpointEnumerator.
//
// # Logging
//
// All packages log through the Logger interface defined in this package. The
// default is NopLogger; NewSlogAdapter wraps a *slog.Logger:
//
//	logger := oastest.NewSlogAdapter(slog.Default())
//	l, err := loader.New(src, loader.WithLogger(logger))
//
// # Error Handling
//
// Failures are classified in the oaserrors package:
//
//   - ConfigError: the schema source is unreadable or unparseable
//   - SchemaError: the document content is malformed or a reference cannot be resolved
//   - ResolutionError: a URL cannot be mapped to a templated path; carries suggestions
//
// Validation failures are returned verbatim from the delegated validator so
// that their diagnostics survive intact. All error types support errors.Is
// against the package sentinels.
//
// # Additional Resources
//
//   - OpenAPI Specification: https://spec.openapis.org
//   - JSON Schema Specification: https://json-schema.org
//   - Go Package Documentation: https://pkg.go.dev/github.com/erraggy/oastest
package oastest
