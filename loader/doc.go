// Package loader acquires OpenAPI schemas for contract testing. A Loader
// fetches a raw document from its source, dereferences every $ref,
// validates the result against the matching meta-schema version, and
// memoizes the final document for the life of the instance.
//
// # Pipeline
//
// The first GetSchema call runs
//
//	raw, _ := source.LoadSchema()
//	resolver.Resolve(raw)           // dereference
//	validator.Validate(raw)         // v2 or v3, selected by the openapi key
//	resolver.Resolve(raw)           // picks up refs re-exposed by cycle breaking
//
// and caches the outcome; later calls return the cached document. Reset
// clears the cache for test isolation.
//
// # Sources
//
// Schemas come from one of three places:
//
//   - WithSchemaPath: a static JSON or YAML file, or an http(s) URL,
//     loaded through StaticSource.
//   - WithGenerator: a schema-generation hook on the application itself,
//     flattened through a JSON round-trip by GeneratorSource.
//   - WithSource: any custom Source implementation.
//
// # Route Resolution
//
// With WithRoutes configured, GetRoute maps a concrete request path to the
// templated path that keys the schema's paths object:
//
//	adapter, _ := gorillamux.New(router)
//	routes, _ := routing.New(adapter)
//	l, _ := loader.NewWithOptions(
//	    loader.WithSchemaPath("testdata/petstore.yaml"),
//	    loader.WithRoutes(routes),
//	)
//
//	route, _ := l.GetRoute("/pets/42?verbose=1")
//	doc, _ := l.GetSchema()
//	op, ok := doc.Operation(route.TemplatedPath, "get")
//
// Generator-backed sources that report a path prefix (PrefixSource) have
// that prefix stripped from resolved paths, matching generators that
// factor a common leading segment out of their path keys.
package loader
