package loader

// Source supplies a raw, possibly $ref-laden OpenAPI document. A Source
// must not dereference or validate; the loader pipeline does both.
type Source interface {
	LoadSchema() (map[string]any, error)
}

// PrefixSource is a Source whose schema keys its paths relative to a
// prefix the application's router still reports. Some schema generators
// factor a shared leading segment such as /api/v1 out of every path key;
// the loader strips the reported prefix from resolved paths before they
// are used to index the schema.
type PrefixSource interface {
	Source

	// PathPrefix reports the prefix to strip, given the templated endpoint
	// paths of the running application. A result of "/" or "" means no
	// stripping.
	PathPrefix(endpointPaths []string) (string, error)
}
