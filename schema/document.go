package schema

import (
	"maps"
	"slices"
	"strings"
)

// Document is a decoded OpenAPI document: the map tree produced by JSON or
// YAML unmarshaling. Both Swagger 2.0 and OpenAPI 3.x documents are held in
// this shape; helpers on the type answer the version-specific questions.
type Document map[string]any

// Version returns the declared specification version: the value of the
// "openapi" key for 3.x documents or the "swagger" key for 2.0 documents.
// It returns an empty string when neither key holds a string.
func (d Document) Version() string {
	if v, ok := d["openapi"].(string); ok {
		return v
	}
	if v, ok := d["swagger"].(string); ok {
		return v
	}
	return ""
}

// IsV3 reports whether the document declares itself as OpenAPI 3.x.
// The decision rests on the presence of the "openapi" key alone; documents
// without it are treated as Swagger 2.0.
func (d Document) IsV3() bool {
	_, ok := d["openapi"]
	return ok
}

// BasePath returns the document's basePath value, or "/" when the document
// does not declare one. OpenAPI 3.x documents carry no basePath, so they
// always yield "/".
func (d Document) BasePath() string {
	if v, ok := d["basePath"].(string); ok && v != "" {
		return v
	}
	return "/"
}

// Paths returns the paths object of the document, or nil when the document
// has none.
func (d Document) Paths() map[string]any {
	paths, _ := d["paths"].(map[string]any)
	return paths
}

// EndpointKeys returns the templated paths declared under the paths object,
// sorted lexically.
func (d Document) EndpointKeys() []string {
	paths := d.Paths()
	if len(paths) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(paths))
}

// Operation returns the operation object for the given templated path and
// HTTP method. The method is matched case-insensitively against the
// lowercase keys OpenAPI documents use.
func (d Document) Operation(path, method string) (map[string]any, bool) {
	item, ok := d.Paths()[path].(map[string]any)
	if !ok {
		return nil, false
	}
	op, ok := item[strings.ToLower(method)].(map[string]any)
	return op, ok
}

// Clone returns a deep copy of the document. Mutating the copy, for example
// through a Resolver, leaves the original untouched.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	copied, _ := deepCopyValue(map[string]any(d)).(map[string]any)
	return copied
}
