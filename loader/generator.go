package loader

import (
	"encoding/json"
	"fmt"

	"github.com/erraggy/oastest"
	"github.com/erraggy/oastest/internal/pathutil"
)

// Generator produces an OpenAPI document from a running application, the
// way schema-generation frameworks do. The returned value may be any
// JSON-encodable tree; GeneratorSource flattens it to plain maps.
type Generator interface {
	GenerateSchema() (any, error)
}

// PrefixedGenerator is a Generator that also reports the path prefix it
// normalized out of the document's path keys. Implementations that infer
// the prefix from the route table typically use [CommonPathPrefix].
type PrefixedGenerator interface {
	Generator
	PathPrefix(endpointPaths []string) (string, error)
}

// GeneratorSource adapts a Generator to the Source interface.
type GeneratorSource struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled.
	Logger oastest.Logger

	gen      Generator
	prefixed PrefixedGenerator
	prefix   string
}

// NewGeneratorSource wraps a generator that reports its own path prefix.
func NewGeneratorSource(gen PrefixedGenerator) *GeneratorSource {
	return &GeneratorSource{gen: gen, prefixed: gen}
}

// NewGeneratorSourceWithPrefix wraps a generator with a fixed path prefix.
// An empty prefix means resolved paths are used as-is.
func NewGeneratorSourceWithPrefix(gen Generator, prefix string) *GeneratorSource {
	return &GeneratorSource{gen: gen, prefix: prefix}
}

// log returns the configured logger, or a no-op logger if none is set.
func (g *GeneratorSource) log() oastest.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return oastest.NopLogger{}
}

// LoadSchema invokes the generator and flattens its output through a JSON
// round-trip, so generator-specific ordered-map types come out as plain
// maps.
func (g *GeneratorSource) LoadSchema() (map[string]any, error) {
	generated, err := g.gen.GenerateSchema()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(generated)
	if err != nil {
		return nil, fmt.Errorf("loader: generated schema is not JSON-encodable: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("loader: generated schema is not an object: %w", err)
	}
	g.log().Debug("successfully loaded generated schema")
	return doc, nil
}

// PathPrefix reports the generator's path prefix: the generator's own
// answer when it implements PrefixedGenerator, the fixed prefix otherwise.
func (g *GeneratorSource) PathPrefix(endpointPaths []string) (string, error) {
	if g.prefixed != nil {
		return g.prefixed.PathPrefix(endpointPaths)
	}
	return g.prefix, nil
}

// NeedsEndpointPaths reports whether PathPrefix consults the application's
// endpoint paths. A fixed-prefix source never does, so the loader can skip
// enumerating routes for it.
func (g *GeneratorSource) NeedsEndpointPaths() bool {
	return g.prefixed != nil
}

// CommonPathPrefix returns the path prefix shared by every endpoint path:
// the longest run of leading static segments, stopping before templated
// segments and each path's final component. It returns "/" when the paths
// share no usable prefix.
func CommonPathPrefix(endpointPaths []string) string {
	return pathutil.CommonPrefix(endpointPaths)
}
