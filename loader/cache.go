package loader

import (
	"sync"

	"github.com/erraggy/oastest/schema"
)

// memo holds the loaded schema and inferred path prefix for a Loader.
// Population is locked so concurrent first use computes once; failed
// computations are not cached and are retried on the next access.
type memo struct {
	mu     sync.Mutex
	schema schema.Document
	prefix *string
}

func (m *memo) schemaOrCompute(compute func() (schema.Document, error)) (schema.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.schema != nil {
		return m.schema, nil
	}
	doc, err := compute()
	if err != nil {
		return nil, err
	}
	m.schema = doc
	return doc, nil
}

func (m *memo) prefixOrCompute(compute func() (string, error)) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prefix != nil {
		return *m.prefix, nil
	}
	prefix, err := compute()
	if err != nil {
		return "", err
	}
	m.prefix = &prefix
	return prefix, nil
}

func (m *memo) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schema = nil
	m.prefix = nil
}
