// Package schema provides the document model and reference resolution for
// OpenAPI schemas used in contract testing.
//
// # Overview
//
// The package centers on two pieces:
//
//   - Document: a decoded OpenAPI document held as a plain map tree, with
//     helpers for version detection, base path lookup, and endpoint access.
//   - Resolver: an in-place $ref dereferencer that flattens every reference
//     into its target content, breaking recursive reference cycles with
//     placeholder nodes instead of failing.
//
// # Reference Resolution
//
// A Resolver walks the document tree and splices each $ref target directly
// into the referencing node:
//
//	doc := schema.Document{...}
//	resolver := schema.NewResolver(".")
//	if _, err := resolver.Resolve(doc); err != nil {
//	    log.Fatal(err)
//	}
//
// Resolution mutates doc and returns the same reference. Local references
// (#/definitions/Pet), relative file references (./shared.yaml#/Pet), and
// HTTP references (when a fetcher is configured) are all supported.
//
// # Recursive References
//
// Self-referential schemas such as linked lists or trees cannot be flattened
// by substitution alone. When the resolver detects a cycle, or reference
// nesting exceeds the configured depth, it re-derives the referenced section
// from a pre-resolution snapshot of the document and replaces every
// reference back into that section with a placeholder node:
//
//	{"x-recursive-ref-replaced": true}
//
// Callers that need different behavior can install their own handler with
// SetRecursionHandler. Placeholder nodes are detectable with
// IsRecursionPlaceholder so response validators can stop descending where
// the cycle was cut.
//
// # Section Normalization
//
// NormalizeSection, MergeObjects, and Combinations flatten composite keyword
// structures (allOf, enum-only oneOf, anyOf combinations) into plain schema
// sections so that validators can compare response bodies against a single
// merged shape.
package schema
