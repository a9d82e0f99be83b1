package schema

// RecursionMarker is the key of the placeholder node spliced in wherever a
// recursive reference was cut during resolution. Consumers walking a resolved
// document should treat a node carrying this key as the truncation point of a
// reference cycle.
const RecursionMarker = "x-recursive-ref-replaced"

// RecursionPlaceholder returns a fresh placeholder node marking a cut
// reference cycle.
func RecursionPlaceholder() map[string]any {
	return map[string]any{RecursionMarker: true}
}

// IsRecursionPlaceholder reports whether v is a placeholder node produced by
// RecursionPlaceholder.
func IsRecursionPlaceholder(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	marked, ok := m[RecursionMarker].(bool)
	return ok && marked
}
