package schema

// deepCopyValue returns a deep copy of a decoded JSON/YAML value tree.
// Maps and slices are copied recursively; scalars are returned as-is.
func deepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		copied := make(map[string]any, len(v))
		for key, val := range v {
			copied[key] = deepCopyValue(val)
		}
		return copied
	case []any:
		copied := make([]any, len(v))
		for i, val := range v {
			copied[i] = deepCopyValue(val)
		}
		return copied
	default:
		return value
	}
}
