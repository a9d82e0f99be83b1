package schema

import "iter"

// MergeObjects merges schema sections into one. The first occurrence of a
// key wins for scalar values, mappings merge recursively, and lists
// concatenate in input order. Values in the result are shared with the
// inputs, not copied.
func MergeObjects(objects ...map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, obj := range objects {
		for key, value := range obj {
			existing, ok := merged[key]
			if !ok {
				merged[key] = value
				continue
			}
			switch v := value.(type) {
			case map[string]any:
				if e, ok := existing.(map[string]any); ok {
					merged[key] = MergeObjects(e, v)
				}
			case []any:
				if e, ok := existing.([]any); ok {
					merged[key] = append(append([]any{}, e...), v...)
				}
			}
		}
	}
	return merged
}

// NormalizeSection flattens composite keywords in a schema section so a
// validator can compare against a single shape. allOf members are merged
// into the section itself, and a oneOf whose members are all enums is merged
// the same way, matching how generators emit enum variants. Merged keys
// override the section's own. The section is deep-copied first and nested
// mappings, including those inside list values, are normalized recursively.
func NormalizeSection(section map[string]any) map[string]any {
	output, _ := deepCopyValue(section).(map[string]any)
	if allOf, ok := output["allOf"].([]any); ok && len(allOf) > 0 {
		delete(output, "allOf")
		for key, value := range MergeObjects(objectMembers(allOf)...) {
			output[key] = value
		}
	}
	if oneOf, ok := output["oneOf"].([]any); ok && len(oneOf) > 0 && allEnumMembers(oneOf) {
		delete(output, "oneOf")
		for key, value := range MergeObjects(objectMembers(oneOf)...) {
			output[key] = value
		}
	}
	for key, value := range output {
		switch child := value.(type) {
		case map[string]any:
			output[key] = NormalizeSection(child)
		case []any:
			for i, item := range child {
				if m, ok := item.(map[string]any); ok {
					child[i] = NormalizeSection(m)
				}
			}
		}
	}
	return output
}

// Combinations yields the merge of every combination of two or more of the
// given sections, smallest combinations first. Response validators use it to
// test anyOf sections where a body may satisfy several members at once.
func Combinations(sections []map[string]any) iter.Seq[map[string]any] {
	return func(yield func(map[string]any) bool) {
		for size := 2; size <= len(sections); size++ {
			if !yieldCombinations(sections, size, yield) {
				return
			}
		}
	}
}

// yieldCombinations yields the merge of every size-element combination of
// sections in lexicographic index order. It reports whether iteration may
// continue.
func yieldCombinations(sections []map[string]any, size int, yield func(map[string]any) bool) bool {
	indexes := make([]int, size)
	for i := range indexes {
		indexes[i] = i
	}
	for {
		combo := make([]map[string]any, size)
		for i, j := range indexes {
			combo[i] = sections[j]
		}
		if !yield(MergeObjects(combo...)) {
			return false
		}
		// Advance the rightmost index that has room to move.
		i := size - 1
		for i >= 0 && indexes[i] == len(sections)-size+i {
			i--
		}
		if i < 0 {
			return true
		}
		indexes[i]++
		for j := i + 1; j < size; j++ {
			indexes[j] = indexes[j-1] + 1
		}
	}
}

// objectMembers filters a keyword list down to its mapping members.
func objectMembers(list []any) []map[string]any {
	members := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			members = append(members, m)
		}
	}
	return members
}

// allEnumMembers reports whether every member of a oneOf list is a mapping
// with a non-empty enum.
func allEnumMembers(list []any) bool {
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return false
		}
		enum, ok := m["enum"].([]any)
		if !ok || len(enum) == 0 {
			return false
		}
	}
	return true
}
