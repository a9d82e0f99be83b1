package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeObjects(t *testing.T) {
	t.Run("first scalar wins", func(t *testing.T) {
		merged := MergeObjects(
			map[string]any{"type": "object"},
			map[string]any{"type": "string"},
		)
		assert.Equal(t, "object", merged["type"])
	})

	t.Run("mappings merge recursively", func(t *testing.T) {
		merged := MergeObjects(
			map[string]any{"properties": map[string]any{"a": map[string]any{"type": "string"}}},
			map[string]any{"properties": map[string]any{"b": map[string]any{"type": "integer"}}},
		)
		props := merged["properties"].(map[string]any)
		assert.Contains(t, props, "a")
		assert.Contains(t, props, "b")
	})

	t.Run("lists concatenate", func(t *testing.T) {
		merged := MergeObjects(
			map[string]any{"required": []any{"a"}},
			map[string]any{"required": []any{"b"}},
		)
		assert.Equal(t, []any{"a", "b"}, merged["required"])
	})

	t.Run("no input", func(t *testing.T) {
		assert.Empty(t, MergeObjects())
	})
}

func TestNormalizeSectionAllOf(t *testing.T) {
	section := map[string]any{
		"description": "a pet",
		"allOf": []any{
			map[string]any{
				"type":       "object",
				"properties": map[string]any{"name": map[string]any{"type": "string"}},
				"required":   []any{"name"},
			},
			map[string]any{
				"properties": map[string]any{"age": map[string]any{"type": "integer"}},
				"required":   []any{"age"},
			},
		},
	}

	normalized := NormalizeSection(section)

	require.NotContains(t, normalized, "allOf")
	assert.Equal(t, "object", normalized["type"])
	assert.Equal(t, []any{"name", "age"}, normalized["required"])
	props := normalized["properties"].(map[string]any)
	assert.Contains(t, props, "name")
	assert.Contains(t, props, "age")

	// The input section is left untouched.
	assert.Contains(t, section, "allOf")
}

func TestNormalizeSectionEnumOneOf(t *testing.T) {
	section := map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string", "enum": []any{"cat", "dog"}},
			map[string]any{"type": "string", "enum": []any{"bird"}},
		},
	}

	normalized := NormalizeSection(section)

	require.NotContains(t, normalized, "oneOf")
	assert.Equal(t, "string", normalized["type"])
	assert.Equal(t, []any{"cat", "dog", "bird"}, normalized["enum"])
}

func TestNormalizeSectionMixedOneOfKept(t *testing.T) {
	section := map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string", "enum": []any{"cat"}},
			map[string]any{"type": "integer"},
		},
	}

	normalized := NormalizeSection(section)

	// Only all-enum oneOf lists are merged; anything else is a real variant
	// choice and stays.
	assert.Contains(t, normalized, "oneOf")
}

func TestNormalizeSectionRecursesIntoValues(t *testing.T) {
	section := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pet": map[string]any{
				"allOf": []any{
					map[string]any{"type": "object"},
					map[string]any{"required": []any{"name"}},
				},
			},
		},
	}

	normalized := NormalizeSection(section)

	pet := normalized["properties"].(map[string]any)["pet"].(map[string]any)
	assert.NotContains(t, pet, "allOf")
	assert.Equal(t, "object", pet["type"])
}

func TestNormalizeSectionRecursesIntoListMembers(t *testing.T) {
	section := map[string]any{
		"oneOf": []any{
			map[string]any{
				"allOf": []any{
					map[string]any{"type": "object"},
					map[string]any{"required": []any{"name"}},
				},
			},
			map[string]any{"type": "integer"},
		},
	}

	normalized := NormalizeSection(section)

	// The mixed oneOf is kept, but its members are still normalized.
	oneOf := normalized["oneOf"].([]any)
	first := oneOf[0].(map[string]any)
	assert.NotContains(t, first, "allOf")
	assert.Equal(t, "object", first["type"])
	assert.Equal(t, []any{"name"}, first["required"])
	assert.Equal(t, map[string]any{"type": "integer"}, oneOf[1])
}

func TestNormalizeSectionMergedKeysOverride(t *testing.T) {
	section := map[string]any{
		"type": "string",
		"allOf": []any{
			map[string]any{"type": "object"},
		},
	}

	normalized := NormalizeSection(section)

	assert.Equal(t, "object", normalized["type"], "merged allOf keys override the section's own")
}

func TestCombinations(t *testing.T) {
	sections := []map[string]any{
		{"a": 1},
		{"b": 2},
		{"c": 3},
	}

	var got []map[string]any
	for combo := range Combinations(sections) {
		got = append(got, combo)
	}

	// Pairs first in index order, then the full triple.
	require.Len(t, got, 4)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, got[0])
	assert.Equal(t, map[string]any{"a": 1, "c": 3}, got[1])
	assert.Equal(t, map[string]any{"b": 2, "c": 3}, got[2])
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3}, got[3])
}

func TestCombinationsEarlyStop(t *testing.T) {
	sections := []map[string]any{{"a": 1}, {"b": 2}, {"c": 3}}

	count := 0
	for range Combinations(sections) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestCombinationsTooFewSections(t *testing.T) {
	count := 0
	for range Combinations([]map[string]any{{"a": 1}}) {
		count++
	}
	assert.Zero(t, count, "fewer than two sections yield no combinations")
}
