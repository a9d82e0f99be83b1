// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// NewSimpleOAS2Document creates a minimal OAS 2.0 document for testing.
// Contains only required fields: swagger, info, host, basePath, schemes, paths.
func NewSimpleOAS2Document() map[string]any {
	return map[string]any{
		"swagger": "2.0",
		"info": map[string]any{
			"title":   "Test API",
			"version": "1.0.0",
		},
		"host":     "api.example.com",
		"basePath": "/v1",
		"schemes":  []any{"https"},
		"paths":    map[string]any{},
	}
}

// NewDetailedOAS2Document creates a complete OAS 2.0 document with common features for testing.
// Includes paths, operations, path parameters, and definitions with $ref usage.
func NewDetailedOAS2Document() map[string]any {
	doc := NewSimpleOAS2Document()
	doc["definitions"] = map[string]any{
		"Pet": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":   map[string]any{"type": "integer"},
				"name": map[string]any{"type": "string"},
			},
		},
	}
	doc["paths"] = map[string]any{
		"/pets": map[string]any{
			"get": map[string]any{
				"summary":     "List pets",
				"operationId": "listPets",
				"responses": map[string]any{
					"200": map[string]any{
						"description": "A list of pets.",
						"schema": map[string]any{
							"type":  "array",
							"items": map[string]any{"$ref": "#/definitions/Pet"},
						},
					},
				},
			},
		},
		"/pets/{id}": map[string]any{
			"get": map[string]any{
				"summary":     "Get a pet by id",
				"operationId": "showPetByID",
				"parameters": []any{
					map[string]any{
						"name":     "id",
						"in":       "path",
						"required": true,
						"type":     "string",
					},
				},
				"responses": map[string]any{
					"200": map[string]any{
						"description": "The requested pet.",
						"schema":      map[string]any{"$ref": "#/definitions/Pet"},
					},
				},
			},
		},
	}
	return doc
}

// NewSimpleOAS3Document creates a minimal OAS 3.x document for testing.
// Contains only required fields: openapi, info, paths, servers.
func NewSimpleOAS3Document() map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "Test API",
			"version": "1.0.0",
		},
		"servers": []any{
			map[string]any{
				"url":         "https://api.example.com/v1",
				"description": "Production server",
			},
		},
		"paths": map[string]any{},
	}
}

// NewDetailedOAS3Document creates a complete OAS 3.x document with common features for testing.
// Includes paths, operations, path parameters, and components with $ref usage.
func NewDetailedOAS3Document() map[string]any {
	doc := NewSimpleOAS3Document()
	doc["paths"] = map[string]any{
		"/pets": map[string]any{
			"get": map[string]any{
				"summary":     "List pets",
				"operationId": "listPets",
				"responses": map[string]any{
					"200": map[string]any{
						"description": "A list of pets.",
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{
									"type":  "array",
									"items": map[string]any{"$ref": "#/components/schemas/Pet"},
								},
							},
						},
					},
				},
			},
		},
		"/pets/{id}": map[string]any{
			"get": map[string]any{
				"summary":     "Get a pet by id",
				"operationId": "showPetByID",
				"parameters": []any{
					map[string]any{
						"name":     "id",
						"in":       "path",
						"required": true,
						"schema":   map[string]any{"type": "string"},
					},
				},
				"responses": map[string]any{
					"200": map[string]any{
						"description": "The requested pet.",
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/Pet"},
							},
						},
					},
				},
			},
		},
	}
	doc["components"] = map[string]any{
		"schemas": map[string]any{
			"Pet": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "integer"},
					"name": map[string]any{"type": "string"},
				},
			},
		},
	}
	return doc
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
