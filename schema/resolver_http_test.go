package schema

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/erraggy/oastest/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFetcher returns an HTTPFetcher backed by the default HTTP client.
func testFetcher(t *testing.T) HTTPFetcher {
	t.Helper()
	return func(url string) ([]byte, string, error) {
		resp, err := http.Get(url) //nolint:noctx // test helper
		if err != nil {
			return nil, "", err
		}
		defer func() { _ = resp.Body.Close() }()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", err
		}
		return body, resp.Header.Get("Content-Type"), nil
	}
}

func TestResolveHTTPRefWithFragment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"definitions": {
				"Pet": {
					"type": "object",
					"properties": {"name": {"type": "string"}}
				}
			}
		}`))
	}))
	defer server.Close()

	doc := Document{
		"paths": map[string]any{
			"/pets": map[string]any{
				"schema": map[string]any{"$ref": server.URL + "#/definitions/Pet"},
			},
		},
	}

	resolver := NewResolverWithHTTP(".", server.URL, testFetcher(t))
	_, err := resolver.Resolve(doc)
	require.NoError(t, err)

	schema, ok := doc["paths"].(map[string]any)["/pets"].(map[string]any)["schema"].(map[string]any)
	require.True(t, ok, "expected schema map after resolution")
	assert.Equal(t, "object", schema["type"])
}

func TestResolveHTTPYAMLContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte("definitions:\n  Pet:\n    type: object\n"))
	}))
	defer server.Close()

	doc := Document{
		"definitions": map[string]any{
			"Remote": map[string]any{"$ref": server.URL + "#/definitions/Pet"},
		},
	}

	_, err := NewResolverWithHTTP(".", server.URL, testFetcher(t)).Resolve(doc)
	require.NoError(t, err)

	remote := doc["definitions"].(map[string]any)["Remote"].(map[string]any)
	assert.Equal(t, "object", remote["type"])
}

func TestResolveHTTPRequiresFetcher(t *testing.T) {
	doc := Document{
		"definitions": map[string]any{
			"Remote": map[string]any{"$ref": "https://example.com/schema.json#/Pet"},
		},
	}

	_, err := NewResolver(".").Resolve(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrSchema)
	assert.Contains(t, err.Error(), "fetcher")
}

func TestResolveHTTPFetchError(t *testing.T) {
	fetchErr := errors.New("connection refused")
	fetcher := func(string) ([]byte, string, error) {
		return nil, "", fetchErr
	}

	doc := Document{
		"definitions": map[string]any{
			"Remote": map[string]any{"$ref": "https://example.com/schema.json"},
		},
	}

	_, err := NewResolverWithHTTP(".", "", fetcher).Resolve(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
	assert.ErrorIs(t, err, oaserrors.ErrSchema)
}

func TestResolveHTTPCachesDocument(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"definitions": {
				"Pet": {"type": "object"},
				"Tag": {"type": "string"}
			}
		}`))
	}))
	defer server.Close()

	doc := Document{
		"definitions": map[string]any{
			"A": map[string]any{"$ref": server.URL + "#/definitions/Pet"},
			"B": map[string]any{"$ref": server.URL + "#/definitions/Pet"},
		},
	}

	_, err := NewResolverWithHTTP(".", server.URL, testFetcher(t)).Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load(), "same document URL should be fetched once")
}

func TestResolveRelativeHTTPRef(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/common.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"definitions": {"Pet": {"type": "object"}}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	doc := Document{
		"definitions": map[string]any{
			"Remote": map[string]any{"$ref": "common.json#/definitions/Pet"},
		},
	}

	// With an HTTP base URL, relative references resolve against it instead
	// of the filesystem.
	_, err := NewResolverWithHTTP(".", server.URL+"/", testFetcher(t)).Resolve(doc)
	require.NoError(t, err)

	remote := doc["definitions"].(map[string]any)["Remote"].(map[string]any)
	assert.Equal(t, "object", remote["type"])
}

func TestResolveHTTPSizeLimit(t *testing.T) {
	body := []byte(`{"pad": "` + strings.Repeat("x", MaxFileSize) + `"}`)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer server.Close()

	doc := Document{
		"definitions": map[string]any{
			"Big": map[string]any{"$ref": server.URL},
		},
	}

	_, err := NewResolverWithHTTP(".", server.URL, testFetcher(t)).Resolve(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "byte limit")
}
