package routing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/erraggy/oastest/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRouter is a canned URLResolver plus EndpointEnumerator. It records
// every ResolveURL call so tests can assert on normalization and retries.
type stubRouter struct {
	routes  map[string]*Match
	paths   []string
	pathErr error
	err     error
	calls   []string
}

func (s *stubRouter) ResolveURL(path string) (*Match, error) {
	s.calls = append(s.calls, path)
	if s.err != nil {
		return nil, s.err
	}
	if m, ok := s.routes[path]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNoMatch)
}

func (s *stubRouter) EndpointPaths() ([]string, error) {
	if s.pathErr != nil {
		return nil, s.pathErr
	}
	return s.paths, nil
}

// matcherOnly implements URLResolver without EndpointEnumerator.
type matcherOnly struct {
	routes map[string]*Match
}

func (m *matcherOnly) ResolveURL(path string) (*Match, error) {
	if match, ok := m.routes[path]; ok {
		return match, nil
	}
	return nil, ErrNoMatch
}

func TestResolvePathStaticRoute(t *testing.T) {
	stub := &stubRouter{routes: map[string]*Match{
		"/health": {Pattern: "/health"},
	}}
	r, err := New(stub)
	require.NoError(t, err)

	route, err := r.ResolvePath("/health")
	require.NoError(t, err)
	assert.Equal(t, "/health", route.TemplatedPath)
	require.NotNil(t, route.Match)
	assert.Equal(t, []string{"/health"}, stub.calls)
}

func TestResolvePathSubstitutesParams(t *testing.T) {
	stub := &stubRouter{routes: map[string]*Match{
		"/api/v1/users/42": {
			RouteName: "user-detail",
			Pattern:   "/api/v1/users/{id}",
			Params:    []Param{{Name: "id", Value: "42"}},
		},
	}}
	r, err := New(stub)
	require.NoError(t, err)

	route, err := r.ResolvePath("/api/v1/users/42")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/users/{id}", route.TemplatedPath)

	v, ok := route.Match.Param("id")
	assert.True(t, ok)
	assert.Equal(t, "42", v)
	_, ok = route.Match.Param("name")
	assert.False(t, ok)
}

func TestResolvePathNormalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"query string stripped", "/users/42?page=2", "/users/42"},
		{"leading slash added", "users/42", "/users/42"},
		{"trailing slash stripped", "/users/42/", "/users/42"},
		{"bare root kept", "/", "/"},
		{"empty path becomes root", "", "/"},
		{"full URL reduced to path", "http://api.test/users/42?x=1", "/users/42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubRouter{routes: map[string]*Match{
				tt.want: {Pattern: tt.want},
			}}
			r, err := New(stub)
			require.NoError(t, err)

			route, err := r.ResolvePath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, route.TemplatedPath)
			assert.Equal(t, []string{tt.want}, stub.calls)
		})
	}
}

func TestResolvePathRetriesWithTrailingSlash(t *testing.T) {
	stub := &stubRouter{routes: map[string]*Match{
		"/api/v1/users/42/": {
			Pattern: "/api/v1/users/{id}/",
			Params:  []Param{{Name: "id", Value: "42"}},
		},
	}}
	r, err := New(stub)
	require.NoError(t, err)

	route, err := r.ResolvePath("/api/v1/users/42")
	require.NoError(t, err)
	// The retry only probes the router; the templated result keeps the
	// normalized slash-free form.
	assert.Equal(t, "/api/v1/users/{id}", route.TemplatedPath)
	assert.Equal(t, []string{"/api/v1/users/42", "/api/v1/users/42/"}, stub.calls)
}

func TestResolvePathSlashedInputEqualsUnslashed(t *testing.T) {
	stub := &stubRouter{routes: map[string]*Match{
		"/users/42/": {
			Pattern: "/users/{id}/",
			Params:  []Param{{Name: "id", Value: "42"}},
		},
	}}
	r, err := New(stub)
	require.NoError(t, err)

	slashed, err := r.ResolvePath("/users/42/")
	require.NoError(t, err)
	bare, err := r.ResolvePath("/users/42")
	require.NoError(t, err)
	assert.Equal(t, "/users/{id}", bare.TemplatedPath)
	assert.Equal(t, bare.TemplatedPath, slashed.TemplatedPath)
}

func TestResolvePathRightmostSubstitution(t *testing.T) {
	t.Run("repeated text in static segment", func(t *testing.T) {
		stub := &stubRouter{routes: map[string]*Match{
			"/api/v1/items/1": {
				Pattern: "/api/v1/items/{id}",
				Params:  []Param{{Name: "id", Value: "1"}},
			},
		}}
		r, err := New(stub)
		require.NoError(t, err)

		route, err := r.ResolvePath("/api/v1/items/1")
		require.NoError(t, err)
		assert.Equal(t, "/api/v1/items/{id}", route.TemplatedPath)
	})

	t.Run("colliding parameter values swap names", func(t *testing.T) {
		stub := &stubRouter{routes: map[string]*Match{
			"/users/1/posts/1": {
				Pattern: "/users/{userID}/posts/{postID}",
				Params: []Param{
					{Name: "userID", Value: "1"},
					{Name: "postID", Value: "1"},
				},
			},
		}}
		r, err := New(stub)
		require.NoError(t, err)

		route, err := r.ResolvePath("/users/1/posts/1")
		require.NoError(t, err)
		// Rightmost matching consumes the final occurrence first, so equal
		// values leave the later parameter on the earlier segment.
		assert.Equal(t, "/users/{postID}/posts/{userID}", route.TemplatedPath)
	})

	t.Run("value absent from path is skipped", func(t *testing.T) {
		stub := &stubRouter{routes: map[string]*Match{
			"/users/hello": {
				Pattern: "/users/{id}",
				Params:  []Param{{Name: "id", Value: "42"}},
			},
		}}
		r, err := New(stub)
		require.NoError(t, err)

		route, err := r.ResolvePath("/users/hello")
		require.NoError(t, err)
		assert.Equal(t, "/users/hello", route.TemplatedPath)
	})
}

func TestResolvePathFailureListsSuggestions(t *testing.T) {
	stub := &stubRouter{
		paths: []string{"/users/{id}", "/users/{id}/posts"},
	}
	r, err := New(stub)
	require.NoError(t, err)

	_, err = r.ResolvePath("/nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrResolution)
	assert.ErrorIs(t, err, ErrNoMatch)

	var resErr *oaserrors.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "/nonexistent", resErr.Path)
	assert.Contains(t, resErr.Suggestions, "/users/{id}")
	assert.Contains(t, resErr.Suggestions, "/users/{id}/posts")

	msg := err.Error()
	assert.Contains(t, msg, "Could not resolve path `/nonexistent`")
	assert.Contains(t, msg, "Did you mean one of these?")
	assert.Contains(t, msg, "\n- /users/{id}")
	assert.Contains(t, msg, "make sure to pass a value, and not the parameter pattern")
}

func TestResolvePathFailureWithoutEnumerator(t *testing.T) {
	r, err := New(&matcherOnly{})
	require.NoError(t, err)

	_, err = r.ResolvePath("/missing")
	require.Error(t, err)
	assert.EqualError(t, err, "Could not resolve path `/missing`")
}

func TestResolvePathEnumeratorFailureOmitsSuggestions(t *testing.T) {
	stub := &stubRouter{pathErr: errors.New("route table unavailable")}
	r, err := New(stub)
	require.NoError(t, err)

	_, err = r.ResolvePath("/missing")
	require.Error(t, err)

	var resErr *oaserrors.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Empty(t, resErr.Suggestions)
}

func TestResolvePathDeduplicatesSuggestionCandidates(t *testing.T) {
	stub := &stubRouter{
		paths: []string{"/users/{id}", "/users/{id}", "/users/{id}"},
	}
	r, err := New(stub)
	require.NoError(t, err)

	_, err = r.ResolvePath("/users/x/")
	require.Error(t, err)

	var resErr *oaserrors.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, []string{"/users/{id}"}, resErr.Suggestions)
}

func TestResolvePathMaxSuggestions(t *testing.T) {
	stub := &stubRouter{
		paths: []string{"/users/{id}", "/users/{id}/posts", "/users/{id}/likes", "/users"},
	}
	r, err := New(stub, WithMaxSuggestions(2))
	require.NoError(t, err)

	_, err = r.ResolvePath("/users/42/post")
	require.Error(t, err)

	var resErr *oaserrors.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Len(t, resErr.Suggestions, 2)
}

func TestResolvePathSeparateEndpointsSource(t *testing.T) {
	enum := &stubRouter{paths: []string{"/users/{id}"}}
	r, err := New(&matcherOnly{}, WithEndpoints(enum))
	require.NoError(t, err)

	_, err = r.ResolvePath("/users/42")
	require.Error(t, err)

	var resErr *oaserrors.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, []string{"/users/{id}"}, resErr.Suggestions)
}

func TestEndpointPaths(t *testing.T) {
	t.Run("sorted and deduplicated", func(t *testing.T) {
		stub := &stubRouter{paths: []string{"/b", "/a", "/b", "/a"}}
		r, err := New(stub)
		require.NoError(t, err)

		paths, err := r.EndpointPaths()
		require.NoError(t, err)
		assert.Equal(t, []string{"/a", "/b"}, paths)
	})

	t.Run("nil without endpoint source", func(t *testing.T) {
		r, err := New(&matcherOnly{})
		require.NoError(t, err)

		paths, err := r.EndpointPaths()
		require.NoError(t, err)
		assert.Nil(t, paths)
	})

	t.Run("enumeration error surfaces", func(t *testing.T) {
		boom := errors.New("route table unavailable")
		r, err := New(&stubRouter{pathErr: boom})
		require.NoError(t, err)

		_, err = r.EndpointPaths()
		assert.ErrorIs(t, err, boom)
	})
}

func TestResolvePathAdapterErrorPassesThrough(t *testing.T) {
	boom := errors.New("route table corrupted")
	stub := &stubRouter{err: boom}
	r, err := New(stub)
	require.NoError(t, err)

	_, err = r.ResolvePath("/users/42")
	require.ErrorIs(t, err, boom)

	var resErr *oaserrors.ResolutionError
	assert.False(t, errors.As(err, &resErr))
	assert.Len(t, stub.calls, 1)
}

func TestNewValidation(t *testing.T) {
	t.Run("nil URLResolver", func(t *testing.T) {
		_, err := New(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "URLResolver is required")
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := New(&matcherOnly{}, WithLogger(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger cannot be nil")
	})

	t.Run("nil endpoints", func(t *testing.T) {
		_, err := New(&matcherOnly{}, WithEndpoints(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "endpoints cannot be nil")
	})

	t.Run("non-positive max suggestions", func(t *testing.T) {
		_, err := New(&matcherOnly{}, WithMaxSuggestions(0))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})
}
