// Package oaserrors provides structured error types for oastest.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ConfigError: unreadable or unparseable schema sources and invalid options
//   - SchemaError: malformed schema content, $ref resolution failures, path traversal
//   - ResolutionError: request paths that cannot be mapped to a templated endpoint path
//
// Specification validation failures are not wrapped in a package type: the
// delegated validator's own error is returned verbatim so its diagnostics
// survive intact.
//
// # Usage with errors.As
//
//	route, err := l.GetRoute("/nonexistent")
//	if err != nil {
//	    var resErr *oaserrors.ResolutionError
//	    if errors.As(err, &resErr) {
//	        for _, s := range resErr.Suggestions {
//	            // Offer the near misses to the user
//	        }
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrConfig indicates an invalid configuration or schema source.
	ErrConfig = errors.New("configuration error")

	// ErrSchema indicates malformed schema content or a reference failure.
	ErrSchema = errors.New("schema error")

	// ErrPathTraversal indicates a path traversal attempt was blocked.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrResolution indicates a request path could not be resolved to a route.
	ErrResolution = errors.New("path resolution error")
)

// ConfigError represents an invalid configuration or an unusable schema source.
// This includes unreadable schema files, unparseable schema content, missing
// required inputs, and conflicting settings.
type ConfigError struct {
	// Setting is the name of the problematic configuration setting
	Setting string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Setting != "" {
		msg += " for " + e.Setting
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// SchemaError represents malformed schema content or a failure to resolve a $ref.
// This includes missing reference targets, unreachable external references, and
// path traversal attempts.
type SchemaError struct {
	// Ref is the reference string that failed to resolve, if any
	Ref string
	// RefType indicates the reference type: "local", "file", or "http"
	RefType string
	// IsPathTraversal is true if this error is due to a path traversal attempt
	IsPathTraversal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.IsPathTraversal {
		msg = "path traversal detected"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrSchema, and also ErrPathTraversal when the flag is set.
func (e *SchemaError) Is(target error) bool {
	if target == ErrSchema {
		return true
	}
	if target == ErrPathTraversal && e.IsPathTraversal {
		return true
	}
	return false
}

// ResolutionError represents a request path that could not be mapped to any
// templated endpoint path. It carries the closest known endpoint paths so the
// message can point the caller at likely typos.
type ResolutionError struct {
	// Path is the normalized request path that failed to resolve
	Path string
	// Suggestions are the closest known endpoint paths, best match first
	Suggestions []string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns the full guidance message. With suggestions available it
// lists them as bullets and reminds the caller to pass parameter values
// rather than parameter patterns; without suggestions it is a single line.
func (e *ResolutionError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("Could not resolve path `%s`", e.Path)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Could not resolve path `%s`.\n\nDid you mean one of these?", e.Path)
	for _, s := range e.Suggestions {
		b.WriteString("\n- ")
		b.WriteString(s)
	}
	b.WriteString("\n\nIf your path contains path parameters (e.g., `/api/{version}/...`), ")
	b.WriteString("make sure to pass a value, and not the parameter pattern.")
	return b.String()
}

// Unwrap returns the underlying cause for error chaining.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}
