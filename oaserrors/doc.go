// Package oaserrors provides structured error types for the oastest library.
//
// Import path: github.com/erraggy/oastest/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides three core error types:
//
//   - [ConfigError]: unreadable or unparseable schema sources, invalid options
//   - [SchemaError]: malformed schema content, $ref resolution failures, path traversal
//   - [ResolutionError]: request paths that map to no templated endpoint path
//
// Specification validation failures have no package type: the delegated
// validator's error is surfaced verbatim, so callers see the validator's
// own diagnostics.
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrSchema]: Matches any [SchemaError]
//   - [ErrPathTraversal]: Matches [SchemaError] with IsPathTraversal=true
//   - [ErrResolution]: Matches any [ResolutionError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	doc, err := l.GetSchema()
//	if errors.Is(err, oaserrors.ErrConfig) {
//	    // The schema source is misconfigured
//	}
//
// Extract error details with errors.As():
//
//	var resErr *oaserrors.ResolutionError
//	if errors.As(err, &resErr) {
//	    fmt.Printf("no route for %s, closest: %v\n", resErr.Path, resErr.Suggestions)
//	}
//
// Check for specific conditions:
//
//	if errors.Is(err, oaserrors.ErrPathTraversal) {
//	    // Security issue - log and reject
//	}
//
// # Error Chaining
//
// All error types support error chaining via the Cause field and Unwrap() method.
// This allows finding root causes through the standard error chain:
//
//	var cfgErr *oaserrors.ConfigError
//	if errors.As(err, &cfgErr) {
//	    if errors.Is(cfgErr.Cause, os.ErrNotExist) {
//	        // The schema file doesn't exist
//	    }
//	}
package oaserrors
