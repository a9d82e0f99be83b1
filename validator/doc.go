// Package validator checks decoded OpenAPI documents against the
// meta-schema for their declared version.
//
// A document carrying an "openapi" key is validated as OpenAPI 3.x through
// kin-openapi; any other document is validated as Swagger 2.0 through
// go-openapi. The key's presence alone selects the branch: a malformed
// version value surfaces as a validation failure from the underlying
// library, not as a selection error.
//
// Both branches are plain function fields on the Validator and can be
// swapped out, for example to skip validation or to add custom rules:
//
//	v := validator.New()
//	v.ValidateV3 = func(schema.Document) error { return nil }
//
// Validation errors are returned exactly as the underlying libraries produce
// them, so failures point at the offending schema location.
package validator
