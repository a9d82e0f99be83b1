package validator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/erraggy/oastest"
	"github.com/erraggy/oastest/schema"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/loads"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// ValidateFunc checks one version family of a decoded OpenAPI document.
type ValidateFunc func(doc schema.Document) error

// Validator routes a document to the validator for its declared version.
type Validator struct {
	// ValidateV2 checks Swagger 2.0 documents. Defaults to ValidateV2.
	ValidateV2 ValidateFunc
	// ValidateV3 checks OpenAPI 3.x documents. Defaults to ValidateV3.
	ValidateV3 ValidateFunc
	// Logger receives debug output about branch selection.
	Logger oastest.Logger
}

// New returns a Validator wired to the default version validators.
func New() *Validator {
	return &Validator{
		ValidateV2: ValidateV2,
		ValidateV3: ValidateV3,
		Logger:     oastest.NopLogger{},
	}
}

// Validate checks doc against the meta-schema for its declared version.
// Documents without an "openapi" key validate as Swagger 2.0. Errors are
// returned as produced by the configured branch.
func (v *Validator) Validate(doc schema.Document) error {
	logger := v.Logger
	if logger == nil {
		logger = oastest.NopLogger{}
	}
	if doc.IsV3() {
		logger.Debug("validating schema", "family", "openapi3", "version", doc.Version())
		return v.ValidateV3(doc)
	}
	logger.Debug("validating schema", "family", "swagger2", "version", doc.Version())
	return v.ValidateV2(doc)
}

// ValidateV3 validates an OpenAPI 3.x document with kin-openapi. The map
// tree is re-encoded to JSON so the library sees exactly what the document
// holds after reference resolution.
func ValidateV3(doc schema.Document) error {
	data, err := json.Marshal(map[string]any(doc))
	if err != nil {
		return fmt.Errorf("validator: unable to encode document: %w", err)
	}
	loader := &openapi3.Loader{Context: context.Background()}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return err
	}
	return spec.Validate(loader.Context)
}

// ValidateV2 validates a Swagger 2.0 document with go-openapi.
func ValidateV2(doc schema.Document) error {
	data, err := json.Marshal(map[string]any(doc))
	if err != nil {
		return fmt.Errorf("validator: unable to encode document: %w", err)
	}
	swaggerDoc, err := loads.Analyzed(json.RawMessage(data), "")
	if err != nil {
		return err
	}
	return validate.Spec(swaggerDoc, strfmt.Default)
}
