// internal/forms/validator.go
package forms

import (
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	commonerrors "nyaysetu/internal/common/errors"
)

// Validator checks form responses against a per-form-type JSON schema. Every
// field is optional, but values must be strings and keys must belong to the
// form's sections.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

func NewValidator() (*Validator, error) {
	schemas := make(map[string]*gojsonschema.Schema, len(formTemplates))
	for formType := range formTemplates {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaFor(formType)))
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", formType, err)
		}
		schemas[formType] = schema
	}
	return &Validator{schemas: schemas}, nil
}

// Validate returns a FORM_VALIDATION_FAILED error listing every violation, or
// nil when the responses fit the form.
func (v *Validator) Validate(formType string, responses map[string]interface{}) error {
	schema, ok := v.schemas[formType]
	if !ok {
		return commonerrors.NewFormTypeError(formType)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(responses))
	if err != nil {
		return commonerrors.NewInternalError(fmt.Errorf("validate responses: %w", err))
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return &commonerrors.StandardError{
		Code:      commonerrors.ErrCodeFormValidationFailed,
		Message:   "Form responses failed validation",
		Details:   strings.Join(violations, "; "),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Coerce converts validated responses into the string map the generator
// consumes.
func Coerce(responses map[string]interface{}) map[string]string {
	out := make(map[string]string, len(responses))
	for key, value := range responses {
		if s, ok := value.(string); ok {
			out[key] = s
		}
	}
	return out
}

func schemaFor(formType string) map[string]interface{} {
	properties := map[string]interface{}{}
	for _, section := range formTemplates[formType].Sections {
		for _, field := range sectionTemplates[section] {
			properties[field.Key] = map[string]interface{}{"type": "string"}
		}
	}
	return map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}
