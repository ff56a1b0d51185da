// internal/common/validation/validator.go
package validation

import (
	"fmt"
	"sort"
	"strings"

	"matching-workers/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// Validator checks job variables against the compiled input schema of their
// task type. Task types without a schema are accepted as is.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

func NewValidator(schemas map[string]map[string]interface{}) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(schemas))}
	for taskType, raw := range schemas {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", taskType, err)
		}
		v.schemas[taskType] = schema
	}
	return v, nil
}

func (v *Validator) Validate(taskType string, variables string) error {
	schema, ok := v.schemas[taskType]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(variables))
	if err != nil {
		return errors.NewInvalidArgumentError("job variables", err.Error())
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	sort.Strings(msgs)
	return errors.NewValidationFailedError(strings.Join(msgs, "; "))
}
