// internal/common/validation/validator_test.go
package validation

import (
	"testing"

	"matching-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchemas() map[string]map[string]interface{} {
	return map[string]map[string]interface{}{
		"generate-matches": {
			"type":     "object",
			"required": []interface{}{"userId"},
			"properties": map[string]interface{}{
				"userId": map[string]interface{}{"type": "string", "minLength": 1},
				"limit":  map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 100},
			},
		},
	}
}

func TestValidator_Validate(t *testing.T) {
	v, err := NewValidator(testSchemas())
	require.NoError(t, err)

	tests := []struct {
		name     string
		taskType string
		vars     string
		wantCode errors.ErrorCode
	}{
		{"valid", "generate-matches", `{"userId":"u-1","limit":5}`, ""},
		{"missing user", "generate-matches", `{"limit":5}`, errors.ErrCodeValidationFailed},
		{"limit too high", "generate-matches", `{"userId":"u-1","limit":500}`, errors.ErrCodeValidationFailed},
		{"wrong type", "generate-matches", `{"userId":42}`, errors.ErrCodeValidationFailed},
		{"broken json", "generate-matches", `{"userId":`, errors.ErrCodeInvalidArgument},
		{"unknown task type", "other-task", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.taskType, tt.vars)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}

func TestNewValidator_BadSchema(t *testing.T) {
	_, err := NewValidator(map[string]map[string]interface{}{
		"broken": {"type": 12},
	})
	assert.Error(t, err)
}

func TestValidator_ErrorMatchesSentinel(t *testing.T) {
	v, err := NewValidator(map[string]map[string]interface{}{
		"get-matches": {
			"type":     "object",
			"required": []interface{}{"userId"},
		},
	})
	require.NoError(t, err)

	err = v.Validate("get-matches", `{}`)
	assert.ErrorIs(t, err, errors.ErrValidationFailed)
	assert.NotErrorIs(t, err, errors.ErrNotFound)
}
