// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// StandardError Tests
// ==========================

func TestStandardError_IsMatchesByCode(t *testing.T) {
	err := NewNotFoundError("match", "m-1")

	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, stderrors.Is(err, ErrUnauthorized))

	wrapped := fmt.Errorf("load: %w", err)
	assert.True(t, stderrors.Is(wrapped, ErrNotFound))
	assert.Equal(t, ErrCodeNotFound, CodeOf(wrapped))
}

func TestStandardError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewDatabaseQueryFailedError("list matches", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, err.Retryable)
	assert.Contains(t, err.Error(), "DATABASE_QUERY_FAILED")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestNormalize_FallsBackToInternal(t *testing.T) {
	std := Normalize(stderrors.New("boom"))

	assert.Equal(t, ErrCodeInternal, std.Code)
	assert.False(t, std.Retryable)
	assert.Equal(t, "boom", std.Details)
	assert.Equal(t, ErrorCode(""), CodeOf(stderrors.New("plain")))
}

// ==========================
// BPMN Conversion Tests
// ==========================

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{"not found", NewNotFoundError("user", "u-1"), "NOT_FOUND", 0},
		{"unauthorized", NewUnauthorizedError("u-1", "m-1"), "UNAUTHORIZED", 0},
		{"db query", NewDatabaseQueryFailedError("q", stderrors.New("x")), "DATABASE_ERROR", 3},
		{"db insert", NewDatabaseInsertFailedError("i", stderrors.New("x")), "DATABASE_ERROR", 3},
		{"search", NewSearchIndexFailedError("matches", stderrors.New("x")), "SEARCH_ERROR", 2},
		{"timeout", NewTimeoutError("zeebe", stderrors.New("x")), "TIMEOUT_ERROR", 2},
		{"notification", NewNotificationSendFailedError("email", stderrors.New("x")), "NOTIFICATION_SEND_FAILED", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)
			assert.Equal(t, string(tt.err.Code), bpmn.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_NonRetryableClearsRetries(t *testing.T) {
	err := NewDatabaseQueryFailedError("q", stderrors.New("x"))
	err.Retryable = false

	assert.Equal(t, 0, ConvertToBPMNError(err).Retries)
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	bpmn := ConvertToBPMNError(NewRecentMatchesExistError(7))

	vars := bpmn.ToErrorVariables()
	require.Contains(t, vars, "recentMatchesCount")
	assert.Equal(t, 7, vars["recentMatchesCount"])
	assert.Equal(t, "RECENT_MATCHES_EXIST", vars["errorCode"])
	assert.Equal(t, false, vars["retryable"])
}

// ==========================
// Utility Tests
// ==========================

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "AUTH", GetErrorCategory(ErrCodeUnauthorized))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseInsertFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchIndexFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidArgument))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeValidationFailed))
	assert.Equal(t, "BUSINESS", GetErrorCategory(ErrCodeProfileNotFound))
	assert.Equal(t, "BUSINESS", GetErrorCategory(ErrCodeRecentMatchesExist))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeDatabaseQueryFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeInvalidUserType))
}
