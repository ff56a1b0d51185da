// internal/workers/matching/generate-matches/handler_test.go
package generatematches

import (
	"context"
	"testing"
	"time"

	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching/matchingtest"
	"matching-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	engine, _ := matchingtest.NewEngine(t)
	return NewHandler(LoadConfig(), engine, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{UserID: matchingtest.InvestorID})
	require.NoError(t, err)

	assert.Equal(t, 2, out.MatchesCount)
	assert.Equal(t, 2, out.TotalGenerated)
	assert.Equal(t, 3, out.CandidatesSeen)
	assert.Equal(t, matchingtest.IdealStartupID, out.Matches[0].StartupID)
	assert.Equal(t, models.StatusPending, out.Matches[0].Status)

	_, err = time.Parse(time.RFC3339, out.GeneratedAt)
	assert.NoError(t, err)
}

func TestHandler_Execute_LimitAndRegenerate(t *testing.T) {
	h := createTestHandler(t)
	ctx := context.Background()

	out, err := h.Execute(ctx, &Input{UserID: matchingtest.IdealStartupID, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, out.MatchesCount)

	_, err = h.Execute(ctx, &Input{UserID: matchingtest.IdealStartupID})
	assert.ErrorIs(t, err, errors.ErrRecentMatchesExist)

	out, err = h.Execute(ctx, &Input{UserID: matchingtest.IdealStartupID, ForceRegenerate: true})
	require.NoError(t, err)
	assert.Equal(t, 0, out.MatchesCount)
	assert.NotNil(t, out.Matches)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    *Input
		wantCode errors.ErrorCode
	}{
		{"missing user id", &Input{}, errors.ErrCodeInvalidArgument},
		{"unknown user", &Input{UserID: "ghost"}, errors.ErrCodeNotFound},
		{"limit above maximum", &Input{UserID: matchingtest.InvestorID, Limit: 500}, errors.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t)
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}
