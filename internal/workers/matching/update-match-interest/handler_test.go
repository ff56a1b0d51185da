// internal/workers/matching/update-match-interest/handler_test.go
package updatematchinterest

import (
	"context"
	"testing"

	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"
	"matching-workers/internal/matching/matchingtest"
	"matching-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

// createTestHandler generates matches for the seeded investor and returns the
// id of the match with the ideal startup.
func createTestHandler(t *testing.T) (*Handler, string) {
	engine, _ := matchingtest.NewEngine(t)
	res, err := engine.GenerateMatches(context.Background(), matchingtest.InvestorID, matching.GenerateOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, res.Matches)
	return NewHandler(LoadConfig(), engine, logger.NewTestLogger(t)), res.Matches[0].ID
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_MutualMatch(t *testing.T) {
	h, matchID := createTestHandler(t)
	ctx := context.Background()

	out, err := h.Execute(ctx, &Input{MatchID: matchID, UserID: matchingtest.InvestorID, Interest: "interested"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterested, out.Status)
	assert.False(t, out.IsMutualMatch)
	assert.Equal(t, matchingtest.IdealStartupID, out.CounterpartID)

	out, err = h.Execute(ctx, &Input{MatchID: matchID, UserID: matchingtest.IdealStartupID, Interest: "interested"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusMatched, out.Status)
	assert.True(t, out.IsMutualMatch)
	assert.Equal(t, matchingtest.InvestorID, out.CounterpartID)
	require.NotNil(t, out.Match.LastInteractionAt)
	assert.Equal(t, matchingtest.Now, *out.Match.LastInteractionAt)
}

func TestHandler_Execute_Pass(t *testing.T) {
	h, matchID := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{MatchID: matchID, UserID: matchingtest.IdealStartupID, Interest: "not_interested"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPassed, out.Status)
	assert.False(t, out.IsMutualMatch)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_Errors(t *testing.T) {
	h, matchID := createTestHandler(t)

	tests := []struct {
		name     string
		input    *Input
		wantCode errors.ErrorCode
	}{
		{"missing match id", &Input{UserID: matchingtest.InvestorID, Interest: "interested"}, errors.ErrCodeInvalidArgument},
		{"missing user id", &Input{MatchID: matchID, Interest: "interested"}, errors.ErrCodeInvalidArgument},
		{"unknown interest", &Input{MatchID: matchID, UserID: matchingtest.InvestorID, Interest: "maybe"}, errors.ErrCodeInvalidArgument},
		{"unknown match", &Input{MatchID: "nope", UserID: matchingtest.InvestorID, Interest: "interested"}, errors.ErrCodeNotFound},
		{"not a party", &Input{MatchID: matchID, UserID: matchingtest.PoorStartupID, Interest: "interested"}, errors.ErrCodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}
