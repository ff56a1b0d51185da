// internal/workers/matching/mark-match-viewed/handler_test.go
package markmatchviewed

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

func createTestHandler(t *testing.T) (*Handler, *matching.Engine, string) {
	engine, _ := matchingtest.NewEngine(t)
	res, err := engine.GenerateMatches(context.Background(), matchingtest.InvestorID, matching.GenerateOptions{})
	require.NoError(t, err)
	return NewHandler(LoadConfig(), engine, logger.NewTestLogger(t)), engine, res.Matches[0].ID
}

func TestHandler_Execute_PendingBecomesViewed(t *testing.T) {
	h, _, matchID := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{MatchID: matchID, UserID: matchingtest.IdealStartupID})
	require.NoError(t, err)

	assert.Equal(t, matchID, out.MatchID)
	assert.Equal(t, models.StatusViewed, out.Status)
	require.NotNil(t, out.ViewedAt)
	assert.Equal(t, matchingtest.Now, *out.ViewedAt)
}

func TestHandler_Execute_LaterStatusKept(t *testing.T) {
	h, engine, matchID := createTestHandler(t)
	ctx := context.Background()

	_, err := engine.UpdateInterest(ctx, matchID, matchingtest.InvestorID, "interested")
	require.NoError(t, err)

	out, err := h.Execute(ctx, &Input{MatchID: matchID, UserID: matchingtest.InvestorID})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterested, out.Status)
	assert.NotNil(t, out.ViewedAt)
}

func TestHandler_Execute_Errors(t *testing.T) {
	h, _, matchID := createTestHandler(t)

	tests := []struct {
		name     string
		input    *Input
		wantCode errors.ErrorCode
	}{
		{"missing match id", &Input{UserID: matchingtest.InvestorID}, errors.ErrCodeInvalidArgument},
		{"missing user id", &Input{MatchID: matchID}, errors.ErrCodeInvalidArgument},
		{"unknown match", &Input{MatchID: "nope", UserID: matchingtest.InvestorID}, errors.ErrCodeNotFound},
		{"not a party", &Input{MatchID: matchID, UserID: matchingtest.GoodStartupID}, errors.ErrCodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}
