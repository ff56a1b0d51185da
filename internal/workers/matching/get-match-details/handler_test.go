// internal/workers/matching/get-match-details/handler_test.go
package getmatchdetails

import (
	"context"
	"testing"

	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"
	"matching-workers/internal/matching/matchingtest"
	"matching-workers/internal/models"
	"matching-workers/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) (*Handler, *store.MemoryStore, string) {
	engine, s := matchingtest.NewEngine(t)
	res, err := engine.GenerateMatches(context.Background(), matchingtest.InvestorID, matching.GenerateOptions{})
	require.NoError(t, err)
	return NewHandler(LoadConfig(), engine, logger.NewTestLogger(t)), s, res.Matches[0].ID
}

// addBareMatch stores a match without an insight row.
func addBareMatch(s *store.MemoryStore) string {
	s.AddMatch(&models.Match{
		ID:                 "bare-1",
		InvestorID:         matchingtest.InvestorID,
		StartupID:          matchingtest.PoorStartupID,
		CompatibilityScore: 0.5,
		ConfidenceLevel:    models.ConfidenceLow,
		Status:             models.StatusPending,
		MatchReasons:       []string{},
		RiskFactors:        []string{},
		CreatedAt:          matchingtest.Now,
		UpdatedAt:          matchingtest.Now,
	})
	return "bare-1"
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Details(t *testing.T) {
	h, _, matchID := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{MatchID: matchID, UserID: matchingtest.IdealStartupID})
	require.NoError(t, err)

	assert.Equal(t, matchID, out.Match.ID)
	require.NotNil(t, out.PartnerProfile)
	require.NotNil(t, out.PartnerProfile.Investor)
	assert.Equal(t, "Dana", out.PartnerProfile.Investor.Name)
	assert.True(t, out.HasInsight)
	assert.Equal(t, matchID, out.Insight.MatchID)
	assert.Equal(t, 0.8, out.Insight.DataCompleteness)
}

func TestHandler_Execute_InsightOnly(t *testing.T) {
	h, _, matchID := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{MatchID: matchID, UserID: matchingtest.InvestorID, InsightOnly: true})
	require.NoError(t, err)

	assert.Nil(t, out.Match)
	assert.True(t, out.HasInsight)
	assert.Contains(t, out.Insight.OverallExplanation, "99.0%")
}

func TestHandler_Execute_MissingInsight(t *testing.T) {
	h, s, _ := createTestHandler(t)
	bareID := addBareMatch(s)
	ctx := context.Background()

	out, err := h.Execute(ctx, &Input{MatchID: bareID, UserID: matchingtest.InvestorID})
	require.NoError(t, err)
	assert.False(t, out.HasInsight)
	assert.Nil(t, out.Insight)

	_, err = h.Execute(ctx, &Input{MatchID: bareID, UserID: matchingtest.InvestorID, InsightOnly: true})
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

// ==========================
// Error Handling Tests
// ==========================

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
		{"not a party", &Input{MatchID: matchID, UserID: matchingtest.PoorStartupID}, errors.ErrCodeUnauthorized},
		{"insight for outsider", &Input{MatchID: matchID, UserID: "stranger", InsightOnly: true}, errors.ErrCodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}
