// internal/workers/matching/get-matches/handler_test.go
package getmatches

import (
	"context"
	"testing"

	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"
	"matching-workers/internal/matching/matchingtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) (*Handler, *matching.Engine) {
	engine, _ := matchingtest.NewEngine(t)
	_, err := engine.GenerateMatches(context.Background(), matchingtest.InvestorID, matching.GenerateOptions{})
	require.NoError(t, err)
	return NewHandler(LoadConfig(), engine, logger.NewTestLogger(t)), engine
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_InvestorView(t *testing.T) {
	h, _ := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{UserID: matchingtest.InvestorID})
	require.NoError(t, err)

	require.Equal(t, 2, out.MatchesCount)
	assert.False(t, out.HasMore)
	assert.Equal(t, matchingtest.IdealStartupID, out.Matches[0].Match.StartupID)
	require.NotNil(t, out.Matches[0].PartnerProfile)
	require.NotNil(t, out.Matches[0].PartnerProfile.Startup)
	assert.Nil(t, out.Matches[0].PartnerProfile.Investor)
	assert.Equal(t, "Ledgerly", out.Matches[0].PartnerProfile.Startup.CompanyName)
}

func TestHandler_Execute_StartupView(t *testing.T) {
	h, _ := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{UserID: matchingtest.GoodStartupID})
	require.NoError(t, err)

	require.Equal(t, 1, out.MatchesCount)
	require.NotNil(t, out.Matches[0].PartnerProfile.Investor)
	assert.Equal(t, "Dana", out.Matches[0].PartnerProfile.Investor.Name)
}

func TestHandler_Execute_Paging(t *testing.T) {
	h, _ := createTestHandler(t)
	ctx := context.Background()

	first, err := h.Execute(ctx, &Input{UserID: matchingtest.InvestorID, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, first.MatchesCount)
	assert.True(t, first.HasMore)

	second, err := h.Execute(ctx, &Input{UserID: matchingtest.InvestorID, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Equal(t, 1, second.MatchesCount)
	assert.Equal(t, 1, second.Offset)
	assert.Equal(t, matchingtest.GoodStartupID, second.Matches[0].Match.StartupID)
}

func TestHandler_Execute_StatusFilter(t *testing.T) {
	h, engine := createTestHandler(t)
	ctx := context.Background()

	views, err := engine.GetMatches(ctx, matchingtest.InvestorID, "", 0, 0)
	require.NoError(t, err)
	_, err = engine.UpdateInterest(ctx, views[0].Match.ID, matchingtest.InvestorID, "interested")
	require.NoError(t, err)

	out, err := h.Execute(ctx, &Input{UserID: matchingtest.InvestorID, Status: "interested"})
	require.NoError(t, err)
	require.Equal(t, 1, out.MatchesCount)
	assert.Equal(t, views[0].Match.ID, out.Matches[0].Match.ID)

	out, err = h.Execute(ctx, &Input{UserID: matchingtest.InvestorID, Status: "matched"})
	require.NoError(t, err)
	assert.Empty(t, out.Matches)
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
		{"unknown status", &Input{UserID: matchingtest.InvestorID, Status: "archived"}, errors.ErrCodeInvalidArgument},
		{"negative offset", &Input{UserID: matchingtest.InvestorID, Offset: -1}, errors.ErrCodeInvalidArgument},
		{"limit above maximum", &Input{UserID: matchingtest.InvestorID, Limit: 101}, errors.ErrCodeInvalidArgument},
	}

	h, _ := createTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}
