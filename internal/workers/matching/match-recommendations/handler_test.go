// internal/workers/matching/match-recommendations/handler_test.go
package matchrecommendations

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

func createTestHandler(t *testing.T) (*Handler, *matching.Engine, *matching.GenerateResult) {
	engine, _ := matchingtest.NewEngine(t)
	res, err := engine.GenerateMatches(context.Background(), matchingtest.InvestorID, matching.GenerateOptions{})
	require.NoError(t, err)
	return NewHandler(LoadConfig(), engine, logger.NewTestLogger(t)), engine, res
}

func titles(recs []matching.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Title)
	}
	return out
}

func TestHandler_Execute_Investor(t *testing.T) {
	h, _, res := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{UserID: matchingtest.InvestorID})
	require.NoError(t, err)

	require.Equal(t, 2, out.RecommendationsCount)
	assert.Equal(t, 2, out.HighPriorityCount)
	assert.Equal(t, res.Matches[0].ID, out.Recommendations[0].MatchID)
	assert.Equal(t, "/matches/"+res.Matches[0].ID, out.Recommendations[0].ActionURL)
	assert.Equal(t, "Review this 99.0% compatibility match", out.Recommendations[0].Message)
	assert.Equal(t, res.Matches[1].ID, out.Recommendations[1].MatchID)
}

func TestHandler_Execute_Startup(t *testing.T) {
	h, engine, res := createTestHandler(t)
	ctx := context.Background()

	out, err := h.Execute(ctx, &Input{UserID: matchingtest.IdealStartupID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Add Traction Metrics", "Detail Fund Usage"}, titles(out.Recommendations))
	assert.Equal(t, 0, out.HighPriorityCount)

	_, err = engine.UpdateInterest(ctx, res.Matches[0].ID, matchingtest.InvestorID, "interested")
	require.NoError(t, err)

	out, err = h.Execute(ctx, &Input{UserID: matchingtest.IdealStartupID})
	require.NoError(t, err)
	require.Equal(t, 3, out.RecommendationsCount)
	assert.Equal(t, "Investor Interested in Your Startup", out.Recommendations[0].Title)
	assert.Equal(t, 1, out.HighPriorityCount)
}

func TestHandler_Execute_Errors(t *testing.T) {
	h, _, _ := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{})
	assert.Equal(t, errors.ErrCodeInvalidArgument, errors.CodeOf(err))

	_, err = h.Execute(context.Background(), &Input{UserID: "ghost"})
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}
