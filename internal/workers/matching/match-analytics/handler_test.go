// internal/workers/matching/match-analytics/handler_test.go
package matchanalytics

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

func createTestHandler(t *testing.T) (*Handler, *matching.Engine) {
	engine, _ := matchingtest.NewEngine(t)
	return NewHandler(LoadConfig(), engine, logger.NewTestLogger(t)), engine
}

func insightTitles(a *matching.Analytics) []string {
	titles := make([]string, 0, len(a.Insights))
	for _, i := range a.Insights {
		titles = append(titles, i.Title)
	}
	return titles
}

func TestHandler_Execute_NoMatchesYet(t *testing.T) {
	h, _ := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{UserID: matchingtest.InvestorID})
	require.NoError(t, err)

	assert.Equal(t, 0, out.Analytics.Overview.TotalMatches)
	assert.Equal(t, []string{"Complete Your Profile"}, insightTitles(out.Analytics))
	assert.Equal(t, 0.0, out.Stats.MatchRate)
}

func TestHandler_Execute_Investor(t *testing.T) {
	h, engine := createTestHandler(t)
	ctx := context.Background()

	res, err := engine.GenerateMatches(ctx, matchingtest.InvestorID, matching.GenerateOptions{})
	require.NoError(t, err)
	ideal := res.Matches[0].ID
	_, err = engine.UpdateInterest(ctx, ideal, matchingtest.InvestorID, "interested")
	require.NoError(t, err)
	_, err = engine.UpdateInterest(ctx, ideal, matchingtest.IdealStartupID, "interested")
	require.NoError(t, err)

	out, err := h.Execute(ctx, &Input{UserID: matchingtest.InvestorID})
	require.NoError(t, err)

	o := out.Analytics.Overview
	assert.Equal(t, 2, o.TotalMatches)
	assert.Equal(t, 1, o.PendingMatches)
	assert.Equal(t, 1, o.MutualMatches)
	assert.Equal(t, 1, o.HighQualityMatches)
	assert.InDelta(t, 86.25, o.AvgCompatibility, 0.06)
	assert.Equal(t, 50.0, o.ResponseRate)
	require.NotNil(t, o.SuccessRate)
	assert.Equal(t, 100.0, *o.SuccessRate)
	assert.Nil(t, o.AttractionRate)

	assert.Equal(t, []string{"Building Your Match Pipeline", "High Success Rate", "High-Quality Matches"}, insightTitles(out.Analytics))
	require.NotEmpty(t, out.Analytics.Trends.ReasonBreakdown)

	assert.Equal(t, 2, out.Stats.TotalMatches)
	assert.Equal(t, 1, out.Stats.MutualMatches)
	assert.Equal(t, 50.0, out.Stats.MatchRate)
}

func TestHandler_Execute_Startup(t *testing.T) {
	h, engine := createTestHandler(t)
	ctx := context.Background()

	res, err := engine.GenerateMatches(ctx, matchingtest.InvestorID, matching.GenerateOptions{})
	require.NoError(t, err)
	_, err = engine.UpdateInterest(ctx, res.Matches[0].ID, matchingtest.InvestorID, "interested")
	require.NoError(t, err)

	out, err := h.Execute(ctx, &Input{UserID: matchingtest.IdealStartupID})
	require.NoError(t, err)

	o := out.Analytics.Overview
	assert.Equal(t, 1, o.TotalMatches)
	require.NotNil(t, o.InvestorInterestCount)
	assert.Equal(t, 1, *o.InvestorInterestCount)
	require.NotNil(t, o.AttractionRate)
	assert.Equal(t, 100.0, *o.AttractionRate)
	assert.Nil(t, o.SuccessRate)
	assert.Equal(t, []string{"High Investor Interest"}, insightTitles(out.Analytics))
}

func TestHandler_Execute_Errors(t *testing.T) {
	h, _ := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{})
	assert.Equal(t, errors.ErrCodeInvalidArgument, errors.CodeOf(err))

	_, err = h.Execute(context.Background(), &Input{UserID: "ghost"})
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}
