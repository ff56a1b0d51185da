// internal/workers/matching/get-match-details/models.go
package getmatchdetails

import "matching-workers/internal/models"

type Input struct {
	MatchID string `json:"matchId"`
	UserID  string `json:"userId"`
	// InsightOnly returns just the insight and fails when it is missing.
	InsightOnly bool `json:"insightOnly,omitempty"`
}

type Output struct {
	Match          *models.Match          `json:"match,omitempty"`
	PartnerProfile *models.PartnerProfile `json:"partnerProfile,omitempty"`
	Insight        *models.MatchInsight   `json:"insight"`
	HasInsight     bool                   `json:"hasInsight"`
}
