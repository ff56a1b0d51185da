// internal/workers/matching/generate-matches/models.go
package generatematches

import "matching-workers/internal/models"

type Input struct {
	UserID          string `json:"userId"`
	Limit           int    `json:"limit,omitempty"`
	ForceRegenerate bool   `json:"forceRegenerate,omitempty"`
}

type Output struct {
	Matches        []*models.Match `json:"matches"`
	MatchesCount   int             `json:"matchesCount"`
	TotalGenerated int             `json:"totalGenerated"`
	CandidatesSeen int             `json:"candidatesSeen"`
	GeneratedAt    string          `json:"generatedAt"`
}
