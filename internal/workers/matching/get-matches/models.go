// internal/workers/matching/get-matches/models.go
package getmatches

import "matching-workers/internal/models"

type Input struct {
	UserID string `json:"userId"`
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type Output struct {
	Matches      []*models.MatchView `json:"matches"`
	MatchesCount int                 `json:"matchesCount"`
	Offset       int                 `json:"offset"`
	HasMore      bool                `json:"hasMore"`
}
