// internal/workers/matching/match-recommendations/models.go
package matchrecommendations

import "matching-workers/internal/matching"

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	Recommendations      []matching.Recommendation `json:"recommendations"`
	RecommendationsCount int                       `json:"recommendationsCount"`
	HighPriorityCount    int                       `json:"highPriorityCount"`
}
