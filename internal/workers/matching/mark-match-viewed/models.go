// internal/workers/matching/mark-match-viewed/models.go
package markmatchviewed

import (
	"time"

	"matching-workers/internal/models"
)

type Input struct {
	MatchID string `json:"matchId"`
	UserID  string `json:"userId"`
}

type Output struct {
	MatchID  string             `json:"matchId"`
	Status   models.MatchStatus `json:"status"`
	ViewedAt *time.Time         `json:"viewedAt"`
}
