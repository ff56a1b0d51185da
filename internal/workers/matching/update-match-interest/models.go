// internal/workers/matching/update-match-interest/models.go
package updatematchinterest

import "matching-workers/internal/models"

type Input struct {
	MatchID  string `json:"matchId"`
	UserID   string `json:"userId"`
	Interest string `json:"interest"`
}

type Output struct {
	Match         *models.Match      `json:"match"`
	Status        models.MatchStatus `json:"status"`
	IsMutualMatch bool               `json:"isMutualMatch"`
	CounterpartID string             `json:"counterpartId"`
}
