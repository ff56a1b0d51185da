// internal/workers/matching/match-analytics/models.go
package matchanalytics

import "matching-workers/internal/matching"

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	Analytics *matching.Analytics `json:"analytics"`
	Stats     *matching.Stats     `json:"stats"`
}
