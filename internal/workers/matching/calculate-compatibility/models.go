// internal/workers/matching/calculate-compatibility/models.go
package calculatecompatibility

import "matching-workers/internal/matching"

type Input struct {
	InvestorID string `json:"investorId"`
	StartupID  string `json:"startupId"`
}

type Output struct {
	Compatibility           *matching.Compatibility `json:"compatibility"`
	CompatibilityPercentage float64                 `json:"compatibilityPercentage"`
	Qualifies               bool                    `json:"qualifies"`
}
