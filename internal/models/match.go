// internal/models/match.go
package models

import (
	"encoding/json"
	"math"
	"time"
)

type MatchStatus string

const (
	StatusPending    MatchStatus = "pending"
	StatusViewed     MatchStatus = "viewed"
	StatusInterested MatchStatus = "interested"
	StatusPassed     MatchStatus = "passed"
	StatusMatched    MatchStatus = "matched"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case StatusPending, StatusViewed, StatusInterested, StatusPassed, StatusMatched:
		return true
	}
	return false
}

type Interest string

const (
	InterestInterested    Interest = "interested"
	InterestNotInterested Interest = "not_interested"
	InterestPending       Interest = "pending"
)

func (i Interest) Valid() bool {
	return i == InterestInterested || i == InterestNotInterested || i == InterestPending
}

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

const (
	AlgorithmVersion   = "1.0"
	GeneratedByAuto    = "auto"
	InsightQualityBase = "medium"
)

// Match links one investor user and one startup user. At most one exists per
// (InvestorID, StartupID) pair.
type Match struct {
	ID                 string          `json:"id"`
	InvestorID         string          `json:"investor_id"`
	StartupID          string          `json:"startup_id"`
	CompatibilityScore float64         `json:"compatibility_score"`
	ConfidenceLevel    ConfidenceLevel `json:"confidence_level"`
	Status             MatchStatus     `json:"status"`
	InvestorInterest   *Interest       `json:"investor_interest"`
	StartupInterest    *Interest       `json:"startup_interest"`
	MatchReasons       []string        `json:"match_reasons"`
	RiskFactors        []string        `json:"risk_factors"`
	IndustryScore      *float64        `json:"industry_match_score"`
	FundingScore       *float64        `json:"funding_stage_score"`
	GeographicScore    *float64        `json:"geographic_score"`
	ExperienceScore    *float64        `json:"experience_score"`
	MarketSizeScore    *float64        `json:"market_size_score"`
	InvestorViewedAt   *time.Time      `json:"investor_viewed_at"`
	StartupViewedAt    *time.Time      `json:"startup_viewed_at"`
	LastInteractionAt  *time.Time      `json:"last_interaction_at"`
	AlgorithmVersion   string          `json:"algorithm_version"`
	GeneratedBy        string          `json:"generated_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// CompatibilityPercentage is the score as a percentage rounded to one decimal.
func (m *Match) CompatibilityPercentage() float64 {
	return Round1(m.CompatibilityScore * 100)
}

func (m *Match) IsMutualMatch() bool {
	return interestIs(m.InvestorInterest, InterestInterested) && interestIs(m.StartupInterest, InterestInterested)
}

// CounterpartOf returns the other party's user id, or "" if userID is not party.
func (m *Match) CounterpartOf(userID string) string {
	switch userID {
	case m.InvestorID:
		return m.StartupID
	case m.StartupID:
		return m.InvestorID
	}
	return ""
}

func (m Match) MarshalJSON() ([]byte, error) {
	type plain Match
	return json.Marshal(struct {
		plain
		CompatibilityPercentage float64 `json:"compatibility_percentage"`
		IsMutualMatch           bool    `json:"is_mutual_match"`
	}{
		plain:                   plain(m),
		CompatibilityPercentage: m.CompatibilityPercentage(),
		IsMutualMatch:           m.IsMutualMatch(),
	})
}

// MatchInsight is written once, right after its Match.
type MatchInsight struct {
	ID                  string    `json:"id"`
	MatchID             string    `json:"match_id"`
	OverallExplanation  string    `json:"overall_explanation"`
	IndustryAnalysis    string    `json:"industry_analysis"`
	IndustryScore       *float64  `json:"industry_score"`
	FundingAnalysis     string    `json:"funding_analysis"`
	FundingScore        *float64  `json:"funding_score"`
	GeographicAnalysis  string    `json:"geographic_analysis"`
	GeographicScore     *float64  `json:"geographic_score"`
	AlgorithmConfidence float64   `json:"algorithm_confidence"`
	DataCompleteness    float64   `json:"data_completeness"`
	InsightQuality      string    `json:"insight_quality"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// MatchView is a match as listed for one of its parties.
type MatchView struct {
	Match          *Match          `json:"match"`
	PartnerProfile *PartnerProfile `json:"partner_profile,omitempty"`
}

// MatchDetails adds the insight to a MatchView.
type MatchDetails struct {
	Match          *Match          `json:"match"`
	PartnerProfile *PartnerProfile `json:"partner_profile,omitempty"`
	Insight        *MatchInsight   `json:"insight,omitempty"`
}

func interestIs(i *Interest, want Interest) bool {
	return i != nil && *i == want
}

// InterestOf dereferences an optional interest, "" when unset.
func InterestOf(i *Interest) Interest {
	if i == nil {
		return ""
	}
	return *i
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Float64(f float64) *float64 { return &f }
