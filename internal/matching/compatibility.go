// internal/matching/compatibility.go
package matching

import (
	"math"

	"matching-workers/internal/models"
)

// Dimension weights. They sum to 1.0.
const (
	WeightIndustry   = 0.30
	WeightFunding    = 0.25
	WeightGeographic = 0.15
	WeightStage      = 0.20
	WeightMarketSize = 0.10
)

// QualifyingScore is the exclusive lower bound a pair must beat to be persisted.
const QualifyingScore = 0.3

const fallbackReason = "Potential synergies identified"

// Compatibility is the aggregated score of one investor/startup pair.
type Compatibility struct {
	OverallScore    float64                `json:"overall_score"`
	IndustryScore   float64                `json:"industry_score"`
	FundingScore    float64                `json:"funding_score"`
	GeographicScore float64                `json:"geographic_score"`
	StageScore      float64                `json:"stage_score"`
	MarketSizeScore float64                `json:"market_size_score"`
	Confidence      models.ConfidenceLevel `json:"confidence_level"`
	Reasons         []string               `json:"match_reasons"`
}

func (c Compatibility) Qualifies() bool {
	return c.OverallScore > QualifyingScore
}

// Calculate scores a pair on all five dimensions and aggregates them.
func Calculate(inv *models.InvestorProfile, st *models.StartupProfile) Compatibility {
	c := Compatibility{
		IndustryScore:   IndustryScore(inv, st),
		FundingScore:    FundingScore(inv, st),
		GeographicScore: GeographicScore(inv, st),
		StageScore:      StageScore(inv, st),
		MarketSizeScore: MarketSizeScore(inv, st),
	}

	sum := c.IndustryScore*WeightIndustry +
		c.FundingScore*WeightFunding +
		c.GeographicScore*WeightGeographic +
		c.StageScore*WeightStage +
		c.MarketSizeScore*WeightMarketSize
	// Float rounding puts an all-perfect pair a few ulps above 1.
	c.OverallScore = math.Min(1, math.Max(0, sum))

	c.Confidence = ConfidenceFor(c.OverallScore)
	c.Reasons = reasonsFor(c)
	return c
}

func ConfidenceFor(score float64) models.ConfidenceLevel {
	switch {
	case score >= 0.8:
		return models.ConfidenceHigh
	case score >= 0.6:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// reasonsFor emits reasons in dimension order: industry, funding, geographic,
// stage, market size.
func reasonsFor(c Compatibility) []string {
	var reasons []string

	switch {
	case c.IndustryScore >= 0.8:
		reasons = append(reasons, "Strong industry alignment")
	case c.IndustryScore >= 0.6:
		reasons = append(reasons, "Good industry fit")
	}

	switch {
	case c.FundingScore >= 0.8:
		reasons = append(reasons, "Perfect funding match")
	case c.FundingScore >= 0.6:
		reasons = append(reasons, "Compatible funding requirements")
	}

	if c.GeographicScore >= 0.8 {
		reasons = append(reasons, "Same geographic region")
	}
	if c.StageScore >= 0.8 {
		reasons = append(reasons, "Ideal investment stage")
	}
	if c.MarketSizeScore >= 0.8 {
		reasons = append(reasons, "Large market opportunity")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, fallbackReason)
	}
	return reasons
}

// NewMatch builds an unsaved pending match from a compatibility result. The
// stage score lands in ExperienceScore.
func NewMatch(id, investorID, startupID string, c Compatibility) *models.Match {
	return &models.Match{
		ID:                 id,
		InvestorID:         investorID,
		StartupID:          startupID,
		CompatibilityScore: c.OverallScore,
		ConfidenceLevel:    c.Confidence,
		Status:             models.StatusPending,
		MatchReasons:       c.Reasons,
		RiskFactors:        []string{},
		IndustryScore:      models.Float64(c.IndustryScore),
		FundingScore:       models.Float64(c.FundingScore),
		GeographicScore:    models.Float64(c.GeographicScore),
		ExperienceScore:    models.Float64(c.StageScore),
		MarketSizeScore:    models.Float64(c.MarketSizeScore),
		AlgorithmVersion:   models.AlgorithmVersion,
		GeneratedBy:        models.GeneratedByAuto,
	}
}
