// internal/matching/scoring_test.go
package matching

import (
	"testing"

	"matching-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func investor(mutate func(p *models.InvestorProfile)) *models.InvestorProfile {
	p := &models.InvestorProfile{
		ID:                   "inv-profile-1",
		UserID:               "inv-1",
		Name:                 "Dana Investor",
		MinInvestment:        models.Int64(100000),
		MaxInvestment:        models.Int64(1000000),
		PreferredIndustries:  []string{"fintech"},
		InvestmentStage:      []string{"seed"},
		GeographicPreference: []string{"california"},
		ExpertiseAreas:       []string{"payments"},
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func startup(mutate func(p *models.StartupProfile)) *models.StartupProfile {
	p := &models.StartupProfile{
		ID:            "st-profile-1",
		UserID:        "st-1",
		CompanyName:   "Ledgerly",
		Industry:      models.String("fintech"),
		FundingNeeded: models.Int64(500000),
		FundingStage:  models.String("seed"),
		Headquarters:  models.String("california"),
		MarketSize:    models.String("large"),
		FundUsagePlan: "Hiring",
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

// ==========================
// Industry
// ==========================

func TestIndustryScore(t *testing.T) {
	tests := []struct {
		name       string
		industries []string
		industry   *string
		want       float64
	}{
		{"no preferences", nil, models.String("fintech"), 0.5},
		{"no startup industry", []string{"fintech"}, nil, 0.5},
		{"empty startup industry", []string{"fintech"}, models.String(""), 0.5},
		{"exact match", []string{"healthcare", "fintech"}, models.String("fintech"), 1.0},
		{"exact match is case sensitive", []string{"fintech"}, models.String("FinTech"), 0.7},
		{"same technology bucket", []string{"software"}, models.String("AI"), 0.7},
		{"same healthcare bucket", []string{"biotech"}, models.String("pharma"), 0.7},
		{"investor side not lowercased", []string{"Software"}, models.String("ai"), 0.2},
		{"different buckets", []string{"software"}, models.String("medtech"), 0.2},
		{"no bucket", []string{"retail"}, models.String("food"), 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := investor(func(p *models.InvestorProfile) { p.PreferredIndustries = tt.industries })
			st := startup(func(p *models.StartupProfile) { p.Industry = tt.industry })
			assert.Equal(t, tt.want, IndustryScore(inv, st))
		})
	}
}

// ==========================
// Funding
// ==========================

func TestFundingScore(t *testing.T) {
	tests := []struct {
		name     string
		need     *int64
		min, max *int64
		want     float64
	}{
		{"no need", nil, models.Int64(100000), models.Int64(1000000), 0.5},
		{"zero need", models.Int64(0), models.Int64(100000), models.Int64(1000000), 0.5},
		{"inside range", models.Int64(500000), models.Int64(100000), models.Int64(1000000), 1.0},
		{"at lower bound", models.Int64(100000), models.Int64(100000), models.Int64(1000000), 1.0},
		{"at upper bound", models.Int64(1000000), models.Int64(100000), models.Int64(1000000), 1.0},
		{"slightly below", models.Int64(60000), models.Int64(100000), models.Int64(1000000), 0.7},
		{"half of minimum", models.Int64(50000), models.Int64(100000), models.Int64(1000000), 0.7},
		{"far below", models.Int64(40000), models.Int64(100000), models.Int64(1000000), 0.3},
		{"slightly above", models.Int64(1200000), models.Int64(100000), models.Int64(1000000), 0.6},
		{"one and a half of maximum", models.Int64(1500000), models.Int64(100000), models.Int64(1000000), 0.6},
		{"far above", models.Int64(2000000), models.Int64(100000), models.Int64(1000000), 0.2},
		{"no maximum", models.Int64(90000000), models.Int64(100000), nil, 1.0},
		{"zero maximum is unbounded", models.Int64(90000000), models.Int64(100000), models.Int64(0), 1.0},
		{"no minimum", models.Int64(1), nil, models.Int64(1000000), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := investor(func(p *models.InvestorProfile) {
				p.MinInvestment = tt.min
				p.MaxInvestment = tt.max
			})
			st := startup(func(p *models.StartupProfile) { p.FundingNeeded = tt.need })
			assert.Equal(t, tt.want, FundingScore(inv, st))
		})
	}
}

// ==========================
// Geographic
// ==========================

func TestGeographicScore(t *testing.T) {
	tests := []struct {
		name  string
		prefs []string
		hq    *string
		want  float64
	}{
		{"no preferences", nil, models.String("texas"), 0.7},
		{"no headquarters", []string{"texas"}, nil, 0.7},
		{"exact", []string{"london", "texas"}, models.String("texas"), 1.0},
		{"both in us regions", []string{"California"}, models.String("New York"), 0.8},
		{"investor outside us regions", []string{"london"}, models.String("texas"), 0.5},
		{"startup outside us regions", []string{"texas"}, models.String("berlin"), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := investor(func(p *models.InvestorProfile) { p.GeographicPreference = tt.prefs })
			st := startup(func(p *models.StartupProfile) { p.Headquarters = tt.hq })
			assert.Equal(t, tt.want, GeographicScore(inv, st))
		})
	}
}

// ==========================
// Stage
// ==========================

func TestStageScore(t *testing.T) {
	tests := []struct {
		name   string
		stages []string
		stage  *string
		want   float64
	}{
		{"no investor stages", nil, models.String("seed"), 0.6},
		{"no startup stage", []string{"seed"}, nil, 0.6},
		{"exact", []string{"seed", "series_a"}, models.String("series_a"), 1.0},
		{"adjacent", []string{"seed"}, models.String("series_a"), 0.8},
		{"two apart", []string{"seed"}, models.String("series_b"), 0.5},
		{"three apart", []string{"seed"}, models.String("series_c"), 0.2},
		{"closest stage wins", []string{"pre_seed", "series_b"}, models.String("series_c"), 0.8},
		{"unknown startup stage", []string{"seed"}, models.String("growth"), 0.4},
		{"unknown investor stages", []string{"growth"}, models.String("seed"), 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := investor(func(p *models.InvestorProfile) { p.InvestmentStage = tt.stages })
			st := startup(func(p *models.StartupProfile) { p.FundingStage = tt.stage })
			assert.Equal(t, tt.want, StageScore(inv, st))
		})
	}
}

// ==========================
// Market Size
// ==========================

func TestMarketSizeScore(t *testing.T) {
	tests := []struct {
		size *string
		want float64
	}{
		{nil, 0.6},
		{models.String(""), 0.6},
		{models.String("small"), 0.4},
		{models.String("medium"), 0.7},
		{models.String("large"), 0.9},
		{models.String("very_large"), 1.0},
		{models.String("enormous"), 0.5},
	}

	for _, tt := range tests {
		st := startup(func(p *models.StartupProfile) { p.MarketSize = tt.size })
		assert.Equal(t, tt.want, MarketSizeScore(nil, st), "size %v", deref(tt.size))
	}
}

func BenchmarkCalculate(b *testing.B) {
	inv := investor(func(p *models.InvestorProfile) {
		p.PreferredIndustries = []string{"software", "edtech", "biotech"}
		p.InvestmentStage = []string{"pre_seed", "series_b"}
	})
	st := startup(func(p *models.StartupProfile) {
		p.Industry = models.String("AI")
		p.FundingStage = models.String("series_a")
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Calculate(inv, st)
	}
}
