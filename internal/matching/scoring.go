// internal/matching/scoring.go

// Package matching scores investor/startup pairs, generates and persists
// matches, drives their interest lifecycle and aggregates analytics.
package matching

import (
	"math"
	"strings"

	"matching-workers/internal/models"
)

// Industry buckets used when there is no exact industry match. Investor
// industries are compared as stored, the startup industry lowercased.
var industryBuckets = [][]string{
	{"technology", "software", "ai", "fintech", "edtech"},
	{"healthcare", "biotech", "medtech", "pharma"},
}

// usRegions is the broad region both sides must fall into for a 0.8
// geographic score.
var usRegions = []string{"california", "new york", "texas", "florida", "washington"}

// stageOrder is the funding stage vocabulary used for distance scoring.
var stageOrder = []string{"pre_seed", "seed", "series_a", "series_b", "series_c"}

var marketSizeScores = map[string]float64{
	"small":      0.4,
	"medium":     0.7,
	"large":      0.9,
	"very_large": 1.0,
}

// IndustryScore rates how well the startup's industry fits the investor's
// preferred industries.
func IndustryScore(inv *models.InvestorProfile, st *models.StartupProfile) float64 {
	industry := deref(st.Industry)
	if len(inv.PreferredIndustries) == 0 || industry == "" {
		return 0.5
	}

	if contains(inv.PreferredIndustries, industry) {
		return 1.0
	}

	lowered := strings.ToLower(industry)
	for _, bucket := range industryBuckets {
		if containsAny(bucket, inv.PreferredIndustries) && contains(bucket, lowered) {
			return 0.7
		}
	}

	return 0.2
}

// FundingScore compares the startup's funding need with the investor's
// ticket range. A zero or unset maximum is unbounded.
func FundingScore(inv *models.InvestorProfile, st *models.StartupProfile) float64 {
	if st.FundingNeeded == nil || *st.FundingNeeded == 0 {
		return 0.5
	}

	need := float64(*st.FundingNeeded)
	lo := 0.0
	if inv.MinInvestment != nil {
		lo = float64(*inv.MinInvestment)
	}
	hi := math.Inf(1)
	if inv.MaxInvestment != nil && *inv.MaxInvestment != 0 {
		hi = float64(*inv.MaxInvestment)
	}

	switch {
	case need >= lo && need <= hi:
		return 1.0
	case need < lo:
		if need >= lo*0.5 {
			return 0.7
		}
		return 0.3
	default:
		if need <= hi*1.5 {
			return 0.6
		}
		return 0.2
	}
}

func GeographicScore(inv *models.InvestorProfile, st *models.StartupProfile) float64 {
	hq := deref(st.Headquarters)
	if len(inv.GeographicPreference) == 0 || hq == "" {
		return 0.7
	}

	if contains(inv.GeographicPreference, hq) {
		return 1.0
	}

	investorInRegion := false
	for _, loc := range inv.GeographicPreference {
		if contains(usRegions, strings.ToLower(loc)) {
			investorInRegion = true
			break
		}
	}
	if investorInRegion && contains(usRegions, strings.ToLower(hq)) {
		return 0.8
	}

	return 0.5
}

// StageScore rates the startup's funding stage against the investor's
// target stages by distance in stageOrder.
func StageScore(inv *models.InvestorProfile, st *models.StartupProfile) float64 {
	stage := deref(st.FundingStage)
	if len(inv.InvestmentStage) == 0 || stage == "" {
		return 0.6
	}

	if contains(inv.InvestmentStage, stage) {
		return 1.0
	}

	startupIdx := indexOf(stageOrder, stage)
	if startupIdx < 0 {
		return 0.4
	}

	minDiff := -1
	for _, s := range inv.InvestmentStage {
		idx := indexOf(stageOrder, s)
		if idx < 0 {
			continue
		}
		diff := startupIdx - idx
		if diff < 0 {
			diff = -diff
		}
		if minDiff < 0 || diff < minDiff {
			minDiff = diff
		}
	}

	switch {
	case minDiff < 0:
		return 0.4
	case minDiff <= 1:
		return 0.8
	case minDiff <= 2:
		return 0.5
	default:
		return 0.2
	}
}

func MarketSizeScore(_ *models.InvestorProfile, st *models.StartupProfile) float64 {
	size := deref(st.MarketSize)
	if size == "" {
		return 0.6
	}
	if score, ok := marketSizeScores[size]; ok {
		return score
	}
	return 0.5
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func contains(list []string, v string) bool {
	return indexOf(list, v) >= 0
}

func containsAny(list, candidates []string) bool {
	for _, c := range candidates {
		if contains(list, c) {
			return true
		}
	}
	return false
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
