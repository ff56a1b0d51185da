// internal/matching/insight.go
package matching

import (
	"fmt"
	"strings"

	"matching-workers/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const unspecified = "unspecified"

var amountPrinter = message.NewPrinter(language.English)

// BuildInsight explains a match from its two source profiles. Missing
// profile fields render as "unspecified" and never fail.
func BuildInsight(id string, m *models.Match, inv *models.InvestorProfile, st *models.StartupProfile, dataCompleteness float64) *models.MatchInsight {
	return &models.MatchInsight{
		ID:      id,
		MatchID: m.ID,
		OverallExplanation: fmt.Sprintf(
			"This match scores %.1f%% based on industry alignment, funding compatibility, and strategic fit.",
			m.CompatibilityPercentage(),
		),
		IndustryAnalysis:    industryAnalysis(inv, st),
		IndustryScore:       m.IndustryScore,
		FundingAnalysis:     fundingAnalysis(inv, st),
		FundingScore:        m.FundingScore,
		GeographicAnalysis:  geographicAnalysis(st),
		GeographicScore:     m.GeographicScore,
		AlgorithmConfidence: m.CompatibilityScore,
		DataCompleteness:    dataCompleteness,
		InsightQuality:      models.InsightQualityBase,
	}
}

func industryAnalysis(inv *models.InvestorProfile, st *models.StartupProfile) string {
	industries := inv.PreferredIndustries
	if len(industries) > 3 {
		industries = industries[:3]
	}
	focus := strings.Join(industries, ", ")
	if focus == "" {
		focus = unspecified
	}
	return fmt.Sprintf("The investor focuses on %s while the startup operates in %s.", focus, orUnspecified(st.Industry))
}

func fundingAnalysis(inv *models.InvestorProfile, st *models.StartupProfile) string {
	return fmt.Sprintf(
		"The startup seeks %s which fits within the investor's %s-%s range.",
		formatAmount(st.FundingNeeded),
		formatAmount(inv.MinInvestment),
		formatAmount(inv.MaxInvestment),
	)
}

func geographicAnalysis(st *models.StartupProfile) string {
	return fmt.Sprintf("Geographic alignment between investor preferences and startup location in %s.", orUnspecified(st.Headquarters))
}

// formatAmount renders a dollar amount with thousands separators; nil is $0.
func formatAmount(v *int64) string {
	var n int64
	if v != nil {
		n = *v
	}
	return amountPrinter.Sprintf("$%d", n)
}

func orUnspecified(s *string) string {
	if v := deref(s); v != "" {
		return v
	}
	return unspecified
}
