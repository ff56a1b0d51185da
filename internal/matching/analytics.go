// internal/matching/analytics.go
package matching

import (
	"fmt"
	"sort"

	"matching-workers/internal/models"
)

type Overview struct {
	TotalMatches          int      `json:"total_matches"`
	PendingMatches        int      `json:"pending_matches"`
	ViewedMatches         int      `json:"viewed_matches"`
	InterestedMatches     int      `json:"interested_matches"`
	MutualMatches         int      `json:"mutual_matches"`
	InvestorInterestCount *int     `json:"investor_interest_count,omitempty"`
	AvgCompatibility      float64  `json:"avg_compatibility"`
	HighQualityMatches    int      `json:"high_quality_matches"`
	ResponseRate          float64  `json:"response_rate"`
	SuccessRate           *float64 `json:"success_rate,omitempty"`
	AttractionRate        *float64 `json:"attraction_rate,omitempty"`
}

type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

type Trends struct {
	ReasonBreakdown []ReasonCount `json:"reason_breakdown"`
}

type Insight struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

type Analytics struct {
	Overview Overview  `json:"overview"`
	Trends   Trends    `json:"trends"`
	Insights []Insight `json:"insights"`
}

type Stats struct {
	TotalMatches      int     `json:"total_matches"`
	PendingMatches    int     `json:"pending_matches"`
	InterestedMatches int     `json:"interested_matches"`
	MutualMatches     int     `json:"mutual_matches"`
	MatchRate         float64 `json:"match_rate"`
}

type Recommendation struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ActionURL string `json:"action_url"`
	Priority  string `json:"priority"`
	MatchID   string `json:"match_id,omitempty"`
}

const (
	highQualityScore        = 0.8
	recommendScore          = 0.7
	maxMatchRecommendations = 3
)

type tally struct {
	total, pending, viewed     int
	ownInterested, ownDeclined int
	mutual, investorInterested int
	highQuality                int
	scoreSum                   float64
}

func countMatches(userType models.UserType, matches []*models.Match) tally {
	var t tally
	for _, m := range matches {
		t.total++
		t.scoreSum += m.CompatibilityScore

		switch m.Status {
		case models.StatusPending:
			t.pending++
		case models.StatusViewed:
			t.viewed++
		}

		own := m.InvestorInterest
		if userType == models.UserTypeStartup {
			own = m.StartupInterest
		}
		switch models.InterestOf(own) {
		case models.InterestInterested:
			t.ownInterested++
		case models.InterestNotInterested:
			t.ownDeclined++
		}

		if models.InterestOf(m.InvestorInterest) == models.InterestInterested {
			t.investorInterested++
		}
		if m.IsMutualMatch() {
			t.mutual++
		}
		if m.CompatibilityScore >= highQualityScore {
			t.highQuality++
		}
	}
	return t
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// ComputeAnalytics summarizes every match of one user from that user's side.
func ComputeAnalytics(userType models.UserType, matches []*models.Match) Analytics {
	t := countMatches(userType, matches)

	avg := 0.0
	if t.total > 0 {
		avg = t.scoreSum / float64(t.total)
	}

	overview := Overview{
		TotalMatches:       t.total,
		PendingMatches:     t.pending,
		ViewedMatches:      t.viewed,
		InterestedMatches:  t.ownInterested,
		MutualMatches:      t.mutual,
		AvgCompatibility:   models.Round1(avg * 100),
		HighQualityMatches: t.highQuality,
		ResponseRate:       models.Round1(percent(t.ownInterested+t.ownDeclined, t.total)),
	}

	var insights []Insight
	if userType == models.UserTypeInvestor {
		success := percent(t.mutual, t.ownInterested)
		overview.SuccessRate = models.Float64(models.Round1(success))
		insights = investorInsights(t.total, success, avg)
	} else {
		attraction := percent(t.investorInterested, t.total)
		count := t.investorInterested
		overview.InvestorInterestCount = &count
		overview.AttractionRate = models.Float64(models.Round1(attraction))
		insights = startupInsights(t.total, t.mutual, attraction)
	}

	return Analytics{
		Overview: overview,
		Trends:   Trends{ReasonBreakdown: reasonBreakdown(matches)},
		Insights: insights,
	}
}

func investorInsights(total int, successRate, avgCompatibility float64) []Insight {
	insights := []Insight{}

	if total == 0 {
		insights = append(insights, Insight{
			Type:     "action_needed",
			Title:    "Complete Your Profile",
			Message:  "Complete your investor profile to start receiving startup matches.",
			Priority: "high",
		})
	} else if total < 5 {
		insights = append(insights, Insight{
			Type:     "info",
			Title:    "Building Your Match Pipeline",
			Message:  fmt.Sprintf("You have %d matches. More will be generated as startups join the platform.", total),
			Priority: "medium",
		})
	}

	if successRate > 50 {
		insights = append(insights, Insight{
			Type:     "positive",
			Title:    "High Success Rate",
			Message:  fmt.Sprintf("Your %.1f%% success rate is excellent! You're good at identifying promising opportunities.", successRate),
			Priority: "low",
		})
	} else if successRate < 20 && total > 10 {
		insights = append(insights, Insight{
			Type:     "suggestion",
			Title:    "Improve Match Success",
			Message:  "Consider broadening your criteria or engaging more actively with matches.",
			Priority: "medium",
		})
	}

	if avgCompatibility > 0.8 {
		insights = append(insights, Insight{
			Type:     "positive",
			Title:    "High-Quality Matches",
			Message:  fmt.Sprintf("Your average match compatibility of %.1f%% indicates very targeted matching.", avgCompatibility*100),
			Priority: "low",
		})
	}

	return insights
}

func startupInsights(total, mutual int, attractionRate float64) []Insight {
	insights := []Insight{}

	if total == 0 {
		insights = append(insights, Insight{
			Type:     "action_needed",
			Title:    "Complete Your Profile",
			Message:  "Complete your startup profile to start receiving investor matches.",
			Priority: "high",
		})
	}

	if attractionRate > 40 {
		insights = append(insights, Insight{
			Type:     "positive",
			Title:    "High Investor Interest",
			Message:  fmt.Sprintf("%.1f%% of investors are interested in your startup. Great traction!", attractionRate),
			Priority: "low",
		})
	} else if attractionRate < 15 && total > 10 {
		insights = append(insights, Insight{
			Type:     "suggestion",
			Title:    "Improve Investor Appeal",
			Message:  "Consider updating your pitch deck or highlighting key metrics to attract more investor interest.",
			Priority: "medium",
		})
	}

	if mutual > 3 {
		insights = append(insights, Insight{
			Type:     "positive",
			Title:    "Multiple Mutual Matches",
			Message:  fmt.Sprintf("You have %d mutual matches. Time to start conversations!", mutual),
			Priority: "high",
		})
	}

	return insights
}

// reasonBreakdown counts matches by their leading reason in first-seen order.
func reasonBreakdown(matches []*models.Match) []ReasonCount {
	out := []ReasonCount{}
	index := map[string]int{}
	for _, m := range matches {
		if len(m.MatchReasons) == 0 {
			continue
		}
		reason := m.MatchReasons[0]
		if i, ok := index[reason]; ok {
			out[i].Count++
			continue
		}
		index[reason] = len(out)
		out = append(out, ReasonCount{Reason: reason, Count: 1})
	}
	return out
}

func ComputeStats(userType models.UserType, matches []*models.Match) Stats {
	t := countMatches(userType, matches)
	return Stats{
		TotalMatches:      t.total,
		PendingMatches:    t.pending,
		InterestedMatches: t.ownInterested,
		MutualMatches:     t.mutual,
		MatchRate:         models.Round1(percent(t.mutual, t.total)),
	}
}

// BuildInvestorRecommendations points an investor at strong pending matches
// and at gaps in their profile. A nil profile yields no profile advice.
func BuildInvestorRecommendations(matches []*models.Match, profile *models.InvestorProfile) []Recommendation {
	recs := []Recommendation{}

	candidates := make([]*models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status == models.StatusPending && m.CompatibilityScore >= recommendScore {
			candidates = append(candidates, m)
		}
	}
	sortByScore(candidates)

	for i, m := range candidates {
		if i == maxMatchRecommendations {
			break
		}
		recs = append(recs, Recommendation{
			Type:      "review_match",
			Title:     "High-Quality Match Available",
			Message:   fmt.Sprintf("Review this %.1f%% compatibility match", m.CompatibilityPercentage()),
			ActionURL: "/matches/" + m.ID,
			Priority:  "high",
			MatchID:   m.ID,
		})
	}

	if profile == nil {
		return recs
	}
	if len(profile.PreferredIndustries) == 0 {
		recs = append(recs, profileAdvice("Specify Industry Preferences", "Add your preferred industries to get better matches", "/profile/investor"))
	}
	if len(profile.ExpertiseAreas) == 0 {
		recs = append(recs, profileAdvice("Add Your Expertise", "Highlight your expertise areas to attract relevant startups", "/profile/investor"))
	}
	return recs
}

// BuildStartupRecommendations points a startup at investors awaiting a reply.
// An unset startup interest counts as pending.
func BuildStartupRecommendations(matches []*models.Match, profile *models.StartupProfile) []Recommendation {
	recs := []Recommendation{}

	for _, m := range matches {
		if len(recs) == maxMatchRecommendations {
			break
		}
		own := models.InterestOf(m.StartupInterest)
		if models.InterestOf(m.InvestorInterest) != models.InterestInterested {
			continue
		}
		if own != "" && own != models.InterestPending {
			continue
		}
		recs = append(recs, Recommendation{
			Type:      "respond_to_interest",
			Title:     "Investor Interested in Your Startup",
			Message:   "An investor has shown interest - respond to move forward",
			ActionURL: "/matches/" + m.ID,
			Priority:  "high",
			MatchID:   m.ID,
		})
	}

	if profile == nil {
		return recs
	}
	if isZero(profile.MonthlyRevenue) && isZero(profile.CustomerCount) {
		recs = append(recs, profileAdvice("Add Traction Metrics", "Add revenue or customer metrics to strengthen your profile", "/profile/startup"))
	}
	if profile.FundUsagePlan == "" {
		recs = append(recs, profileAdvice("Detail Fund Usage", "Explain how you plan to use the funding to attract investors", "/profile/startup"))
	}
	return recs
}

func profileAdvice(title, message, url string) Recommendation {
	return Recommendation{
		Type:      "profile_improvement",
		Title:     title,
		Message:   message,
		ActionURL: url,
		Priority:  "medium",
	}
}

func isZero(v *int64) bool {
	return v == nil || *v == 0
}

// sortByScore orders matches by descending score, keeping input order on ties.
func sortByScore(matches []*models.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CompatibilityScore > matches[j].CompatibilityScore
	})
}
