// internal/models/profile.go
package models

import "time"

// InvestorProfile is read-only to the matching engine. Investment bounds are
// optional: an unset minimum means 0 and an unset maximum means unbounded.
type InvestorProfile struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	Name                 string    `json:"name"`
	Title                string    `json:"title,omitempty"`
	Company              string    `json:"company,omitempty"`
	Bio                  string    `json:"bio,omitempty"`
	Location             string    `json:"location,omitempty"`
	MinInvestment        *int64    `json:"min_investment"`
	MaxInvestment        *int64    `json:"max_investment"`
	PreferredIndustries  []string  `json:"preferred_industries"`
	InvestmentStage      []string  `json:"investment_stage"`
	GeographicPreference []string  `json:"geographic_preference"`
	ExpertiseAreas       []string  `json:"expertise_areas"`
	RiskTolerance        string    `json:"risk_tolerance,omitempty"`
	YearsExperience      int       `json:"years_experience,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// StartupProfile is read-only to the matching engine. Pointer fields are
// absent when nil.
type StartupProfile struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	CompanyName    string    `json:"company_name"`
	Tagline        string    `json:"tagline,omitempty"`
	Industry       *string   `json:"industry"`
	CompanyStage   string    `json:"company_stage,omitempty"`
	FundingNeeded  *int64    `json:"funding_needed"`
	FundingStage   *string   `json:"funding_stage"`
	Headquarters   *string   `json:"headquarters"`
	MarketSize     *string   `json:"market_size"`
	MonthlyRevenue *int64    `json:"monthly_revenue,omitempty"`
	CustomerCount  *int64    `json:"customer_count,omitempty"`
	FundUsagePlan  string    `json:"fund_usage_plan,omitempty"`
	LogoURL        string    `json:"logo_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InvestorSummary is what a startup sees about its counterpart.
type InvestorSummary struct {
	UserID              string   `json:"user_id"`
	Name                string   `json:"name"`
	Title               string   `json:"title,omitempty"`
	Company             string   `json:"company,omitempty"`
	Bio                 string   `json:"bio,omitempty"`
	Location            string   `json:"location,omitempty"`
	PreferredIndustries []string `json:"preferred_industries"`
	MinInvestment       *int64   `json:"min_investment"`
	MaxInvestment       *int64   `json:"max_investment"`
}

// StartupSummary is what an investor sees about its counterpart.
type StartupSummary struct {
	UserID        string  `json:"user_id"`
	CompanyName   string  `json:"company_name"`
	Tagline       string  `json:"tagline,omitempty"`
	Industry      *string `json:"industry"`
	CompanyStage  string  `json:"company_stage,omitempty"`
	FundingNeeded *int64  `json:"funding_needed"`
	FundingStage  *string `json:"funding_stage"`
	Headquarters  *string `json:"headquarters"`
	LogoURL       string  `json:"logo_url,omitempty"`
}

func (p *InvestorProfile) Summary() *InvestorSummary {
	return &InvestorSummary{
		UserID:              p.UserID,
		Name:                p.Name,
		Title:               p.Title,
		Company:             p.Company,
		Bio:                 p.Bio,
		Location:            p.Location,
		PreferredIndustries: p.PreferredIndustries,
		MinInvestment:       p.MinInvestment,
		MaxInvestment:       p.MaxInvestment,
	}
}

func (p *StartupProfile) Summary() *StartupSummary {
	return &StartupSummary{
		UserID:        p.UserID,
		CompanyName:   p.CompanyName,
		Tagline:       p.Tagline,
		Industry:      p.Industry,
		CompanyStage:  p.CompanyStage,
		FundingNeeded: p.FundingNeeded,
		FundingStage:  p.FundingStage,
		Headquarters:  p.Headquarters,
		LogoURL:       p.LogoURL,
	}
}

// PartnerProfile carries exactly one of the two summaries.
type PartnerProfile struct {
	Investor *InvestorSummary `json:"investor,omitempty"`
	Startup  *StartupSummary  `json:"startup,omitempty"`
}

// String and Int64 build optional profile fields.
func String(s string) *string { return &s }

func Int64(n int64) *int64 { return &n }
