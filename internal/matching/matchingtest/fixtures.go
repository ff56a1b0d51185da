// internal/matching/matchingtest/fixtures.go

// Package matchingtest provides a seeded in-memory marketplace for tests of
// the engine and the workers built on it.
package matchingtest

import (
	"fmt"
	"testing"
	"time"

	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"
	"matching-workers/internal/models"
	"matching-workers/internal/store"
)

// Now is the fixed clock of engines built by NewEngine.
var Now = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

// User ids seeded by Seed. Against InvestorID the startups score 0.99
// (IdealStartupID), 0.735 (GoodStartupID) and 0.265 (PoorStartupID).
const (
	InvestorID     = "inv-1"
	IdealStartupID = "st-ideal"
	GoodStartupID  = "st-good"
	PoorStartupID  = "st-poor"
)

// SequentialIDs returns a generator yielding id-001, id-002 and so on.
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

// NewEngine builds an engine over a freshly seeded MemoryStore with a fixed
// clock and sequential ids.
func NewEngine(t testing.TB, opts ...matching.Option) (*matching.Engine, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	Seed(s)
	return NewEngineOver(t, s, s, opts...), s
}

func NewEngineOver(t testing.TB, profiles matching.ProfileStore, matches matching.MatchStore, opts ...matching.Option) *matching.Engine {
	t.Helper()
	opts = append([]matching.Option{
		matching.WithClock(func() time.Time { return Now }),
		matching.WithIDGenerator(SequentialIDs()),
	}, opts...)
	return matching.NewEngine(profiles, matches, matching.DefaultConfig(), logger.NewTestLogger(t), opts...)
}

// Seed stores one investor and three startups.
func Seed(s *store.MemoryStore) {
	s.AddInvestor(
		&models.User{ID: InvestorID, UserType: models.UserTypeInvestor, Email: "dana@fund.test", Phone: "+15550100", FirstName: "Dana"},
		&models.InvestorProfile{
			UserID:               InvestorID,
			Name:                 "Dana",
			MinInvestment:        models.Int64(100000),
			MaxInvestment:        models.Int64(1000000),
			PreferredIndustries:  []string{"fintech", "software"},
			InvestmentStage:      []string{"seed"},
			GeographicPreference: []string{"california"},
			ExpertiseAreas:       []string{"payments"},
		},
	)

	s.AddStartup(
		&models.User{ID: PoorStartupID, UserType: models.UserTypeStartup, Email: "hi@shoebox.test"},
		&models.StartupProfile{
			UserID:        PoorStartupID,
			CompanyName:   "Shoebox",
			Industry:      models.String("retail"),
			FundingNeeded: models.Int64(10000000),
			FundingStage:  models.String("series_c"),
			Headquarters:  models.String("paris"),
			MarketSize:    models.String("small"),
		},
	)
	s.AddStartup(
		&models.User{ID: GoodStartupID, UserType: models.UserTypeStartup, Email: "team@modelworks.test"},
		&models.StartupProfile{
			UserID:        GoodStartupID,
			CompanyName:   "Modelworks",
			Industry:      models.String("ai"),
			FundingNeeded: models.Int64(60000),
			FundingStage:  models.String("series_a"),
			Headquarters:  models.String("texas"),
			MarketSize:    models.String("medium"),
		},
	)
	s.AddStartup(
		&models.User{ID: IdealStartupID, UserType: models.UserTypeStartup, Email: "founders@ledgerly.test", Phone: "+15550199", FirstName: "Ada"},
		&models.StartupProfile{
			UserID:        IdealStartupID,
			CompanyName:   "Ledgerly",
			Industry:      models.String("fintech"),
			FundingNeeded: models.Int64(500000),
			FundingStage:  models.String("seed"),
			Headquarters:  models.String("california"),
			MarketSize:    models.String("large"),
		},
	)
}
