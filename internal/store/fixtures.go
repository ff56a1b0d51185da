// internal/store/fixtures.go
package store

import (
	"encoding/json"
	"fmt"
	"io"

	"matching-workers/internal/models"
)

// Fixtures is the JSON seed format accepted by LoadFixtures.
type Fixtures struct {
	Users     []*models.User            `json:"users"`
	Investors []*models.InvestorProfile `json:"investor_profiles"`
	Startups  []*models.StartupProfile  `json:"startup_profiles"`
	Matches   []*models.Match           `json:"matches"`
}

// LoadFixtures builds a MemoryStore from a Fixtures document. Every profile
// must belong to a listed user of the same type.
func LoadFixtures(r io.Reader) (*MemoryStore, error) {
	var f Fixtures
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	users := make(map[string]*models.User, len(f.Users))
	for _, u := range f.Users {
		if !u.UserType.Valid() {
			return nil, fmt.Errorf("user %s: invalid user type %q", u.ID, u.UserType)
		}
		users[u.ID] = u
	}

	s := NewMemoryStore()
	for _, u := range f.Users {
		s.AddUser(u)
	}
	for _, p := range f.Investors {
		u, ok := users[p.UserID]
		if !ok || u.UserType != models.UserTypeInvestor {
			return nil, fmt.Errorf("investor profile %s: no investor user %s", p.ID, p.UserID)
		}
		s.AddInvestor(u, p)
	}
	for _, p := range f.Startups {
		u, ok := users[p.UserID]
		if !ok || u.UserType != models.UserTypeStartup {
			return nil, fmt.Errorf("startup profile %s: no startup user %s", p.ID, p.UserID)
		}
		s.AddStartup(u, p)
	}
	for _, m := range f.Matches {
		s.AddMatch(m)
	}
	return s, nil
}
