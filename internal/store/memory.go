// internal/store/memory.go
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/matching"
	"matching-workers/internal/models"
)

// MemoryStore keeps profiles and matches in process. It backs local runs of
// matchctl and the worker tests.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]*models.User
	investors []*models.InvestorProfile
	startups  []*models.StartupProfile
	matches   []*models.Match
	insights  map[string]*models.MatchInsight
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    map[string]*models.User{},
		insights: map[string]*models.MatchInsight{},
	}
}

func (s *MemoryStore) AddUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *MemoryStore) AddInvestor(u *models.User, p *models.InvestorProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.investors = append(s.investors, p)
}

func (s *MemoryStore) AddStartup(u *models.User, p *models.StartupProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.startups = append(s.startups, p)
}

// AddMatch seeds a match without an insight.
func (s *MemoryStore) AddMatch(m *models.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.matches = append(s.matches, &cp)
}

// Matches returns copies of every stored match in insertion order.
func (s *MemoryStore) Matches() []*models.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Match, 0, len(s.matches))
	for _, m := range s.matches {
		cp := *m
		out = append(out, &cp)
	}
	return out
}

func (s *MemoryStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetInvestorProfile(_ context.Context, userID string) (*models.InvestorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.investors {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetStartupProfile(_ context.Context, userID string) (*models.StartupProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.startups {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListInvestorProfiles(_ context.Context) ([]*models.InvestorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.InvestorProfile, 0, len(s.investors))
	for _, p := range s.investors {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemoryStore) ListStartupProfiles(_ context.Context) ([]*models.StartupProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.StartupProfile, 0, len(s.startups))
	for _, p := range s.startups {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemoryStore) ExistingCounterparts(_ context.Context, userID string, userType models.UserType) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]bool{}
	for _, m := range s.matches {
		switch {
		case userType == models.UserTypeInvestor && m.InvestorID == userID:
			out[m.StartupID] = true
		case userType == models.UserTypeStartup && m.StartupID == userID:
			out[m.InvestorID] = true
		}
	}
	return out, nil
}

func (s *MemoryStore) CountRecentMatches(_ context.Context, userID string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, m := range s.matches {
		if (m.InvestorID == userID || m.StartupID == userID) && !m.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CreateMatchWithInsight(_ context.Context, m *models.Match, insight *models.MatchInsight) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.matches {
		if existing.InvestorID == m.InvestorID && existing.StartupID == m.StartupID {
			return false, nil
		}
	}
	cp := *m
	s.matches = append(s.matches, &cp)
	if insight != nil {
		ins := *insight
		s.insights[m.ID] = &ins
	}
	return true, nil
}

func (s *MemoryStore) GetMatch(_ context.Context, matchID string) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.matches {
		if m.ID == matchID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListMatches(ctx context.Context, filter matching.MatchFilter) ([]*models.Match, error) {
	all, err := s.ListAllMatches(ctx, filter.UserID, filter.UserType)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Match, 0, len(all))
	for _, m := range all {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		out = append(out, m)
	}

	if filter.Offset >= len(out) {
		return []*models.Match{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// ListAllMatches orders by score, then newest first, like the SQL store.
func (s *MemoryStore) ListAllMatches(_ context.Context, userID string, userType models.UserType) ([]*models.Match, error) {
	s.mu.RLock()
	out := make([]*models.Match, 0)
	for _, m := range s.matches {
		if (userType == models.UserTypeInvestor && m.InvestorID == userID) ||
			(userType == models.UserTypeStartup && m.StartupID == userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CompatibilityScore != out[j].CompatibilityScore {
			return out[i].CompatibilityScore > out[j].CompatibilityScore
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpdateMatchState(_ context.Context, m *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.matches {
		if existing.ID == m.ID {
			cp := *m
			s.matches[i] = &cp
			return nil
		}
	}
	return apperrors.NewNotFoundError("match", m.ID)
}

func (s *MemoryStore) GetInsight(_ context.Context, matchID string) (*models.MatchInsight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ins, ok := s.insights[matchID]
	if !ok {
		return nil, nil
	}
	cp := *ins
	return &cp, nil
}

var (
	_ matching.ProfileStore = (*MemoryStore)(nil)
	_ matching.MatchStore   = (*MemoryStore)(nil)
)
