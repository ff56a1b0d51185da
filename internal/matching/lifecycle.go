// internal/matching/lifecycle.go
package matching

import (
	"time"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/models"
)

// Role is the side a user acts on within one match.
type Role string

const (
	RoleInvestor Role = "investor"
	RoleStartup  Role = "startup"
)

// RoleIn resolves which side of m userID is on. A user who is neither side
// gets UNAUTHORIZED.
func RoleIn(m *models.Match, userID string) (Role, error) {
	switch userID {
	case m.InvestorID:
		return RoleInvestor, nil
	case m.StartupID:
		return RoleStartup, nil
	}
	return "", apperrors.NewUnauthorizedError(userID, m.ID)
}

// DeriveStatus recomputes a match status from both interests. Rules apply in
// order: mutual interest, any pass, any interest; otherwise current is kept.
func DeriveStatus(current models.MatchStatus, investor, startup *models.Interest) models.MatchStatus {
	inv, st := models.InterestOf(investor), models.InterestOf(startup)

	switch {
	case inv == models.InterestInterested && st == models.InterestInterested:
		return models.StatusMatched
	case inv == models.InterestNotInterested || st == models.InterestNotInterested:
		return models.StatusPassed
	case inv == models.InterestInterested || st == models.InterestInterested:
		return models.StatusInterested
	default:
		return current
	}
}

// ApplyInterest records one side's interest and re-derives the status. It
// returns the status before the change.
func ApplyInterest(m *models.Match, role Role, interest models.Interest, now time.Time) (models.MatchStatus, error) {
	if !interest.Valid() {
		return m.Status, apperrors.NewInvalidArgumentError("interest", string(interest))
	}

	previous := m.Status
	value := interest
	switch role {
	case RoleInvestor:
		m.InvestorInterest = &value
	case RoleStartup:
		m.StartupInterest = &value
	default:
		return previous, apperrors.NewUnauthorizedError(string(role), m.ID)
	}

	m.LastInteractionAt = &now
	m.UpdatedAt = now
	m.Status = DeriveStatus(m.Status, m.InvestorInterest, m.StartupInterest)
	return previous, nil
}

// MarkViewed stamps the viewer's view time. Only a pending match moves to
// viewed; later states are left alone.
func MarkViewed(m *models.Match, role Role, now time.Time) models.MatchStatus {
	previous := m.Status
	switch role {
	case RoleInvestor:
		m.InvestorViewedAt = &now
	case RoleStartup:
		m.StartupViewedAt = &now
	}

	m.LastInteractionAt = &now
	m.UpdatedAt = now
	if m.Status == models.StatusPending {
		m.Status = models.StatusViewed
	}
	return previous
}
