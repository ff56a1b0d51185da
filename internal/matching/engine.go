// internal/matching/engine.go
package matching

import (
	"context"
	"time"

	"matching-workers/internal/common/config"
	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/models"

	"github.com/google/uuid"
)

// ProfileStore reads users and profiles. Absent rows are (nil, nil).
type ProfileStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetInvestorProfile(ctx context.Context, userID string) (*models.InvestorProfile, error)
	GetStartupProfile(ctx context.Context, userID string) (*models.StartupProfile, error)
	ListInvestorProfiles(ctx context.Context) ([]*models.InvestorProfile, error)
	ListStartupProfiles(ctx context.Context) ([]*models.StartupProfile, error)
}

// MatchFilter selects one user's matches for listing.
type MatchFilter struct {
	UserID   string
	UserType models.UserType
	Status   models.MatchStatus
	Limit    int
	Offset   int
}

// MatchStore persists matches and their insights. Absent rows are (nil, nil).
type MatchStore interface {
	ExistingCounterparts(ctx context.Context, userID string, userType models.UserType) (map[string]bool, error)
	CountRecentMatches(ctx context.Context, userID string, since time.Time) (int, error)
	// CreateMatchWithInsight writes both rows in one transaction. It reports
	// false when the pair already exists.
	CreateMatchWithInsight(ctx context.Context, m *models.Match, insight *models.MatchInsight) (bool, error)
	GetMatch(ctx context.Context, matchID string) (*models.Match, error)
	ListMatches(ctx context.Context, filter MatchFilter) ([]*models.Match, error)
	ListAllMatches(ctx context.Context, userID string, userType models.UserType) ([]*models.Match, error)
	UpdateMatchState(ctx context.Context, m *models.Match) error
	GetInsight(ctx context.Context, matchID string) (*models.MatchInsight, error)
}

// Indexer receives every created or changed match. Failures are logged only.
type Indexer interface {
	IndexMatch(ctx context.Context, m *models.Match) error
}

type Config struct {
	DataCompleteness     float64
	DefaultGenerateLimit int
	DefaultListLimit     int
	MaxLimit             int
	RecentWindow         time.Duration
}

func ConfigFrom(c config.MatchingConfig) Config {
	return Config{
		DataCompleteness:     c.DataCompleteness,
		DefaultGenerateLimit: c.DefaultGenerateLimit,
		DefaultListLimit:     c.DefaultListLimit,
		MaxLimit:             c.MaxLimit,
		RecentWindow:         c.RecentWindow,
	}
}

func DefaultConfig() Config {
	return Config{
		DataCompleteness:     0.8,
		DefaultGenerateLimit: 10,
		DefaultListLimit:     50,
		MaxLimit:             100,
		RecentWindow:         24 * time.Hour,
	}
}

type Engine struct {
	profiles ProfileStore
	matches  MatchStore
	indexer  Indexer
	cfg      Config
	logger   logger.Logger
	now      func() time.Time
	newID    func() string
}

type Option func(*Engine)

func WithIndexer(ix Indexer) Option {
	return func(e *Engine) { e.indexer = ix }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func NewEngine(profiles ProfileStore, matches MatchStore, cfg Config, log logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		profiles: profiles,
		matches:  matches,
		cfg:      cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "matching-engine"}),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type GenerateOptions struct {
	Limit           int
	ForceRegenerate bool
}

type GenerateResult struct {
	Matches   []*models.Match `json:"matches"`
	Persisted int             `json:"persisted"`
	Scanned   int             `json:"scanned"`
}

// GenerateMatches scores every counterpart the user is not yet matched with,
// persists every pair scoring above QualifyingScore and returns the best
// Limit of them. Pairs already committed stay in place if a later write fails.
func (e *Engine) GenerateMatches(ctx context.Context, userID string, opts GenerateOptions) (*GenerateResult, error) {
	user, err := e.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	limit, err := e.limit(opts.Limit, e.cfg.DefaultGenerateLimit)
	if err != nil {
		return nil, err
	}

	if !opts.ForceRegenerate && e.cfg.RecentWindow > 0 {
		recent, err := e.matches.CountRecentMatches(ctx, userID, e.now().Add(-e.cfg.RecentWindow))
		if err != nil {
			return nil, err
		}
		if recent > 0 {
			return nil, apperrors.NewRecentMatchesExistError(recent)
		}
	}

	pairs, err := e.candidatePairs(ctx, user)
	if err != nil {
		return nil, err
	}

	existing, err := e.matches.ExistingCounterparts(ctx, userID, user.UserType)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{}
	created := make([]*models.Match, 0)
	for _, p := range pairs {
		counterpart := p.startup.UserID
		if user.UserType == models.UserTypeStartup {
			counterpart = p.investor.UserID
		}
		if existing[counterpart] {
			continue
		}
		result.Scanned++

		c := Calculate(p.investor, p.startup)
		metrics.MatchCompatibilityScore.Observe(c.OverallScore)
		if !c.Qualifies() {
			continue
		}

		m, err := e.persist(ctx, p.investor, p.startup, c)
		if err != nil {
			return nil, err
		}
		if m != nil {
			created = append(created, m)
		}
	}

	result.Persisted = len(created)
	metrics.MatchesGenerated.WithLabelValues(string(user.UserType)).Add(float64(len(created)))

	sortByScore(created)
	if len(created) > limit {
		created = created[:limit]
	}
	result.Matches = created

	e.logger.Info("matches generated", map[string]interface{}{
		"userId":    userID,
		"userType":  string(user.UserType),
		"scanned":   result.Scanned,
		"persisted": result.Persisted,
		"returned":  len(created),
	})
	return result, nil
}

type pair struct {
	investor *models.InvestorProfile
	startup  *models.StartupProfile
}

func (e *Engine) candidatePairs(ctx context.Context, user *models.User) ([]pair, error) {
	if user.UserType == models.UserTypeInvestor {
		own, err := e.profiles.GetInvestorProfile(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if own == nil {
			return nil, apperrors.NewProfileNotFoundError(string(user.UserType), user.ID)
		}
		startups, err := e.profiles.ListStartupProfiles(ctx)
		if err != nil {
			return nil, err
		}
		pairs := make([]pair, 0, len(startups))
		for _, st := range startups {
			pairs = append(pairs, pair{investor: own, startup: st})
		}
		return pairs, nil
	}

	own, err := e.profiles.GetStartupProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if own == nil {
		return nil, apperrors.NewProfileNotFoundError(string(user.UserType), user.ID)
	}
	investors, err := e.profiles.ListInvestorProfiles(ctx)
	if err != nil {
		return nil, err
	}
	pairs := make([]pair, 0, len(investors))
	for _, inv := range investors {
		pairs = append(pairs, pair{investor: inv, startup: own})
	}
	return pairs, nil
}

// persist writes one match with its insight. It returns nil when a concurrent
// generation already created the pair.
func (e *Engine) persist(ctx context.Context, inv *models.InvestorProfile, st *models.StartupProfile, c Compatibility) (*models.Match, error) {
	now := e.now()
	m := NewMatch(e.newID(), inv.UserID, st.UserID, c)
	m.CreatedAt, m.UpdatedAt = now, now

	insight := BuildInsight(e.newID(), m, inv, st, e.cfg.DataCompleteness)
	insight.CreatedAt, insight.UpdatedAt = now, now

	ok, err := e.matches.CreateMatchWithInsight(ctx, m, insight)
	if err != nil {
		return nil, err
	}
	if !ok {
		e.logger.Warn("match already exists, skipped", map[string]interface{}{
			"investorId": m.InvestorID,
			"startupId":  m.StartupID,
		})
		return nil, nil
	}

	e.index(ctx, m)
	return m, nil
}

// GetMatches lists the user's matches, best first, each with a summary of the
// counterpart's profile when one exists.
func (e *Engine) GetMatches(ctx context.Context, userID string, status string, limit, offset int) ([]*models.MatchView, error) {
	user, err := e.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := MatchFilter{UserID: userID, UserType: user.UserType, Offset: offset}
	if status != "" {
		s := models.MatchStatus(status)
		if !s.Valid() {
			return nil, apperrors.NewInvalidArgumentError("status", status)
		}
		filter.Status = s
	}
	if offset < 0 {
		return nil, apperrors.NewInvalidArgumentError("offset", "must not be negative")
	}
	if filter.Limit, err = e.limit(limit, e.cfg.DefaultListLimit); err != nil {
		return nil, err
	}

	matches, err := e.matches.ListMatches(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]*models.MatchView, 0, len(matches))
	for _, m := range matches {
		partner, err := e.partnerSummary(ctx, user.UserType, m)
		if err != nil {
			return nil, err
		}
		views = append(views, &models.MatchView{Match: m, PartnerProfile: partner})
	}
	return views, nil
}

func (e *Engine) partnerSummary(ctx context.Context, viewer models.UserType, m *models.Match) (*models.PartnerProfile, error) {
	if viewer == models.UserTypeInvestor {
		st, err := e.profiles.GetStartupProfile(ctx, m.StartupID)
		if err != nil || st == nil {
			return nil, err
		}
		return &models.PartnerProfile{Startup: st.Summary()}, nil
	}
	inv, err := e.profiles.GetInvestorProfile(ctx, m.InvestorID)
	if err != nil || inv == nil {
		return nil, err
	}
	return &models.PartnerProfile{Investor: inv.Summary()}, nil
}

// UpdateInterest records the caller's interest in a match and re-derives its
// status.
func (e *Engine) UpdateInterest(ctx context.Context, matchID, userID, interest string) (*models.Match, error) {
	value := models.Interest(interest)
	if !value.Valid() {
		return nil, apperrors.NewInvalidArgumentError("interest", interest)
	}

	m, role, err := e.loadForParty(ctx, matchID, userID)
	if err != nil {
		return nil, err
	}

	previous, err := ApplyInterest(m, role, value, e.now())
	if err != nil {
		return nil, err
	}
	if err := e.matches.UpdateMatchState(ctx, m); err != nil {
		return nil, err
	}

	e.recordTransition(previous, m.Status)
	e.index(ctx, m)

	e.logger.Info("match interest updated", map[string]interface{}{
		"matchId":  m.ID,
		"userId":   userID,
		"role":     string(role),
		"interest": interest,
		"status":   string(m.Status),
	})
	return m, nil
}

func (e *Engine) MarkViewed(ctx context.Context, matchID, userID string) (*models.Match, error) {
	m, role, err := e.loadForParty(ctx, matchID, userID)
	if err != nil {
		return nil, err
	}

	previous := MarkViewed(m, role, e.now())
	if err := e.matches.UpdateMatchState(ctx, m); err != nil {
		return nil, err
	}

	e.recordTransition(previous, m.Status)
	e.index(ctx, m)
	return m, nil
}

// GetMatchDetails returns the match, the counterpart summary and the insight.
// A missing insight is not an error here.
func (e *Engine) GetMatchDetails(ctx context.Context, matchID, userID string) (*models.MatchDetails, error) {
	m, role, err := e.loadForParty(ctx, matchID, userID)
	if err != nil {
		return nil, err
	}

	viewer := models.UserTypeInvestor
	if role == RoleStartup {
		viewer = models.UserTypeStartup
	}
	partner, err := e.partnerSummary(ctx, viewer, m)
	if err != nil {
		return nil, err
	}

	insight, err := e.matches.GetInsight(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	return &models.MatchDetails{Match: m, PartnerProfile: partner, Insight: insight}, nil
}

func (e *Engine) GetMatchInsight(ctx context.Context, matchID, userID string) (*models.MatchInsight, error) {
	if _, _, err := e.loadForParty(ctx, matchID, userID); err != nil {
		return nil, err
	}
	insight, err := e.matches.GetInsight(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if insight == nil {
		return nil, apperrors.NewNotFoundError("matchInsight", matchID)
	}
	return insight, nil
}

func (e *Engine) Analytics(ctx context.Context, userID string) (*Analytics, error) {
	user, matches, err := e.userMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	a := ComputeAnalytics(user.UserType, matches)
	return &a, nil
}

func (e *Engine) Stats(ctx context.Context, userID string) (*Stats, error) {
	user, matches, err := e.userMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	s := ComputeStats(user.UserType, matches)
	return &s, nil
}

func (e *Engine) Recommendations(ctx context.Context, userID string) ([]Recommendation, error) {
	user, matches, err := e.userMatches(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.UserType == models.UserTypeInvestor {
		profile, err := e.profiles.GetInvestorProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		return BuildInvestorRecommendations(matches, profile), nil
	}

	profile, err := e.profiles.GetStartupProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildStartupRecommendations(matches, profile), nil
}

// Score rates one investor/startup pair without persisting anything.
func (e *Engine) Score(ctx context.Context, investorID, startupID string) (*Compatibility, error) {
	inv, err := e.profiles.GetInvestorProfile(ctx, investorID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperrors.NewProfileNotFoundError(string(models.UserTypeInvestor), investorID)
	}

	st, err := e.profiles.GetStartupProfile(ctx, startupID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperrors.NewProfileNotFoundError(string(models.UserTypeStartup), startupID)
	}

	c := Calculate(inv, st)
	return &c, nil
}

// Reindex pushes every match of the user to the indexer and returns how many
// were sent.
func (e *Engine) Reindex(ctx context.Context, userID string) (int, error) {
	if e.indexer == nil {
		return 0, nil
	}
	_, matches, err := e.userMatches(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, m := range matches {
		if err := e.indexer.IndexMatch(ctx, m); err != nil {
			return 0, err
		}
	}
	return len(matches), nil
}

// Match loads a match by id with no party check.
func (e *Engine) Match(ctx context.Context, matchID string) (*models.Match, error) {
	m, err := e.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.NewNotFoundError("match", matchID)
	}
	return m, nil
}

func (e *Engine) resolveUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := e.profiles.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user", userID)
	}
	if !user.UserType.Valid() {
		return nil, apperrors.NewInvalidUserTypeError(string(user.UserType))
	}
	return user, nil
}

func (e *Engine) userMatches(ctx context.Context, userID string) (*models.User, []*models.Match, error) {
	user, err := e.resolveUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	matches, err := e.matches.ListAllMatches(ctx, userID, user.UserType)
	if err != nil {
		return nil, nil, err
	}
	return user, matches, nil
}

func (e *Engine) loadForParty(ctx context.Context, matchID, userID string) (*models.Match, Role, error) {
	m, err := e.Match(ctx, matchID)
	if err != nil {
		return nil, "", err
	}
	role, err := RoleIn(m, userID)
	if err != nil {
		return nil, "", err
	}
	return m, role, nil
}

// limit resolves a requested page size. Zero selects the fallback.
func (e *Engine) limit(requested, fallback int) (int, error) {
	if requested < 0 {
		return 0, apperrors.NewInvalidArgumentError("limit", "must not be negative")
	}
	if requested == 0 {
		return fallback, nil
	}
	if e.cfg.MaxLimit > 0 && requested > e.cfg.MaxLimit {
		return 0, apperrors.NewInvalidArgumentError("limit", "exceeds maximum")
	}
	return requested, nil
}

func (e *Engine) recordTransition(from, to models.MatchStatus) {
	if from != to {
		metrics.MatchStatusTransitions.WithLabelValues(string(from), string(to)).Inc()
	}
}

func (e *Engine) index(ctx context.Context, m *models.Match) {
	if e.indexer == nil {
		return
	}
	if err := e.indexer.IndexMatch(ctx, m); err != nil {
		e.logger.Warn("failed to index match", map[string]interface{}{
			"matchId": m.ID,
			"error":   err.Error(),
		})
	}
}
