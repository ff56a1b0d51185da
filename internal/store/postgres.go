// internal/store/postgres.go

// Package store persists users, profiles, matches and insights.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"matching-workers/internal/common/database"
	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"
	"matching-workers/internal/models"

	"github.com/lib/pq"
)

const (
	userColumns = `id, user_type, email, COALESCE(phone, ''), COALESCE(first_name, ''), COALESCE(last_name, '')`

	investorColumns = `id, user_id, name, COALESCE(title, ''), COALESCE(company, ''), COALESCE(bio, ''),
		COALESCE(location, ''), min_investment, max_investment,
		preferred_industries, investment_stage, geographic_preference, expertise_areas,
		COALESCE(risk_tolerance, ''), COALESCE(years_experience, 0), created_at, updated_at`

	startupColumns = `id, user_id, company_name, COALESCE(tagline, ''), industry, COALESCE(company_stage, ''),
		funding_needed, funding_stage, headquarters, market_size, monthly_revenue, customer_count,
		COALESCE(fund_usage_plan, ''), COALESCE(logo_url, ''), created_at, updated_at`

	matchColumns = `id, investor_id, startup_id, compatibility_score, confidence_level, status,
		investor_interest, startup_interest, match_reasons, risk_factors,
		industry_match_score, funding_stage_score, geographic_score, experience_score, market_size_score,
		investor_viewed_at, startup_viewed_at, last_interaction_at,
		algorithm_version, generated_by, created_at, updated_at`

	insightColumns = `id, match_id, overall_explanation, industry_analysis, industry_score,
		funding_analysis, funding_score, geographic_analysis, geographic_score,
		algorithm_confidence, data_completeness, insight_quality, created_at, updated_at`
)

// PostgresStore implements matching.ProfileStore and matching.MatchStore on
// the users, investor_profiles, startup_profiles, matches and match_insights
// tables.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "postgres-store"}),
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// ==========================
// Users and Profiles
// ==========================

func (s *PostgresStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var (
		u        models.User
		userType string
	)
	err := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID).
		Scan(&u.ID, &userType, &u.Email, &u.Phone, &u.FirstName, &u.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("get user", err)
	}
	u.UserType = models.UserType(userType)
	return &u, nil
}

func (s *PostgresStore) GetInvestorProfile(ctx context.Context, userID string) (*models.InvestorProfile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+investorColumns+` FROM investor_profiles WHERE user_id = $1`, userID)
	p, err := scanInvestor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("get investor profile", err)
	}
	return p, nil
}

func (s *PostgresStore) GetStartupProfile(ctx context.Context, userID string) (*models.StartupProfile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+startupColumns+` FROM startup_profiles WHERE user_id = $1`, userID)
	p, err := scanStartup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("get startup profile", err)
	}
	return p, nil
}

func (s *PostgresStore) ListInvestorProfiles(ctx context.Context) ([]*models.InvestorProfile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+investorColumns+` FROM investor_profiles ORDER BY created_at, id`)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("list investor profiles", err)
	}
	defer rows.Close()

	out := make([]*models.InvestorProfile, 0)
	for rows.Next() {
		p, err := scanInvestor(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseQueryFailedError("scan investor profile", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("list investor profiles", err)
	}
	return out, nil
}

func (s *PostgresStore) ListStartupProfiles(ctx context.Context) ([]*models.StartupProfile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+startupColumns+` FROM startup_profiles ORDER BY created_at, id`)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("list startup profiles", err)
	}
	defer rows.Close()

	out := make([]*models.StartupProfile, 0)
	for rows.Next() {
		p, err := scanStartup(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseQueryFailedError("scan startup profile", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("list startup profiles", err)
	}
	return out, nil
}

func scanInvestor(row rowScanner) (*models.InvestorProfile, error) {
	var (
		p              models.InvestorProfile
		minInv, maxInv sql.NullInt64
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Title, &p.Company, &p.Bio, &p.Location,
		&minInv, &maxInv,
		pq.Array(&p.PreferredIndustries), pq.Array(&p.InvestmentStage),
		pq.Array(&p.GeographicPreference), pq.Array(&p.ExpertiseAreas),
		&p.RiskTolerance, &p.YearsExperience, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.MinInvestment = nullInt64(minInv)
	p.MaxInvestment = nullInt64(maxInv)
	return &p, nil
}

func scanStartup(row rowScanner) (*models.StartupProfile, error) {
	var (
		p                                             models.StartupProfile
		industry, fundingStage, headquarters, mktSize sql.NullString
		fundingNeeded, revenue, customers             sql.NullInt64
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.Tagline, &industry, &p.CompanyStage,
		&fundingNeeded, &fundingStage, &headquarters, &mktSize, &revenue, &customers,
		&p.FundUsagePlan, &p.LogoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Industry = nullString(industry)
	p.FundingStage = nullString(fundingStage)
	p.Headquarters = nullString(headquarters)
	p.MarketSize = nullString(mktSize)
	p.FundingNeeded = nullInt64(fundingNeeded)
	p.MonthlyRevenue = nullInt64(revenue)
	p.CustomerCount = nullInt64(customers)
	return &p, nil
}

// ==========================
// Matches
// ==========================

// sideColumn is the matches column holding a user of the given type.
func sideColumn(userType models.UserType) string {
	if userType == models.UserTypeStartup {
		return "startup_id"
	}
	return "investor_id"
}

func (s *PostgresStore) ExistingCounterparts(ctx context.Context, userID string, userType models.UserType) (map[string]bool, error) {
	own, other := sideColumn(userType), sideColumn(userType.Opposite())
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM matches WHERE %s = $1`, other, own), userID)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("existing counterparts", err)
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewDatabaseQueryFailedError("scan counterpart", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("existing counterparts", err)
	}
	return out, nil
}

func (s *PostgresStore) CountRecentMatches(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM matches
		WHERE (investor_id = $1 OR startup_id = $1) AND created_at >= $2`,
		userID, since,
	).Scan(&n)
	if err != nil {
		return 0, apperrors.NewDatabaseQueryFailedError("count recent matches", err)
	}
	return n, nil
}

// CreateMatchWithInsight inserts the match and its insight in one
// transaction. A pair that already exists is left untouched and reported as
// not created.
func (s *PostgresStore) CreateMatchWithInsight(ctx context.Context, m *models.Match, ins *models.MatchInsight) (bool, error) {
	created := false
	err := database.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO matches (`+matchColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
			ON CONFLICT (investor_id, startup_id) DO NOTHING`,
			m.ID, m.InvestorID, m.StartupID, m.CompatibilityScore, string(m.ConfidenceLevel), string(m.Status),
			interestValue(m.InvestorInterest), interestValue(m.StartupInterest),
			pq.Array(m.MatchReasons), pq.Array(m.RiskFactors),
			m.IndustryScore, m.FundingScore, m.GeographicScore, m.ExperienceScore, m.MarketSizeScore,
			m.InvestorViewedAt, m.StartupViewedAt, m.LastInteractionAt,
			m.AlgorithmVersion, m.GeneratedBy, m.CreatedAt, m.UpdatedAt,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}

		if ins != nil {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO match_insights (`+insightColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
				ON CONFLICT (match_id) DO NOTHING`,
				ins.ID, ins.MatchID, ins.OverallExplanation, ins.IndustryAnalysis, ins.IndustryScore,
				ins.FundingAnalysis, ins.FundingScore, ins.GeographicAnalysis, ins.GeographicScore,
				ins.AlgorithmConfidence, ins.DataCompleteness, ins.InsightQuality, ins.CreatedAt, ins.UpdatedAt,
			)
			if err != nil {
				return err
			}
		}
		created = true
		return nil
	})
	if err != nil {
		return false, apperrors.NewDatabaseInsertFailedError("create match", err)
	}
	if !created {
		s.logger.Debug("match pair already present", map[string]interface{}{
			"investorId": m.InvestorID,
			"startupId":  m.StartupID,
		})
	}
	return created, nil
}

func (s *PostgresStore) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	m, err := scanMatch(s.db.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("get match", err)
	}
	return m, nil
}

func (s *PostgresStore) ListMatches(ctx context.Context, filter matching.MatchFilter) ([]*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE %s = $1`, matchColumns, sideColumn(filter.UserType))
	args := []interface{}{filter.UserID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY compatibility_score DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return s.queryMatches(ctx, "list matches", query, args...)
}

func (s *PostgresStore) ListAllMatches(ctx context.Context, userID string, userType models.UserType) ([]*models.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE %s = $1 ORDER BY compatibility_score DESC, created_at DESC`,
		matchColumns, sideColumn(userType))
	return s.queryMatches(ctx, "list all matches", query, userID)
}

func (s *PostgresStore) queryMatches(ctx context.Context, op, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError(op, err)
	}
	defer rows.Close()

	out := make([]*models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, apperrors.NewDatabaseQueryFailedError(op, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError(op, err)
	}
	return out, nil
}

// UpdateMatchState writes the mutable lifecycle columns of m.
func (s *PostgresStore) UpdateMatchState(ctx context.Context, m *models.Match) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE matches
		SET status = $1, investor_interest = $2, startup_interest = $3,
			investor_viewed_at = $4, startup_viewed_at = $5, last_interaction_at = $6, updated_at = $7
		WHERE id = $8`,
		string(m.Status), interestValue(m.InvestorInterest), interestValue(m.StartupInterest),
		m.InvestorViewedAt, m.StartupViewedAt, m.LastInteractionAt, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return apperrors.NewDatabaseQueryFailedError("update match", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewDatabaseQueryFailedError("update match", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError("match", m.ID)
	}
	return nil
}

func (s *PostgresStore) GetInsight(ctx context.Context, matchID string) (*models.MatchInsight, error) {
	var (
		ins                 models.MatchInsight
		industry, fund, geo sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, `SELECT `+insightColumns+` FROM match_insights WHERE match_id = $1`, matchID).Scan(
		&ins.ID, &ins.MatchID, &ins.OverallExplanation, &ins.IndustryAnalysis, &industry,
		&ins.FundingAnalysis, &fund, &ins.GeographicAnalysis, &geo,
		&ins.AlgorithmConfidence, &ins.DataCompleteness, &ins.InsightQuality, &ins.CreatedAt, &ins.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError("get insight", err)
	}
	ins.IndustryScore = nullFloat64(industry)
	ins.FundingScore = nullFloat64(fund)
	ins.GeographicScore = nullFloat64(geo)
	return &ins, nil
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var (
		m                                   models.Match
		confidence, status                  string
		investorInterest, startupInterest   sql.NullString
		industry, funding, geo, exp, market sql.NullFloat64
		investorViewed, startupViewed, last sql.NullTime
	)
	err := row.Scan(
		&m.ID, &m.InvestorID, &m.StartupID, &m.CompatibilityScore, &confidence, &status,
		&investorInterest, &startupInterest, pq.Array(&m.MatchReasons), pq.Array(&m.RiskFactors),
		&industry, &funding, &geo, &exp, &market,
		&investorViewed, &startupViewed, &last,
		&m.AlgorithmVersion, &m.GeneratedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.ConfidenceLevel = models.ConfidenceLevel(confidence)
	m.Status = models.MatchStatus(status)
	m.InvestorInterest = nullInterest(investorInterest)
	m.StartupInterest = nullInterest(startupInterest)
	m.IndustryScore = nullFloat64(industry)
	m.FundingScore = nullFloat64(funding)
	m.GeographicScore = nullFloat64(geo)
	m.ExperienceScore = nullFloat64(exp)
	m.MarketSizeScore = nullFloat64(market)
	m.InvestorViewedAt = nullTime(investorViewed)
	m.StartupViewedAt = nullTime(startupViewed)
	m.LastInteractionAt = nullTime(last)
	if m.RiskFactors == nil {
		m.RiskFactors = []string{}
	}
	return &m, nil
}

// ==========================
// Null Helpers
// ==========================

func interestValue(i *models.Interest) interface{} {
	if i == nil {
		return nil
	}
	return string(*i)
}

func nullInterest(v sql.NullString) *models.Interest {
	if !v.Valid {
		return nil
	}
	i := models.Interest(v.String)
	return &i
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullFloat64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

var (
	_ matching.ProfileStore = (*PostgresStore)(nil)
	_ matching.MatchStore   = (*PostgresStore)(nil)
)
