// internal/store/fixtures_test.go
package store

import (
	"context"
	"strings"
	"testing"

	"matching-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixtures = `{
  "users": [
    {"id": "inv-1", "user_type": "investor", "email": "dana@fund.test"},
    {"id": "st-1", "user_type": "startup", "email": "team@ledgerly.test"}
  ],
  "investor_profiles": [
    {"id": "ip-1", "user_id": "inv-1", "name": "Dana", "min_investment": 100000, "preferred_industries": ["fintech"]}
  ],
  "startup_profiles": [
    {"id": "sp-1", "user_id": "st-1", "company_name": "Ledgerly", "industry": "fintech", "funding_needed": 500000}
  ],
  "matches": [
    {"id": "m-1", "investor_id": "inv-1", "startup_id": "st-1", "compatibility_score": 0.9, "status": "pending"}
  ]
}`

func TestLoadFixtures(t *testing.T) {
	s, err := LoadFixtures(strings.NewReader(sampleFixtures))
	require.NoError(t, err)
	ctx := context.Background()

	u, err := s.GetUser(ctx, "st-1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, models.UserTypeStartup, u.UserType)

	inv, err := s.GetInvestorProfile(ctx, "inv-1")
	require.NoError(t, err)
	require.NotNil(t, inv)
	require.NotNil(t, inv.MinInvestment)
	assert.Equal(t, int64(100000), *inv.MinInvestment)
	assert.Nil(t, inv.MaxInvestment)

	st, err := s.GetStartupProfile(ctx, "st-1")
	require.NoError(t, err)
	require.NotNil(t, st.Industry)
	assert.Equal(t, "fintech", *st.Industry)

	m, err := s.GetMatch(ctx, "m-1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, models.StatusPending, m.Status)
}

func TestLoadFixtures_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed", `{"users": [`, "decode fixtures"},
		{"bad user type", `{"users": [{"id": "u", "user_type": "admin"}]}`, "invalid user type"},
		{"orphan investor", `{"investor_profiles": [{"id": "ip", "user_id": "ghost"}]}`, "no investor user ghost"},
		{
			"startup profile on investor",
			`{"users": [{"id": "u", "user_type": "investor"}], "startup_profiles": [{"id": "sp", "user_id": "u"}]}`,
			"no startup user u",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixtures(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
