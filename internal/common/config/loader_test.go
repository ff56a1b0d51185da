// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: matching
    user: matcher
  redis:
    address: localhost:6379
workers:
  generate-matches:
    enabled: true
`

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.Matching.DataCompleteness)
	assert.Equal(t, 10, cfg.Matching.DefaultGenerateLimit)
	assert.Equal(t, 50, cfg.Matching.DefaultListLimit)
	assert.Equal(t, 100, cfg.Matching.MaxLimit)
	assert.Equal(t, 24*time.Hour, cfg.Matching.RecentWindow)
	assert.Equal(t, 5*time.Minute, cfg.Matching.ProfileCacheTTL)
	assert.Equal(t, "matches", cfg.Search.MatchIndex)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)

	w := cfg.Workers["generate-matches"]
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
	assert.Equal(t, 3, w.MaxRetries)
}

func TestLoadFromFile_ParsesMatchingSection(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, `
camunda:
  broker_address: localhost:26500
matching:
  data_completeness: 0.65
  recent_window: 12h
  profile_cache_ttl: 90s
search:
  enabled: true
  match_index: investor-matches
database:
  postgres:
    host: localhost
    database: matching
    user: matcher
  redis:
    address: localhost:6379
  elasticsearch:
    addresses: ["http://es:9200"]
`))
	require.NoError(t, err)

	assert.Equal(t, 0.65, cfg.Matching.DataCompleteness)
	assert.Equal(t, 12*time.Hour, cfg.Matching.RecentWindow)
	assert.Equal(t, 90*time.Second, cfg.Matching.ProfileCacheTTL)
	assert.Equal(t, "investor-matches", cfg.Search.MatchIndex)
	assert.Equal(t, "http://es:9200", cfg.Database.Elasticsearch.GetURL())
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "database:\n  postgres:\n    host: h\n    database: d\n    user: u\n  redis:\n    address: r\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "missing redis",
			body:    "camunda:\n  broker_address: b\ndatabase:\n  postgres:\n    host: h\n    database: d\n    user: u\n",
			wantErr: "database.redis.address",
		},
		{
			name:    "search without elasticsearch",
			body:    minimalConfig + "search:\n  enabled: true\n",
			wantErr: "elasticsearch",
		},
		{
			name:    "completeness out of range",
			body:    minimalConfig + "matching:\n  data_completeness: 1.5\n",
			wantErr: "data_completeness",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetWorkerConfig_DefaultsForUnknownWorker(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{}}

	w := GetWorkerConfig(cfg, "get-matches")
	assert.True(t, w.Enabled)
	assert.Equal(t, 30000, w.Timeout)
	assert.True(t, IsWorkerEnabled(cfg, "get-matches"))
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
