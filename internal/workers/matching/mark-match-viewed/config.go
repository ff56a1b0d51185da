// internal/workers/matching/mark-match-viewed/config.go
package markmatchviewed

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
