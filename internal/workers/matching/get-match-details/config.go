// internal/workers/matching/get-match-details/config.go
package getmatchdetails

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
