// internal/workers/matching/calculate-compatibility/config.go
package calculatecompatibility

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
