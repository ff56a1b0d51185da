// internal/workers/matching/send-match-notification/config.go
package sendmatchnotification

import (
	"time"

	"matching-workers/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	AWSRegion    string
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

// FromNotifications fills the channel switches from the notifications section.
func (c *Config) FromNotifications(n config.NotificationConfig) *Config {
	c.EmailEnabled = n.Email.Enabled
	c.SMSEnabled = n.SMS.Enabled
	c.FromEmail = n.Email.FromEmail
	c.AWSRegion = n.AWS.Region
	return c
}
