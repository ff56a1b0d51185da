// internal/workers/matching/send-match-notification/models.go
package sendmatchnotification

type Input struct {
	MatchID  string   `json:"matchId"`
	Channels []string `json:"channels,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent" or "disabled"
	EmailsSent     int      `json:"emailsSent"`
	SMSSent        int      `json:"smsSent"`
	Recipients     []string `json:"recipients"`
	SentAt         string   `json:"sentAt"`
}

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
)
