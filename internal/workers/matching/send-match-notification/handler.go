// internal/workers/matching/send-match-notification/handler.go
package sendmatchnotification

import (
	"context"
	"fmt"
	"time"

	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-match-notification"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type MatchLoader interface {
	Match(ctx context.Context, matchID string) (*models.Match, error)
}

// Directory resolves contacts and display names for both parties.
type Directory interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetInvestorProfile(ctx context.Context, userID string) (*models.InvestorProfile, error)
	GetStartupProfile(ctx context.Context, userID string) (*models.StartupProfile, error)
}

type Handler struct {
	config    *Config
	matches   MatchLoader
	directory Directory
	sesClient SESService
	snsClient SNSService
	processor *camunda.JobProcessor
	logger    logger.Logger
}

func NewHandler(config *Config, matches MatchLoader, directory Directory, sesClient SESService, snsClient SNSService, log logger.Logger, opts ...camunda.ProcessorOption) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		matches:   matches,
		directory: directory,
		sesClient: sesClient,
		snsClient: snsClient,
		processor: camunda.NewJobProcessor(TaskType, config.Timeout, l, opts...),
		logger:    l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.processor.Process(client, job, func(ctx context.Context, variables string) (interface{}, error) {
		var input Input
		if err := camunda.DecodeVariables(variables, &input); err != nil {
			return nil, err
		}
		return h.Execute(ctx, &input)
	})
}

type recipient struct {
	user        *models.User
	counterpart string
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.MatchID == "" {
		return nil, errors.NewInvalidArgumentError("matchId", "matchId is required")
	}
	email, sms, err := channels(input.Channels)
	if err != nil {
		return nil, err
	}

	m, err := h.matches.Match(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if !m.IsMutualMatch() {
		return nil, errors.NewInvalidArgumentError("matchId", fmt.Sprintf("match %s is not mutual (status %s)", m.ID, m.Status))
	}

	recipients, err := h.recipients(ctx, m)
	if err != nil {
		return nil, err
	}

	out := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		Recipients:     []string{},
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	for _, r := range recipients {
		subject := "You have a new mutual match"
		body := fmt.Sprintf(
			"Hi %s, you and %s are both interested in connecting. Compatibility: %.1f%%.",
			r.user.DisplayName(), r.counterpart, m.CompatibilityPercentage(),
		)
		out.Recipients = append(out.Recipients, r.user.ID)

		if email && h.config.EmailEnabled && r.user.Email != "" {
			if err := h.sendEmail(ctx, r.user.Email, subject, body); err != nil {
				metrics.MatchNotificationsSent.WithLabelValues(ChannelEmail, "failed").Inc()
				return nil, errors.NewNotificationSendFailedError(ChannelEmail, err)
			}
			metrics.MatchNotificationsSent.WithLabelValues(ChannelEmail, "sent").Inc()
			out.EmailsSent++
		}

		if sms && h.config.SMSEnabled && r.user.Phone != "" {
			if err := h.sendSMS(ctx, r.user.Phone, body); err != nil {
				metrics.MatchNotificationsSent.WithLabelValues(ChannelSMS, "failed").Inc()
				return nil, errors.NewNotificationSendFailedError(ChannelSMS, err)
			}
			metrics.MatchNotificationsSent.WithLabelValues(ChannelSMS, "sent").Inc()
			out.SMSSent++
		}
	}

	if out.EmailsSent+out.SMSSent > 0 {
		out.Status = StatusSent
	}

	h.logger.Info("match notification processed", map[string]interface{}{
		"matchId":    m.ID,
		"status":     out.Status,
		"emailsSent": out.EmailsSent,
		"smsSent":    out.SMSSent,
	})
	return out, nil
}

func channels(requested []string) (email, sms bool, err error) {
	if len(requested) == 0 {
		return true, true, nil
	}
	for _, c := range requested {
		switch c {
		case ChannelEmail:
			email = true
		case ChannelSMS:
			sms = true
		default:
			return false, false, errors.NewInvalidArgumentError("channels", fmt.Sprintf("unknown channel %q", c))
		}
	}
	return email, sms, nil
}

// recipients returns both parties, each with the other's display name. A
// party whose user row is gone is skipped.
func (h *Handler) recipients(ctx context.Context, m *models.Match) ([]recipient, error) {
	investor, err := h.directory.GetUser(ctx, m.InvestorID)
	if err != nil {
		return nil, err
	}
	startup, err := h.directory.GetUser(ctx, m.StartupID)
	if err != nil {
		return nil, err
	}

	out := make([]recipient, 0, 2)
	if investor != nil {
		name, err := h.startupName(ctx, m.StartupID, startup)
		if err != nil {
			return nil, err
		}
		out = append(out, recipient{user: investor, counterpart: name})
	} else {
		h.logger.Warn("investor user missing", map[string]interface{}{"userId": m.InvestorID})
	}
	if startup != nil {
		name, err := h.investorName(ctx, m.InvestorID, investor)
		if err != nil {
			return nil, err
		}
		out = append(out, recipient{user: startup, counterpart: name})
	} else {
		h.logger.Warn("startup user missing", map[string]interface{}{"userId": m.StartupID})
	}
	return out, nil
}

func (h *Handler) startupName(ctx context.Context, userID string, u *models.User) (string, error) {
	p, err := h.directory.GetStartupProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if p != nil && p.CompanyName != "" {
		return p.CompanyName, nil
	}
	return fallbackName(u), nil
}

func (h *Handler) investorName(ctx context.Context, userID string, u *models.User) (string, error) {
	p, err := h.directory.GetInvestorProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if p != nil && p.Name != "" {
		return p.Name, nil
	}
	return fallbackName(u), nil
}

func fallbackName(u *models.User) string {
	if u == nil {
		return "your match"
	}
	return u.DisplayName()
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}
