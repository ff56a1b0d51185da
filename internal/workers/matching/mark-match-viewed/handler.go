// internal/workers/matching/mark-match-viewed/handler.go
package markmatchviewed

import (
	"context"

	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "mark-match-viewed"
)

type ViewRecorder interface {
	MarkViewed(ctx context.Context, matchID, userID string) (*models.Match, error)
}

type Handler struct {
	config    *Config
	engine    ViewRecorder
	processor *camunda.JobProcessor
	logger    logger.Logger
}

func NewHandler(config *Config, engine ViewRecorder, log logger.Logger, opts ...camunda.ProcessorOption) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		engine:    engine,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.MatchID == "" {
		return nil, errors.NewInvalidArgumentError("matchId", "matchId is required")
	}
	if input.UserID == "" {
		return nil, errors.NewInvalidArgumentError("userId", "userId is required")
	}

	m, err := h.engine.MarkViewed(ctx, input.MatchID, input.UserID)
	if err != nil {
		return nil, err
	}

	viewedAt := m.InvestorViewedAt
	if input.UserID == m.StartupID {
		viewedAt = m.StartupViewedAt
	}

	return &Output{
		MatchID:  m.ID,
		Status:   m.Status,
		ViewedAt: viewedAt,
	}, nil
}
