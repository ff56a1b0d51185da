// internal/workers/matching/get-match-details/handler.go
package getmatchdetails

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
	TaskType = "get-match-details"
)

type DetailReader interface {
	GetMatchDetails(ctx context.Context, matchID, userID string) (*models.MatchDetails, error)
	GetMatchInsight(ctx context.Context, matchID, userID string) (*models.MatchInsight, error)
}

type Handler struct {
	config    *Config
	engine    DetailReader
	processor *camunda.JobProcessor
	logger    logger.Logger
}

func NewHandler(config *Config, engine DetailReader, log logger.Logger, opts ...camunda.ProcessorOption) *Handler {
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

	if input.InsightOnly {
		insight, err := h.engine.GetMatchInsight(ctx, input.MatchID, input.UserID)
		if err != nil {
			return nil, err
		}
		return &Output{Insight: insight, HasInsight: true}, nil
	}

	details, err := h.engine.GetMatchDetails(ctx, input.MatchID, input.UserID)
	if err != nil {
		return nil, err
	}
	if details.Insight == nil {
		h.logger.Warn("match has no insight", map[string]interface{}{"matchId": input.MatchID})
	}

	return &Output{
		Match:          details.Match,
		PartnerProfile: details.PartnerProfile,
		Insight:        details.Insight,
		HasInsight:     details.Insight != nil,
	}, nil
}
