// internal/workers/matching/update-match-interest/handler.go
package updatematchinterest

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
	TaskType = "update-match-interest"
)

type InterestUpdater interface {
	UpdateInterest(ctx context.Context, matchID, userID, interest string) (*models.Match, error)
}

type Handler struct {
	config    *Config
	engine    InterestUpdater
	processor *camunda.JobProcessor
	logger    logger.Logger
}

func NewHandler(config *Config, engine InterestUpdater, log logger.Logger, opts ...camunda.ProcessorOption) *Handler {
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

	m, err := h.engine.UpdateInterest(ctx, input.MatchID, input.UserID, input.Interest)
	if err != nil {
		return nil, err
	}

	if m.IsMutualMatch() {
		h.logger.Info("mutual match reached", map[string]interface{}{
			"matchId":    m.ID,
			"investorId": m.InvestorID,
			"startupId":  m.StartupID,
		})
	}

	return &Output{
		Match:         m,
		Status:        m.Status,
		IsMutualMatch: m.IsMutualMatch(),
		CounterpartID: m.CounterpartOf(input.UserID),
	}, nil
}
