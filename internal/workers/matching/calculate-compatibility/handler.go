// internal/workers/matching/calculate-compatibility/handler.go
package calculatecompatibility

import (
	"context"

	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"
	"matching-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-compatibility"
)

type Scorer interface {
	Score(ctx context.Context, investorID, startupID string) (*matching.Compatibility, error)
}

type Handler struct {
	config    *Config
	engine    Scorer
	processor *camunda.JobProcessor
	logger    logger.Logger
}

func NewHandler(config *Config, engine Scorer, log logger.Logger, opts ...camunda.ProcessorOption) *Handler {
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

// Execute scores the pair without persisting a match.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.InvestorID == "" {
		return nil, errors.NewInvalidArgumentError("investorId", "investorId is required")
	}
	if input.StartupID == "" {
		return nil, errors.NewInvalidArgumentError("startupId", "startupId is required")
	}

	c, err := h.engine.Score(ctx, input.InvestorID, input.StartupID)
	if err != nil {
		return nil, err
	}

	return &Output{
		Compatibility:           c,
		CompatibilityPercentage: models.Round1(c.OverallScore * 100),
		Qualifies:               c.Qualifies(),
	}, nil
}
