// internal/workers/matching/match-analytics/handler.go
package matchanalytics

import (
	"context"

	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "match-analytics"
)

type AnalyticsReader interface {
	Analytics(ctx context.Context, userID string) (*matching.Analytics, error)
	Stats(ctx context.Context, userID string) (*matching.Stats, error)
}

type Handler struct {
	config    *Config
	engine    AnalyticsReader
	processor *camunda.JobProcessor
	logger    logger.Logger
}

func NewHandler(config *Config, engine AnalyticsReader, log logger.Logger, opts ...camunda.ProcessorOption) *Handler {
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
	if input.UserID == "" {
		return nil, errors.NewInvalidArgumentError("userId", "userId is required")
	}

	analytics, err := h.engine.Analytics(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	stats, err := h.engine.Stats(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &Output{Analytics: analytics, Stats: stats}, nil
}
