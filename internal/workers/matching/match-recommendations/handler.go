// internal/workers/matching/match-recommendations/handler.go
package matchrecommendations

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
	TaskType = "match-recommendations"
)

type Recommender interface {
	Recommendations(ctx context.Context, userID string) ([]matching.Recommendation, error)
}

type Handler struct {
	config    *Config
	engine    Recommender
	processor *camunda.JobProcessor
	logger    logger.Logger
}

func NewHandler(config *Config, engine Recommender, log logger.Logger, opts ...camunda.ProcessorOption) *Handler {
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

	recs, err := h.engine.Recommendations(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	high := 0
	for _, r := range recs {
		if r.Priority == "high" {
			high++
		}
	}

	return &Output{
		Recommendations:      recs,
		RecommendationsCount: len(recs),
		HighPriorityCount:    high,
	}, nil
}
