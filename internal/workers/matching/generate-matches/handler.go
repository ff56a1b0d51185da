// internal/workers/matching/generate-matches/handler.go
package generatematches

import (
	"context"
	"time"

	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-matches"
)

type Generator interface {
	GenerateMatches(ctx context.Context, userID string, opts matching.GenerateOptions) (*matching.GenerateResult, error)
}

type Handler struct {
	config    *Config
	engine    Generator
	processor *camunda.JobProcessor
	logger    logger.Logger
}

func NewHandler(config *Config, engine Generator, log logger.Logger, opts ...camunda.ProcessorOption) *Handler {
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

	result, err := h.engine.GenerateMatches(ctx, input.UserID, matching.GenerateOptions{
		Limit:           input.Limit,
		ForceRegenerate: input.ForceRegenerate,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("generated matches", map[string]interface{}{
		"userId":    input.UserID,
		"persisted": result.Persisted,
		"returned":  len(result.Matches),
	})

	return &Output{
		Matches:        result.Matches,
		MatchesCount:   len(result.Matches),
		TotalGenerated: result.Persisted,
		CandidatesSeen: result.Scanned,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}
