// internal/workers/matching/get-matches/handler.go
package getmatches

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
	TaskType = "get-matches"
)

type Lister interface {
	GetMatches(ctx context.Context, userID string, status string, limit, offset int) ([]*models.MatchView, error)
}

type Handler struct {
	config    *Config
	engine    Lister
	processor *camunda.JobProcessor
	logger    logger.Logger
}

func NewHandler(config *Config, engine Lister, log logger.Logger, opts ...camunda.ProcessorOption) *Handler {
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

	views, err := h.engine.GetMatches(ctx, input.UserID, input.Status, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	// Only an explicit limit can tell whether another page exists.
	return &Output{
		Matches:      views,
		MatchesCount: len(views),
		Offset:       input.Offset,
		HasMore:      input.Limit > 0 && len(views) == input.Limit,
	}, nil
}
