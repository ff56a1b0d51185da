// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"time"

	"matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InputValidator checks raw job variables before a handler decodes them.
type InputValidator interface {
	Validate(taskType string, variables string) error
}

// RunFunc executes one job and returns the variables to complete it with.
type RunFunc func(ctx context.Context, variables string) (interface{}, error)

// JobProcessor owns the lifecycle shared by every matching worker: schema
// validation, per-job timeout, tracing, metrics, completion and routing of
// failures through the ErrorHandler.
type JobProcessor struct {
	taskType   string
	timeout    time.Duration
	validator  InputValidator
	obs        *observability.Observability
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

type ProcessorOption func(*JobProcessor)

func WithValidator(v InputValidator) ProcessorOption {
	return func(p *JobProcessor) { p.validator = v }
}

func WithObservability(o *observability.Observability) ProcessorOption {
	return func(p *JobProcessor) { p.obs = o }
}

func NewJobProcessor(taskType string, timeout time.Duration, log logger.Logger, opts ...ProcessorOption) *JobProcessor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	p := &JobProcessor{
		taskType:   taskType,
		timeout:    timeout,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *JobProcessor) Process(client worker.JobClient, job entities.Job, run RunFunc) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(p.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(p.taskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	ctx, span := p.startSpan(ctx)
	defer span.End()

	p.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	output, err := p.execute(ctx, job, run)
	status := "success"
	if err != nil {
		status = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		code := errors.Normalize(err).Code
		metrics.WorkerJobsFailed.WithLabelValues(p.taskType, string(code)).Inc()
		p.errHandler.HandleJobError(ctx, client, job, err)
	} else if err := p.completeJob(ctx, client, job, output); err != nil {
		status = "failed"
		p.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	} else {
		metrics.WorkerJobsCompleted.WithLabelValues(p.taskType).Inc()
	}

	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(p.taskType).Observe(elapsed.Seconds())
	if p.obs != nil {
		p.obs.RecordJobProcessed(ctx, p.taskType, status)
		p.obs.RecordJobDuration(ctx, p.taskType, elapsed, status)
	}
}

func (p *JobProcessor) startSpan(ctx context.Context) (context.Context, trace.Span) {
	if p.obs == nil {
		return otel.Tracer("matching-workers").Start(ctx, p.taskType)
	}
	return p.obs.StartSpan(ctx, p.taskType)
}

func (p *JobProcessor) execute(ctx context.Context, job entities.Job, run RunFunc) (interface{}, error) {
	if p.validator != nil {
		if err := p.validator.Validate(p.taskType, job.Variables); err != nil {
			return nil, err
		}
	}
	return run(ctx, job.Variables)
}

func (p *JobProcessor) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		return err
	}
	_, err = cmd.Send(ctx)
	if err == nil {
		p.logger.Info("job completed", map[string]interface{}{"jobKey": job.Key})
	}
	return err
}

// DecodeVariables unmarshals job variables, mapping failures to INVALID_ARGUMENT.
func DecodeVariables(variables string, out interface{}) error {
	if err := json.Unmarshal([]byte(variables), out); err != nil {
		return errors.NewInvalidArgumentError("job variables", err.Error())
	}
	return nil
}

// OpenWorker registers handle for taskType on the broker.
func OpenWorker(client zbc.Client, taskType string, maxJobsActive int, timeout time.Duration, handle worker.JobHandler) worker.JobWorker {
	return client.NewJobWorker().
		JobType(taskType).
		Handler(handle).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Name(taskType).
		Open()
}
