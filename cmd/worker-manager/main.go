// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"matching-workers/internal/common/aws"
	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/config"
	"matching-workers/internal/common/database"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/matching"
	"matching-workers/internal/search"
	"matching-workers/internal/store"
	"matching-workers/pkg/registry"

	cc "matching-workers/internal/workers/matching/calculate-compatibility"
	gm "matching-workers/internal/workers/matching/generate-matches"
	gmd "matching-workers/internal/workers/matching/get-match-details"
	lm "matching-workers/internal/workers/matching/get-matches"
	mmv "matching-workers/internal/workers/matching/mark-match-viewed"
	ma "matching-workers/internal/workers/matching/match-analytics"
	mr "matching-workers/internal/workers/matching/match-recommendations"
	smn "matching-workers/internal/workers/matching/send-match-notification"
	umi "matching-workers/internal/workers/matching/update-match-interest"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting matching worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	pgStore := store.NewPostgresStore(pg.DB, log)
	profiles := store.NewCachedProfileStore(pgStore, redis.Client, cfg.Matching.ProfileCacheTTL, log)

	engineOpts := []matching.Option{}

	// --- Init Elasticsearch with retry ---
	if cfg.Search.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}

		index := search.NewMatchIndex(esClient.Client, cfg.Search.MatchIndex, log)
		if err := index.EnsureIndex(ctx); err != nil {
			zapLog.Fatal("match index setup failed", zap.Error(err))
		}
		engineOpts = append(engineOpts, matching.WithIndexer(index))
		zapLog.Info("Elasticsearch connected successfully", zap.String("index", cfg.Search.MatchIndex))
	}

	engine := matching.NewEngine(profiles, pgStore, matching.ConfigFrom(cfg.Matching), log, engineOpts...)

	// --- Input schemas ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("task registry load failed", zap.Error(err))
	}
	validator, err := validation.NewValidator(reg.InputSchemas())
	if err != nil {
		zapLog.Fatal("input schema compile failed", zap.Error(err))
	}
	procOpts := []camunda.ProcessorOption{
		camunda.WithValidator(validator),
		camunda.WithObservability(obs),
	}

	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	// --- Register matching workers ---
	client := zeebe.GetClient()
	var workers []worker.JobWorker
	start := func(taskType string, handle func(worker.JobClient, entities.Job)) {
		if w := startWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), handle, zapLog); w != nil {
			workers = append(workers, w)
		}
	}

	start(gm.TaskType, gm.NewHandler(&gm.Config{Timeout: timeout(gm.TaskType)}, engine, log, procOpts...).Handle)
	start(lm.TaskType, lm.NewHandler(&lm.Config{Timeout: timeout(lm.TaskType)}, engine, log, procOpts...).Handle)
	start(umi.TaskType, umi.NewHandler(&umi.Config{Timeout: timeout(umi.TaskType)}, engine, log, procOpts...).Handle)
	start(mmv.TaskType, mmv.NewHandler(&mmv.Config{Timeout: timeout(mmv.TaskType)}, engine, log, procOpts...).Handle)
	start(gmd.TaskType, gmd.NewHandler(&gmd.Config{Timeout: timeout(gmd.TaskType)}, engine, log, procOpts...).Handle)
	start(ma.TaskType, ma.NewHandler(&ma.Config{Timeout: timeout(ma.TaskType)}, engine, log, procOpts...).Handle)
	start(mr.TaskType, mr.NewHandler(&mr.Config{Timeout: timeout(mr.TaskType)}, engine, log, procOpts...).Handle)
	start(cc.TaskType, cc.NewHandler(&cc.Config{Timeout: timeout(cc.TaskType)}, engine, log, procOpts...).Handle)

	if config.IsWorkerEnabled(cfg, smn.TaskType) {
		notifyCfg := smn.LoadConfig().FromNotifications(cfg.Notifications)
		notifyCfg.Timeout = timeout(smn.TaskType)

		awsClients, err := aws.NewClients(ctx, notifyCfg.AWSRegion)
		if err != nil {
			zapLog.Fatal("failed to create AWS clients", zap.Error(err))
		}
		handler := smn.NewHandler(notifyCfg, engine, profiles, awsClients.SES, awsClients.SNS, log, procOpts...)
		start(smn.TaskType, handler.Handle)
	}

	zapLog.Info("Matching workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pg.Ping(readyCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "postgres unavailable")
			return
		}
		if err := redis.Ping(readyCtx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	srv := &http.Server{Addr: cfg.App.HTTPAddr, Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", cfg.App.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	w := camunda.OpenWorker(client, taskType, wcfg.MaxJobsActive, config.GetDuration(wcfg.Timeout), handlerFunc)

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return w
}
