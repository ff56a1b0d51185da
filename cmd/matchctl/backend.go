// cmd/matchctl/backend.go
package main

import (
	"context"
	"fmt"
	"os"

	"matching-workers/internal/common/config"
	"matching-workers/internal/common/database"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching"
	"matching-workers/internal/search"
	"matching-workers/internal/store"

	"github.com/spf13/viper"
)

// backend is the engine plus whatever infrastructure it was opened over.
type backend struct {
	engine        *matching.Engine
	cache         *store.CachedProfileStore
	searchEnabled bool
	closers       []func() error
}

func newLogger() logger.Logger {
	format := "console"
	if viper.GetBool("json") {
		format = "json"
	}
	level := "warn"
	if viper.GetBool("debug") {
		level = "debug"
	}
	return logger.NewStructured(level, format)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.Load()
}

// openBackend runs against the fixtures file when one is given, otherwise
// against the configured PostgreSQL, Redis and, if enabled, Elasticsearch.
func openBackend(ctx context.Context, log logger.Logger) (*backend, error) {
	if path := viper.GetString("fixtures"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open fixtures: %w", err)
		}
		defer f.Close()

		s, err := store.LoadFixtures(f)
		if err != nil {
			return nil, err
		}
		return &backend{engine: matching.NewEngine(s, s, matching.DefaultConfig(), log)}, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	b := &backend{}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, pg.Close)
	if err := pg.Ping(ctx); err != nil {
		b.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	rc, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.closers = append(b.closers, rc.Close)

	pgStore := store.NewPostgresStore(pg.DB, log)
	b.cache = store.NewCachedProfileStore(pgStore, rc.Client, cfg.Matching.ProfileCacheTTL, log)

	var opts []matching.Option
	if cfg.Search.Enabled {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			b.Close()
			return nil, err
		}
		opts = append(opts, matching.WithIndexer(search.NewMatchIndex(es.Client, cfg.Search.MatchIndex, log)))
		b.searchEnabled = true
	}

	b.engine = matching.NewEngine(b.cache, pgStore, matching.ConfigFrom(cfg.Matching), log, opts...)
	return b, nil
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i]()
	}
}
