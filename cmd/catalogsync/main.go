package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travel_assistant/internal/adapters/content"
	"travel_assistant/internal/adapters/gemini"
	"travel_assistant/internal/adapters/observability"
	redisad "travel_assistant/internal/adapters/redis"
	"travel_assistant/internal/app"
	"travel_assistant/internal/domain"
	"travel_assistant/internal/shared"
	mysqlrepo "travel_assistant/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("base", cfg.ContentBase).
		Int("workers", cfg.SyncWorkers).
		Bool("extractor", cfg.GeminiKey != "").
		Msg("catalog sync starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := content.New(cfg.ContentBase, cfg.ContentKey, cfg.ContentRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize content client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// the extractor is optional; without a key free-text plans keep whatever the mapper found
	var extractor domain.PlanExtractor
	if cfg.GeminiKey != "" {
		x, err := gemini.New(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize plan extractor")
		}
		defer x.Close()
		extractor = x
	}

	svc := app.NewSyncService(client, repo, cache, extractor)

	if err := svc.SyncContact(ctx); err != nil {
		log.Error().Err(err).Msg("contact sync failed")
	}
	if err := svc.SyncFAQs(ctx); err != nil {
		log.Error().Err(err).Msg("faq sync failed")
	}

	ids, err := svc.PlanIDs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing plans failed")
	}

	workers := cfg.SyncWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed atomic.Int64

	for _, id := range ids {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("sync interrupted")
			break
		}

		wg.Add(1)
		go func(planID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := svc.SyncPlan(ctx, planID); err != nil {
				failed.Add(1)
				log.Warn().Int64("id", planID).Err(err).Msg("plan sync failed")
				return
			}
			log.Debug().Int64("id", planID).Msg("plan sync ok")
		}(id)
	}

	wg.Wait()
	log.Info().Int("plans", len(ids)).Int64("failed", failed.Load()).Msg("catalog sync completed")
}
