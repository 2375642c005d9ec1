package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"guesthouse_backend/internal/assessment/pricing"
	assessmentrepo "guesthouse_backend/internal/assessment/repository"
	"guesthouse_backend/internal/assessment/scoring"
	assessmentservice "guesthouse_backend/internal/assessment/service"
	"guesthouse_backend/internal/config"
	ghrepo "guesthouse_backend/internal/guesthouses/repository"
	"guesthouse_backend/internal/scheduler"
	"guesthouse_backend/platform/db"
	"guesthouse_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	if cfg.RedisURL == "" {
		log.Error("REDIS_URL not configured; scheduler cannot run")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	scoringCfg, err := scoring.LoadConfig(cfg.ScoringConfigPath)
	if err != nil {
		panic("failed to load scoring config: " + err.Error())
	}
	scorer, err := scoring.NewEngine(scoringCfg)
	if err != nil {
		panic("failed to build scoring engine: " + err.Error())
	}

	pricingCfg, err := pricing.LoadConfig(cfg.PricingConfigPath)
	if err != nil {
		panic("failed to load pricing config: " + err.Error())
	}
	pricer, err := pricing.NewEngine(pricingCfg)
	if err != nil {
		panic("failed to build pricing engine: " + err.Error())
	}

	guesthouses := ghrepo.New(pool)

	// Baseline recomputes skip the environmental fetch, so no provider is
	// wired here.
	assessments := assessmentservice.New(nil, nil, nil, scorer, pricer, assessmentrepo.New(pool), nil, log)

	worker, err := scheduler.NewWorker(cfg, guesthouses, assessments, log)
	if err != nil {
		panic("failed to build worker: " + err.Error())
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		panic("failed to build scheduler client: " + err.Error())
	}
	defer client.Close()

	dispatcher := scheduler.NewDispatcher(cfg, client, guesthouses, log)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		dispatcher.Run(ctx)
	}()

	wg.Wait()
	log.Info("scheduler stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return lastErr
}
