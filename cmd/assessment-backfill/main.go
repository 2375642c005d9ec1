// Command assessment-backfill recomputes a baseline assessment for every
// guesthouse once and exits. It is the operator-run variant of the
// scheduler's refresh round, useful after a score version bump.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"guesthouse_backend/internal/assessment/pricing"
	assessmentrepo "guesthouse_backend/internal/assessment/repository"
	"guesthouse_backend/internal/assessment/scoring"
	assessmentservice "guesthouse_backend/internal/assessment/service"
	"guesthouse_backend/internal/config"
	ghrepo "guesthouse_backend/internal/guesthouses/repository"
	"guesthouse_backend/platform/db"
	"guesthouse_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting assessment backfill", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
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
	assessments := assessmentservice.New(nil, nil, nil, scorer, pricer, assessmentrepo.New(pool), nil, log)

	records, err := guesthouses.ListAll(ctx)
	if err != nil {
		log.Error("failed to list guesthouses", "error", err)
		panic("failed to list guesthouses: " + err.Error())
	}

	processed, failed := 0, 0
	for _, g := range records {
		if ctx.Err() != nil {
			break
		}
		if err := assessments.RecomputeBaseline(ctx, g); err != nil {
			log.Warn("backfill failed for guesthouse", "guesthouseId", g.ID.String(), "error", err)
			failed++
			continue
		}
		processed++
	}

	log.Info("backfill finished", "processed", processed, "failed", failed, "total", len(records))
}
