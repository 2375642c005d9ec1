package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guesthouse_backend/internal/assessment"
	"guesthouse_backend/internal/assessment/pricing"
	"guesthouse_backend/internal/assessment/scoring"
	"guesthouse_backend/internal/auth"
	"guesthouse_backend/internal/config"
	"guesthouse_backend/internal/email"
	"guesthouse_backend/internal/environment"
	"guesthouse_backend/internal/guesthouses"
	apphttp "guesthouse_backend/internal/http"
	"guesthouse_backend/internal/http/router"
	"guesthouse_backend/platform/db"
	"guesthouse_backend/platform/logger"
	"guesthouse_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting api", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg.DatabaseURL, cfg.MigrationsDir)
	}); err != nil {
		log.Error("failed to run migrations", "error", err)
		panic("failed to run migrations: " + err.Error())
	}

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

	mailer := newSender(cfg, log)
	val := validator.New()

	scoringCfg, err := scoring.LoadConfig(cfg.ScoringConfigPath)
	if err != nil {
		log.Error("failed to load scoring config", "error", err)
		panic("failed to load scoring config: " + err.Error())
	}
	scorer, err := scoring.NewEngine(scoringCfg)
	if err != nil {
		panic("failed to build scoring engine: " + err.Error())
	}

	pricingCfg, err := pricing.LoadConfig(cfg.PricingConfigPath)
	if err != nil {
		log.Error("failed to load pricing config", "error", err)
		panic("failed to load pricing config: " + err.Error())
	}
	pricer, err := pricing.NewEngine(pricingCfg)
	if err != nil {
		panic("failed to build pricing engine: " + err.Error())
	}

	envService := newEnvironmentService(cfg, scoringCfg, log)

	authModule := auth.NewModule(pool, cfg, mailer, val, log)
	guesthousesModule := guesthouses.NewModule(pool, val, log)
	assessmentModule := assessment.NewModule(pool, guesthousesModule.Service(), envService, mailer, scorer, pricer, log)

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			authModule,
			guesthousesModule,
			assessmentModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func newSender(cfg *config.Config, log *logger.Logger) email.Sender {
	if !cfg.EmailEnabled {
		log.Warn("SMTP not configured; email disabled")
		return email.NoopSender{}
	}
	return email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFromAddress, cfg.EmailFromName)
}

func newEnvironmentService(cfg *config.Config, scoringCfg scoring.Config, log *logger.Logger) *environment.Service {
	weather := environment.NewWeatherClient(cfg.WeatherAPIURL, log)
	facilities := environment.NewFacilitiesClient(cfg.OverpassAPIURL, log)

	var cache *environment.SnapshotCache
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Warn("invalid REDIS_URL; snapshot cache disabled", "error", err)
		} else {
			cache = environment.NewSnapshotCache(redis.NewClient(opt), cfg.SnapshotCacheTTL)
		}
	}

	return environment.NewService(weather, facilities, cache, scoringCfg.WidestFacilityRadiusKM(), log)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

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
	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
