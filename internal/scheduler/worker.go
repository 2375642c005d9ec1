package scheduler

import (
	"context"
	"fmt"

	assessmentservice "guesthouse_backend/internal/assessment/service"
	"guesthouse_backend/internal/config"
	ghrepository "guesthouse_backend/internal/guesthouses/repository"
	"guesthouse_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Worker consumes assessment refresh tasks and recomputes baseline
// assessments.
type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	guesthouses ghrepository.Repository
	assessments *assessmentservice.Service
	log         *logger.Logger
}

// NewWorker creates an asynq worker bound to the refresh task.
func NewWorker(cfg *config.Config, guesthouses ghrepository.Repository, assessments *assessmentservice.Service, log *logger.Logger) (*Worker, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.AsynqQueueName
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.AsynqConcurrency
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:      server,
		mux:         mux,
		guesthouses: guesthouses,
		assessments: assessments,
		log:         log,
	}

	mux.HandleFunc(TaskAssessmentRefresh, w.handleAssessmentRefresh)

	return w, nil
}

func (w *Worker) handleAssessmentRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAssessmentRefreshPayload(task)
	if err != nil {
		return err
	}

	guesthouseID, err := uuid.Parse(payload.GuesthouseID)
	if err != nil {
		return err
	}

	g, err := w.guesthouses.GetByID(ctx, guesthouseID)
	if err != nil {
		// The guesthouse may have been deleted since enqueueing.
		w.log.Warn("refresh skipped", "guesthouseId", payload.GuesthouseID, "error", err)
		return nil
	}

	return w.assessments.RecomputeBaseline(ctx, g)
}

// Run serves tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
