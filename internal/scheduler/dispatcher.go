package scheduler

import (
	"context"
	"time"

	"guesthouse_backend/internal/config"
	ghrepository "guesthouse_backend/internal/guesthouses/repository"
	"guesthouse_backend/platform/logger"
)

// Dispatcher enqueues a refresh task for every guesthouse on a fixed
// interval so assessment history stays warm.
type Dispatcher struct {
	client      *Client
	guesthouses ghrepository.Repository
	interval    time.Duration
	log         *logger.Logger
}

// NewDispatcher creates a fleet-wide refresh dispatcher.
func NewDispatcher(cfg *config.Config, client *Client, guesthouses ghrepository.Repository, log *logger.Logger) *Dispatcher {
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	return &Dispatcher{
		client:      client,
		guesthouses: guesthouses,
		interval:    interval,
		log:         log,
	}
}

// Run dispatches refresh rounds until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		d.dispatchRound(ctx)
	}
}

func (d *Dispatcher) dispatchRound(ctx context.Context) {
	guesthouses, err := d.guesthouses.ListAll(ctx)
	if err != nil {
		d.log.Warn("refresh round skipped", "error", err)
		return
	}

	enqueued := 0
	for _, g := range guesthouses {
		err := d.client.EnqueueAssessmentRefresh(ctx, AssessmentRefreshPayload{
			GuesthouseID: g.ID.String(),
		})
		if err != nil {
			d.log.Warn("refresh enqueue failed", "guesthouseId", g.ID.String(), "error", err)
			continue
		}
		enqueued++
	}

	d.log.Info("refresh round dispatched", "guesthouses", len(guesthouses), "enqueued", enqueued)
}
