// Package service orchestrates safety assessment runs: it joins the
// guesthouse record, the environmental snapshot, and the two engines, and
// records the outcome.
package service

import (
	"context"
	"fmt"
	"time"

	"guesthouse_backend/internal/assessment/domain"
	"guesthouse_backend/internal/assessment/pricing"
	"guesthouse_backend/internal/assessment/repository"
	"guesthouse_backend/internal/assessment/scoring"
	"guesthouse_backend/internal/assessment/transport"
	authrepository "guesthouse_backend/internal/auth/repository"
	"guesthouse_backend/internal/email"
	ghrepository "guesthouse_backend/internal/guesthouses/repository"
	"guesthouse_backend/platform/logger"

	"github.com/google/uuid"
)

const defaultHistoryLimit = 20

// GuesthouseSource provides ownership-scoped access to guesthouse records.
type GuesthouseSource interface {
	GetRecord(ctx context.Context, ownerID, id uuid.UUID) (ghrepository.Guesthouse, error)
}

// EnvironmentProvider fetches the transient environmental snapshot for a
// location. It degrades rather than fails, so it returns no error.
type EnvironmentProvider interface {
	Snapshot(ctx context.Context, lat, lon float64) *domain.EnvironmentalSnapshot
}

// OwnerDirectory resolves owner contact details for notifications.
type OwnerDirectory interface {
	GetOwnerByID(ctx context.Context, id uuid.UUID) (authrepository.Owner, error)
}

// Service runs assessments and serves their stored history.
type Service struct {
	guesthouses GuesthouseSource
	owners      OwnerDirectory
	env         EnvironmentProvider
	scorer      *scoring.Engine
	pricer      *pricing.Engine
	repo        repository.Repository
	mail        email.Sender
	log         *logger.Logger
}

// New creates a new assessment service. The owner directory and mail sender
// may be nil for callers that only recompute baselines.
func New(guesthouses GuesthouseSource, owners OwnerDirectory, env EnvironmentProvider, scorer *scoring.Engine, pricer *pricing.Engine, repo repository.Repository, mail email.Sender, log *logger.Logger) *Service {
	return &Service{
		guesthouses: guesthouses,
		owners:      owners,
		env:         env,
		scorer:      scorer,
		pricer:      pricer,
		repo:        repo,
		mail:        mail,
		log:         log,
	}
}

// Assess runs a full assessment for the owner's guesthouse: environmental
// fetch, scoring, cost estimation, and a history row. The snapshot is echoed
// in the response so callers can see what informed the score.
func (s *Service) Assess(ctx context.Context, ownerID, guesthouseID uuid.UUID) (transport.SafetyAssessmentResponse, error) {
	g, err := s.guesthouses.GetRecord(ctx, ownerID, guesthouseID)
	if err != nil {
		return transport.SafetyAssessmentResponse{}, err
	}

	env := s.env.Snapshot(ctx, g.Latitude, g.Longitude)
	result, report, err := s.run(ctx, g, env)
	if err != nil {
		return transport.SafetyAssessmentResponse{}, err
	}

	s.notifyOwner(ctx, ownerID, g.Name, result)

	return transport.SafetyAssessmentResponse{
		GuesthouseID: g.ID,
		Assessment:   result,
		CostEstimate: report,
		Environment:  env,
	}, nil
}

// History returns stored assessment runs for the owner's guesthouse, newest
// first.
func (s *Service) History(ctx context.Context, ownerID, guesthouseID uuid.UUID, limit int) (transport.AssessmentHistoryResponse, error) {
	g, err := s.guesthouses.GetRecord(ctx, ownerID, guesthouseID)
	if err != nil {
		return transport.AssessmentHistoryResponse{}, err
	}

	if limit <= 0 || limit > 100 {
		limit = defaultHistoryLimit
	}
	rows, err := s.repo.ListByGuesthouse(ctx, g.ID, limit)
	if err != nil {
		s.log.DatabaseError("list_assessments", err)
		return transport.AssessmentHistoryResponse{}, err
	}

	entries := make([]transport.AssessmentHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toHistoryEntry(row))
	}
	return transport.AssessmentHistoryResponse{
		GuesthouseID: g.ID,
		Assessments:  entries,
		Count:        len(entries),
	}, nil
}

// RecomputeBaseline reruns scoring and pricing for a guesthouse without an
// environmental fetch and stores the result. The scheduler and the backfill
// command use it to keep history warm.
func (s *Service) RecomputeBaseline(ctx context.Context, g ghrepository.Guesthouse) error {
	_, _, err := s.run(ctx, g, nil)
	return err
}

// notifyOwner emails the assessment outcome. Delivery is best effort: a
// failed lookup or send never fails the assessment itself.
func (s *Service) notifyOwner(ctx context.Context, ownerID uuid.UUID, guesthouseName string, result *domain.SafetyAssessmentResult) {
	if s.owners == nil || s.mail == nil {
		return
	}
	owner, err := s.owners.GetOwnerByID(ctx, ownerID)
	if err != nil {
		s.log.DatabaseError("get_owner_for_notification", err)
		return
	}
	if err := s.mail.SendAssessmentReadyEmail(ctx, owner.Email, guesthouseName, result.Score, string(result.Category)); err != nil {
		s.log.ExternalAPIError("smtp", err)
	}
}

func (s *Service) run(ctx context.Context, g ghrepository.Guesthouse, env *domain.EnvironmentalSnapshot) (*domain.SafetyAssessmentResult, *domain.CostEstimationReport, error) {
	profile := g.Profile()

	result, err := s.scorer.Assess(profile, env, time.Now().UTC())
	if err != nil {
		return nil, nil, fmt.Errorf("score guesthouse %s: %w", g.ID, err)
	}

	report, err := s.pricer.Estimate(profile, result.Deficiencies)
	if err != nil {
		return nil, nil, fmt.Errorf("estimate guesthouse %s: %w", g.ID, err)
	}

	if _, err := s.repo.Insert(ctx, repository.InsertParams{
		GuesthouseID:            g.ID,
		Score:                   result.Score,
		Category:                string(result.Category),
		BaselineScore:           result.BaselineScore,
		EnvironmentalAdjustment: result.EnvironmentalAdjustment,
		EnvironmentalDataUsed:   result.EnvironmentalDataUsed,
		ScoreVersion:            result.ScoreVersion,
		Findings:                result.Findings,
		Deficiencies:            result.Deficiencies,
		GrandTotalMillimes:      report.GrandTotalMillimes,
		Currency:                report.Currency,
	}); err != nil {
		s.log.DatabaseError("insert_assessment", err)
		return nil, nil, err
	}

	s.log.AssessmentComputed(g.ID.String(), result.Score, string(result.Category), result.EnvironmentalDataUsed)
	return result, report, nil
}

func toHistoryEntry(a repository.Assessment) transport.AssessmentHistoryEntry {
	return transport.AssessmentHistoryEntry{
		ID:                      a.ID,
		Score:                   a.Score,
		Category:                a.Category,
		BaselineScore:           a.BaselineScore,
		EnvironmentalAdjustment: a.EnvironmentalAdjustment,
		EnvironmentalDataUsed:   a.EnvironmentalDataUsed,
		ScoreVersion:            a.ScoreVersion,
		Deficiencies:            a.Deficiencies,
		GrandTotalMillimes:      a.GrandTotalMillimes,
		Currency:                a.Currency,
		CreatedAt:               a.CreatedAt,
	}
}
