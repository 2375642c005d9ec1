// Package repository persists assessment history rows.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"guesthouse_backend/internal/assessment/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Assessment is one stored assessment run for a guesthouse.
type Assessment struct {
	ID                      uuid.UUID
	GuesthouseID            uuid.UUID
	Score                   int
	Category                string
	BaselineScore           int
	EnvironmentalAdjustment float64
	EnvironmentalDataUsed   bool
	ScoreVersion            string
	Findings                []domain.Finding
	Deficiencies            []domain.Deficiency
	GrandTotalMillimes      int64
	Currency                string
	CreatedAt               time.Time
}

// InsertParams holds the attributes of a new assessment row.
type InsertParams struct {
	GuesthouseID            uuid.UUID
	Score                   int
	Category                string
	BaselineScore           int
	EnvironmentalAdjustment float64
	EnvironmentalDataUsed   bool
	ScoreVersion            string
	Findings                []domain.Finding
	Deficiencies            []domain.Deficiency
	GrandTotalMillimes      int64
	Currency                string
}

// Repository defines persistence operations for assessment history.
type Repository interface {
	Insert(ctx context.Context, params InsertParams) (Assessment, error)
	ListByGuesthouse(ctx context.Context, guesthouseID uuid.UUID, limit int) ([]Assessment, error)
}

// Repo is the pgx-backed implementation of Repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new assessment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const assessmentColumns = `id, guesthouse_id, score, category, baseline_score,
	environmental_adjustment, environmental_data_used, score_version,
	findings, deficiencies, grand_total_millimes, currency, created_at`

// Insert stores a completed assessment run.
func (r *Repo) Insert(ctx context.Context, params InsertParams) (Assessment, error) {
	findingsJSON, err := json.Marshal(params.Findings)
	if err != nil {
		return Assessment{}, fmt.Errorf("marshal findings: %w", err)
	}
	deficienciesJSON, err := json.Marshal(params.Deficiencies)
	if err != nil {
		return Assessment{}, fmt.Errorf("marshal deficiencies: %w", err)
	}

	query := `
		INSERT INTO assessments (
			guesthouse_id, score, category, baseline_score,
			environmental_adjustment, environmental_data_used, score_version,
			findings, deficiencies, grand_total_millimes, currency
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + assessmentColumns

	row := r.pool.QueryRow(ctx, query,
		params.GuesthouseID, params.Score, params.Category, params.BaselineScore,
		params.EnvironmentalAdjustment, params.EnvironmentalDataUsed, params.ScoreVersion,
		findingsJSON, deficienciesJSON, params.GrandTotalMillimes, params.Currency,
	)
	a, err := scanAssessment(row)
	if err != nil {
		return Assessment{}, fmt.Errorf("insert assessment: %w", err)
	}
	return a, nil
}

// ListByGuesthouse returns the most recent assessments for a guesthouse,
// newest first.
func (r *Repo) ListByGuesthouse(ctx context.Context, guesthouseID uuid.UUID, limit int) ([]Assessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM assessments
		WHERE guesthouse_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, guesthouseID, limit)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	assessments := make([]Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	return assessments, nil
}

func scanAssessment(row pgx.Row) (Assessment, error) {
	var (
		a                Assessment
		findingsJSON     []byte
		deficienciesJSON []byte
	)
	err := row.Scan(
		&a.ID, &a.GuesthouseID, &a.Score, &a.Category, &a.BaselineScore,
		&a.EnvironmentalAdjustment, &a.EnvironmentalDataUsed, &a.ScoreVersion,
		&findingsJSON, &deficienciesJSON, &a.GrandTotalMillimes, &a.Currency, &a.CreatedAt,
	)
	if err != nil {
		return Assessment{}, err
	}
	if len(findingsJSON) > 0 {
		if err := json.Unmarshal(findingsJSON, &a.Findings); err != nil {
			return Assessment{}, fmt.Errorf("decode findings: %w", err)
		}
	}
	if len(deficienciesJSON) > 0 {
		if err := json.Unmarshal(deficienciesJSON, &a.Deficiencies); err != nil {
			return Assessment{}, fmt.Errorf("decode deficiencies: %w", err)
		}
	}
	return a, nil
}
