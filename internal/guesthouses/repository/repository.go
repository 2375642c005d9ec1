package repository

import (
	"context"
	"errors"
	"fmt"

	"guesthouse_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const guesthouseNotFoundMessage = "guesthouse not found"

const guesthouseColumns = `
	id, owner_id, name, address, city, contact_phone,
	latitude, longitude, floors, rooms, construction_year,
	building_type, stair_safety,
	fire_extinguishers, smoke_detectors, emergency_exits, has_first_aid_kit,
	created_at, updated_at`

// Repo implements the guesthouse repository on PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new guesthouse repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanGuesthouse(row pgx.Row) (Guesthouse, error) {
	var g Guesthouse
	err := row.Scan(
		&g.ID, &g.OwnerID, &g.Name, &g.Address, &g.City, &g.ContactPhone,
		&g.Latitude, &g.Longitude, &g.Floors, &g.Rooms, &g.ConstructionYear,
		&g.BuildingType, &g.StairSafety,
		&g.FireExtinguishers, &g.SmokeDetectors, &g.EmergencyExits, &g.HasFirstAidKit,
		&g.CreatedAt, &g.UpdatedAt,
	)
	return g, err
}

// Create inserts a guesthouse.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Guesthouse, error) {
	query := `
		INSERT INTO guesthouses (
			owner_id, name, address, city, contact_phone,
			latitude, longitude, floors, rooms, construction_year,
			building_type, stair_safety,
			fire_extinguishers, smoke_detectors, emergency_exits, has_first_aid_kit
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING` + guesthouseColumns

	g, err := scanGuesthouse(r.pool.QueryRow(ctx, query,
		params.OwnerID, params.Name, params.Address, params.City, params.ContactPhone,
		params.Latitude, params.Longitude, params.Floors, params.Rooms, params.ConstructionYear,
		params.BuildingType, params.StairSafety,
		params.FireExtinguishers, params.SmokeDetectors, params.EmergencyExits, params.HasFirstAidKit,
	))
	if err != nil {
		return Guesthouse{}, fmt.Errorf("create guesthouse: %w", err)
	}
	return g, nil
}

// GetByID retrieves a guesthouse by ID. Ownership checks live in the
// service so a foreign row can be told apart from a missing one.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Guesthouse, error) {
	query := `SELECT` + guesthouseColumns + ` FROM guesthouses WHERE id = $1`

	g, err := scanGuesthouse(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Guesthouse{}, apperr.NotFound(guesthouseNotFoundMessage)
		}
		return Guesthouse{}, fmt.Errorf("get guesthouse by id: %w", err)
	}
	return g, nil
}

// ListByOwner lists an owner's guesthouses, newest first.
func (r *Repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Guesthouse, error) {
	query := `SELECT` + guesthouseColumns + ` FROM guesthouses WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list guesthouses: %w", err)
	}
	defer rows.Close()

	return collectGuesthouses(rows)
}

// ListAll lists every guesthouse, oldest first for stable batch order.
func (r *Repo) ListAll(ctx context.Context) ([]Guesthouse, error) {
	query := `SELECT` + guesthouseColumns + ` FROM guesthouses ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all guesthouses: %w", err)
	}
	defer rows.Close()

	return collectGuesthouses(rows)
}

func collectGuesthouses(rows pgx.Rows) ([]Guesthouse, error) {
	guesthouses := make([]Guesthouse, 0)
	for rows.Next() {
		g, err := scanGuesthouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guesthouse: %w", err)
		}
		guesthouses = append(guesthouses, g)
	}
	return guesthouses, rows.Err()
}

// Update applies a partial update.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Guesthouse, error) {
	query := `
		UPDATE guesthouses
		SET name = COALESCE($2, name),
			address = COALESCE($3, address),
			city = COALESCE($4, city),
			contact_phone = COALESCE($5, contact_phone),
			latitude = COALESCE($6, latitude),
			longitude = COALESCE($7, longitude),
			floors = COALESCE($8, floors),
			rooms = COALESCE($9, rooms),
			construction_year = COALESCE($10, construction_year),
			building_type = COALESCE($11, building_type),
			stair_safety = COALESCE($12, stair_safety),
			fire_extinguishers = COALESCE($13, fire_extinguishers),
			smoke_detectors = COALESCE($14, smoke_detectors),
			emergency_exits = COALESCE($15, emergency_exits),
			has_first_aid_kit = COALESCE($16, has_first_aid_kit),
			updated_at = now()
		WHERE id = $1
		RETURNING` + guesthouseColumns

	g, err := scanGuesthouse(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Address, params.City, params.ContactPhone,
		params.Latitude, params.Longitude, params.Floors, params.Rooms, params.ConstructionYear,
		params.BuildingType, params.StairSafety,
		params.FireExtinguishers, params.SmokeDetectors, params.EmergencyExits, params.HasFirstAidKit,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Guesthouse{}, apperr.NotFound(guesthouseNotFoundMessage)
		}
		return Guesthouse{}, fmt.Errorf("update guesthouse: %w", err)
	}
	return g, nil
}

// Delete removes a guesthouse; assessment history cascades in the schema.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM guesthouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete guesthouse: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(guesthouseNotFoundMessage)
	}
	return nil
}
