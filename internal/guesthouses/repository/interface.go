package repository

import (
	"context"
	"time"

	"guesthouse_backend/internal/assessment/domain"

	"github.com/google/uuid"
)

// Guesthouse is the storage shape of a guesthouse record.
type Guesthouse struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Name             string
	Address          string
	City             string
	ContactPhone     *string
	Latitude         float64
	Longitude        float64
	Floors           int
	Rooms            int
	ConstructionYear int
	BuildingType     string
	StairSafety      string

	FireExtinguishers int
	SmokeDetectors    int
	EmergencyExits    int
	HasFirstAidKit    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile converts the record to the engine-facing profile.
func (g Guesthouse) Profile() domain.GuesthouseProfile {
	return domain.GuesthouseProfile{
		ConstructionYear:  g.ConstructionYear,
		Floors:            g.Floors,
		Rooms:             g.Rooms,
		BuildingType:      domain.BuildingType(g.BuildingType),
		StairSafety:       domain.StairSafety(g.StairSafety),
		FireExtinguishers: g.FireExtinguishers,
		SmokeDetectors:    g.SmokeDetectors,
		EmergencyExits:    g.EmergencyExits,
		HasFirstAidKit:    g.HasFirstAidKit,
		Latitude:          g.Latitude,
		Longitude:         g.Longitude,
	}
}

// CreateParams holds the attributes of a new guesthouse.
type CreateParams struct {
	OwnerID          uuid.UUID
	Name             string
	Address          string
	City             string
	ContactPhone     *string
	Latitude         float64
	Longitude        float64
	Floors           int
	Rooms            int
	ConstructionYear int
	BuildingType     string
	StairSafety      string

	FireExtinguishers int
	SmokeDetectors    int
	EmergencyExits    int
	HasFirstAidKit    bool
}

// UpdateParams holds a partial update; nil fields keep their stored value.
type UpdateParams struct {
	ID               uuid.UUID
	Name             *string
	Address          *string
	City             *string
	ContactPhone     *string
	Latitude         *float64
	Longitude        *float64
	Floors           *int
	Rooms            *int
	ConstructionYear *int
	BuildingType     *string
	StairSafety      *string

	FireExtinguishers *int
	SmokeDetectors    *int
	EmergencyExits    *int
	HasFirstAidKit    *bool
}

// Repository is the guesthouse persistence boundary.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Guesthouse, error)
	GetByID(ctx context.Context, id uuid.UUID) (Guesthouse, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Guesthouse, error)
	// ListAll returns every guesthouse; used by the refresh scheduler and
	// the backfill command.
	ListAll(ctx context.Context) ([]Guesthouse, error)
	Update(ctx context.Context, params UpdateParams) (Guesthouse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
