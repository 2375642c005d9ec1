// Package service implements the guesthouse business rules: owner scoping,
// attribute validation, and phone normalization.
package service

import (
	"context"
	"fmt"
	"time"

	"guesthouse_backend/internal/assessment/domain"
	"guesthouse_backend/internal/guesthouses/repository"
	"guesthouse_backend/internal/guesthouses/transport"
	"guesthouse_backend/platform/apperr"
	"guesthouse_backend/platform/logger"
	"guesthouse_backend/platform/phone"

	"github.com/google/uuid"
)

const guesthouseForbiddenMessage = "guesthouse belongs to another owner"

// Service owns guesthouse CRUD.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new guesthouse service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create validates and stores a new guesthouse for the owner.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req transport.CreateGuesthouseRequest) (transport.GuesthouseResponse, error) {
	if err := validateConstructionYear(req.ConstructionYear); err != nil {
		return transport.GuesthouseResponse{}, err
	}

	params := repository.CreateParams{
		OwnerID:           ownerID,
		Name:              req.Name,
		Address:           req.Address,
		City:              req.City,
		ContactPhone:      normalizePhone(req.ContactPhone),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Floors:            req.Floors,
		Rooms:             req.Rooms,
		ConstructionYear:  req.ConstructionYear,
		BuildingType:      req.BuildingType,
		StairSafety:       req.StairSafety,
		FireExtinguishers: req.FireExtinguishers,
		SmokeDetectors:    req.SmokeDetectors,
		EmergencyExits:    req.EmergencyExits,
		HasFirstAidKit:    req.HasFirstAidKit,
	}

	g, err := s.repo.Create(ctx, params)
	if err != nil {
		s.log.DatabaseError("create guesthouse", err)
		return transport.GuesthouseResponse{}, err
	}
	return toResponse(g), nil
}

// Get returns one of the owner's guesthouses.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (transport.GuesthouseResponse, error) {
	g, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return transport.GuesthouseResponse{}, err
	}
	return toResponse(g), nil
}

// GetRecord returns the raw owned record; the assessment orchestrator uses
// this to build an engine profile.
func (s *Service) GetRecord(ctx context.Context, ownerID, id uuid.UUID) (repository.Guesthouse, error) {
	return s.getOwned(ctx, ownerID, id)
}

// List returns every guesthouse of the owner.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) (transport.ListGuesthousesResponse, error) {
	records, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.DatabaseError("list guesthouses", err)
		return transport.ListGuesthousesResponse{}, err
	}

	resp := transport.ListGuesthousesResponse{
		Guesthouses: make([]transport.GuesthouseResponse, 0, len(records)),
		Count:       len(records),
	}
	for _, g := range records {
		resp.Guesthouses = append(resp.Guesthouses, toResponse(g))
	}
	return resp, nil
}

// Update applies a partial update to an owned guesthouse.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req transport.UpdateGuesthouseRequest) (transport.GuesthouseResponse, error) {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return transport.GuesthouseResponse{}, err
	}
	if req.ConstructionYear != nil {
		if err := validateConstructionYear(*req.ConstructionYear); err != nil {
			return transport.GuesthouseResponse{}, err
		}
	}

	params := repository.UpdateParams{
		ID:                id,
		Name:              req.Name,
		Address:           req.Address,
		City:              req.City,
		ContactPhone:      normalizePhone(req.ContactPhone),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		Floors:            req.Floors,
		Rooms:             req.Rooms,
		ConstructionYear:  req.ConstructionYear,
		BuildingType:      req.BuildingType,
		StairSafety:       req.StairSafety,
		FireExtinguishers: req.FireExtinguishers,
		SmokeDetectors:    req.SmokeDetectors,
		EmergencyExits:    req.EmergencyExits,
		HasFirstAidKit:    req.HasFirstAidKit,
	}

	g, err := s.repo.Update(ctx, params)
	if err != nil {
		return transport.GuesthouseResponse{}, err
	}
	return toResponse(g), nil
}

// Delete removes an owned guesthouse and its assessment history.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// getOwned loads a guesthouse and enforces ownership: a missing row is 404,
// a foreign row is 403.
func (s *Service) getOwned(ctx context.Context, ownerID, id uuid.UUID) (repository.Guesthouse, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Guesthouse{}, err
	}
	if g.OwnerID != ownerID {
		return repository.Guesthouse{}, apperr.Forbidden(guesthouseForbiddenMessage)
	}
	return g, nil
}

func validateConstructionYear(year int) error {
	currentYear := time.Now().Year()
	if year < domain.EarliestConstructionYear || year > currentYear {
		return apperr.Validation(
			fmt.Sprintf("construction year must be between %d and %d", domain.EarliestConstructionYear, currentYear),
		).WithDetails("constructionYear")
	}
	return nil
}

func normalizePhone(input *string) *string {
	if input == nil {
		return nil
	}
	normalized := phone.NormalizeE164(*input)
	return &normalized
}

func toResponse(g repository.Guesthouse) transport.GuesthouseResponse {
	return transport.GuesthouseResponse{
		ID:                g.ID,
		Name:              g.Name,
		Address:           g.Address,
		City:              g.City,
		ContactPhone:      g.ContactPhone,
		Latitude:          g.Latitude,
		Longitude:         g.Longitude,
		Floors:            g.Floors,
		Rooms:             g.Rooms,
		ConstructionYear:  g.ConstructionYear,
		BuildingType:      g.BuildingType,
		StairSafety:       g.StairSafety,
		FireExtinguishers: g.FireExtinguishers,
		SmokeDetectors:    g.SmokeDetectors,
		EmergencyExits:    g.EmergencyExits,
		HasFirstAidKit:    g.HasFirstAidKit,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
}
