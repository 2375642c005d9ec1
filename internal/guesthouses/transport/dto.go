// Package transport defines the request and response DTOs of the
// guesthouses API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateGuesthouseRequest creates a guesthouse record. Construction year is
// range-checked in the service since the upper bound is the current year.
type CreateGuesthouseRequest struct {
	Name             string  `json:"name" validate:"required,min=2,max=120"`
	Address          string  `json:"address" validate:"required,min=5,max=255"`
	City             string  `json:"city" validate:"omitempty,max=80"`
	ContactPhone     *string `json:"contactPhone" validate:"omitempty,min=6,max=20"`
	Latitude         float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude        float64 `json:"longitude" validate:"min=-180,max=180"`
	Floors           int     `json:"floors" validate:"required,min=1,max=30"`
	Rooms            int     `json:"rooms" validate:"required,min=1,max=300"`
	ConstructionYear int     `json:"constructionYear" validate:"required"`
	BuildingType     string  `json:"buildingType" validate:"required,oneof=traditional modern renovated"`
	StairSafety      string  `json:"stairSafety" validate:"required,oneof=none handrails full"`

	FireExtinguishers int  `json:"fireExtinguishers" validate:"min=0"`
	SmokeDetectors    int  `json:"smokeDetectors" validate:"min=0"`
	EmergencyExits    int  `json:"emergencyExits" validate:"min=0"`
	HasFirstAidKit    bool `json:"hasFirstAidKit"`
}

// UpdateGuesthouseRequest partially updates a guesthouse; absent fields are
// left untouched.
type UpdateGuesthouseRequest struct {
	Name             *string  `json:"name" validate:"omitempty,min=2,max=120"`
	Address          *string  `json:"address" validate:"omitempty,min=5,max=255"`
	City             *string  `json:"city" validate:"omitempty,max=80"`
	ContactPhone     *string  `json:"contactPhone" validate:"omitempty,min=6,max=20"`
	Latitude         *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude        *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Floors           *int     `json:"floors" validate:"omitempty,min=1,max=30"`
	Rooms            *int     `json:"rooms" validate:"omitempty,min=1,max=300"`
	ConstructionYear *int     `json:"constructionYear"`
	BuildingType     *string  `json:"buildingType" validate:"omitempty,oneof=traditional modern renovated"`
	StairSafety      *string  `json:"stairSafety" validate:"omitempty,oneof=none handrails full"`

	FireExtinguishers *int  `json:"fireExtinguishers" validate:"omitempty,min=0"`
	SmokeDetectors    *int  `json:"smokeDetectors" validate:"omitempty,min=0"`
	EmergencyExits    *int  `json:"emergencyExits" validate:"omitempty,min=0"`
	HasFirstAidKit    *bool `json:"hasFirstAidKit"`
}

// GuesthouseResponse is the API shape of a guesthouse record.
type GuesthouseResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Address          string    `json:"address"`
	City             string    `json:"city,omitempty"`
	ContactPhone     *string   `json:"contactPhone,omitempty"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Floors           int       `json:"floors"`
	Rooms            int       `json:"rooms"`
	ConstructionYear int       `json:"constructionYear"`
	BuildingType     string    `json:"buildingType"`
	StairSafety      string    `json:"stairSafety"`

	FireExtinguishers int  `json:"fireExtinguishers"`
	SmokeDetectors    int  `json:"smokeDetectors"`
	EmergencyExits    int  `json:"emergencyExits"`
	HasFirstAidKit    bool `json:"hasFirstAidKit"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListGuesthousesResponse wraps the list endpoint payload.
type ListGuesthousesResponse struct {
	Guesthouses []GuesthouseResponse `json:"guesthouses"`
	Count       int                  `json:"count"`
}
