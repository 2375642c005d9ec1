// Package domain holds the shared data contracts of the safety assessment
// and cost estimation engines. Both engines are pure functions over these
// value types; nothing here touches persistence or transport.
package domain

import (
	"fmt"
	"time"

	"guesthouse_backend/platform/apperr"
)

// BuildingType categorizes construction style; it drives installation
// complexity multipliers and compliance fees.
type BuildingType string

const (
	BuildingTraditional BuildingType = "traditional"
	BuildingModern      BuildingType = "modern"
	BuildingRenovated   BuildingType = "renovated"
)

// Valid reports whether the building type is a known value.
func (b BuildingType) Valid() bool {
	switch b {
	case BuildingTraditional, BuildingModern, BuildingRenovated:
		return true
	}
	return false
}

// StairSafety is the enumerated safety level of the staircases.
type StairSafety string

const (
	// StairSafetyNone means neither handrails nor slip resistance.
	StairSafetyNone StairSafety = "none"
	// StairSafetyHandrails means handrails present, no slip resistance.
	StairSafetyHandrails StairSafety = "handrails"
	// StairSafetyFull means handrails and slip-resistant surfaces.
	StairSafetyFull StairSafety = "full"
)

// Valid reports whether the stair safety level is a known value.
func (s StairSafety) Valid() bool {
	switch s {
	case StairSafetyNone, StairSafetyHandrails, StairSafetyFull:
		return true
	}
	return false
}

// EarliestConstructionYear bounds the plausible historical range for
// construction years. Anything older is treated as a data entry error.
const EarliestConstructionYear = 1800

// GuesthouseProfile is the engine-facing view of a guesthouse record,
// decoupled from storage. It is owned by the caller and immutable during an
// assessment.
type GuesthouseProfile struct {
	ConstructionYear  int
	Floors            int
	Rooms             int
	BuildingType      BuildingType
	StairSafety       StairSafety
	FireExtinguishers int
	SmokeDetectors    int
	EmergencyExits    int
	HasFirstAidKit    bool
	Latitude          float64
	Longitude         float64
}

// Validate re-checks the profile invariants. Callers are expected to reject
// bad attributes before the engines run; this is the engine-side guard that
// turns a violated precondition into an explicit validation error instead of
// a silently wrong score.
func (p GuesthouseProfile) Validate(now time.Time) error {
	if p.Floors < 1 {
		return apperr.Validation("floor count must be at least 1").WithDetails("floors")
	}
	if p.Rooms < 1 {
		return apperr.Validation("room count must be at least 1").WithDetails("rooms")
	}
	if p.ConstructionYear < EarliestConstructionYear || p.ConstructionYear > now.Year() {
		return apperr.Validation(
			fmt.Sprintf("construction year must be between %d and %d", EarliestConstructionYear, now.Year()),
		).WithDetails("constructionYear")
	}
	if !p.BuildingType.Valid() {
		return apperr.Validation("unknown building type").WithDetails("buildingType")
	}
	if !p.StairSafety.Valid() {
		return apperr.Validation("unknown stair safety level").WithDetails("stairSafety")
	}
	if p.FireExtinguishers < 0 || p.SmokeDetectors < 0 || p.EmergencyExits < 0 {
		return apperr.Validation("equipment counts cannot be negative").WithDetails("equipment")
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return apperr.Validation("latitude out of range").WithDetails("latitude")
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return apperr.Validation("longitude out of range").WithDetails("longitude")
	}
	return nil
}

// HasStairHandrails reports whether the profile's stairs have handrails.
func (p GuesthouseProfile) HasStairHandrails() bool {
	return p.StairSafety == StairSafetyHandrails || p.StairSafety == StairSafetyFull
}

// HasSlipResistantStairs reports whether the profile's stairs are slip resistant.
func (p GuesthouseProfile) HasSlipResistantStairs() bool {
	return p.StairSafety == StairSafetyFull
}
