package scoring

import (
	"reflect"
	"testing"
	"time"

	"guesthouse_backend/internal/assessment/domain"
	"guesthouse_backend/platform/apperr"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

// fullyEquipped is a two-floor, four-room guesthouse meeting every
// requirement, built five years ago.
func fullyEquipped() domain.GuesthouseProfile {
	return domain.GuesthouseProfile{
		ConstructionYear:  2021,
		Floors:            2,
		Rooms:             4,
		BuildingType:      domain.BuildingModern,
		StairSafety:       domain.StairSafetyFull,
		FireExtinguishers: 2,
		SmokeDetectors:    4,
		EmergencyExits:    2,
		HasFirstAidKit:    true,
		Latitude:          36.8065,
		Longitude:         10.1815,
	}
}

// bareBones is a three-floor, ten-room guesthouse from 1966 with no safety
// equipment at all.
func bareBones() domain.GuesthouseProfile {
	return domain.GuesthouseProfile{
		ConstructionYear: 1966,
		Floors:           3,
		Rooms:            10,
		BuildingType:     domain.BuildingTraditional,
		StairSafety:      domain.StairSafetyNone,
		Latitude:         36.8065,
		Longitude:        10.1815,
	}
}

func benignSnapshot() *domain.EnvironmentalSnapshot {
	return &domain.EnvironmentalSnapshot{
		Weather: &domain.WeatherObservation{
			TemperatureC: 22,
			WindSpeedKMH: 10,
			ObservedAt:   testNow,
		},
		Facilities: []domain.Facility{
			{Kind: domain.FacilityHospital, Name: "Hopital Charles Nicolle", DistanceKM: 0.5},
		},
		FacilitiesFetched: true,
		FetchedAt:         testNow,
	}
}

func TestAssess_FullyEquippedRecentBuildNearHospital(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Assess(fullyEquipped(), benignSnapshot(), testNow)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	if result.Score != 92 {
		t.Fatalf("expected score 92, got %d", result.Score)
	}
	if result.Category != "excellent" {
		t.Fatalf("expected category excellent, got %s", result.Category)
	}
	if !result.EnvironmentalDataUsed {
		t.Fatal("expected environmental data to be marked as used")
	}
	if len(result.Deficiencies) != 0 {
		t.Fatalf("expected no deficiencies, got %v", result.Deficiencies)
	}
}

func TestAssess_NoEquipmentOldBuildingClampsToZero(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Assess(bareBones(), nil, testNow)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	if result.Score != 0 {
		t.Fatalf("expected clamped score 0, got %d", result.Score)
	}
	if result.BaselineScore != 0 {
		t.Fatalf("expected clamped baseline 0, got %d", result.BaselineScore)
	}
	if result.Category != "critical" {
		t.Fatalf("expected category critical, got %s", result.Category)
	}
	if result.EnvironmentalDataUsed {
		t.Fatal("expected degradation flag without a snapshot")
	}
	if result.EnvironmentalAdjustment != 0 {
		t.Fatalf("expected zero environmental adjustment, got %f", result.EnvironmentalAdjustment)
	}

	want := map[domain.DeficiencyKind]int{
		domain.DeficiencyFireExtinguisher: 3,
		domain.DeficiencySmokeDetector:    6,
		domain.DeficiencyEmergencyExit:    2,
		domain.DeficiencyFirstAidKit:      1,
		domain.DeficiencyStairHandrail:    2,
		domain.DeficiencySlipCoating:      2,
	}
	if len(result.Deficiencies) != len(want) {
		t.Fatalf("expected %d deficiencies, got %d", len(want), len(result.Deficiencies))
	}
	for _, d := range result.Deficiencies {
		if want[d.Kind] != d.Quantity {
			t.Fatalf("deficiency %s: expected quantity %d, got %d", d.Kind, want[d.Kind], d.Quantity)
		}
	}
}

func TestAssess_FindingPointsSumToScoreDelta(t *testing.T) {
	engine := newTestEngine(t)

	// Partially equipped so the score lands mid-range with no clamping.
	profile := fullyEquipped()
	profile.SmokeDetectors = 2
	profile.HasFirstAidKit = false

	result, err := engine.Assess(profile, benignSnapshot(), testNow)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	sum := 0.0
	for _, f := range result.Findings {
		sum += f.Points
	}
	if got := DefaultConfig().BaseScore + sum; got != float64(result.Score) {
		t.Fatalf("finding points do not add up: base+sum=%f, score=%d", got, result.Score)
	}
}

func TestAssess_AddingDetectorsNeverLowersScore(t *testing.T) {
	engine := newTestEngine(t)

	prev := -1
	for detectors := 0; detectors <= 5; detectors++ {
		profile := fullyEquipped()
		profile.SmokeDetectors = detectors

		result, err := engine.Assess(profile, nil, testNow)
		if err != nil {
			t.Fatalf("Assess with %d detectors: %v", detectors, err)
		}
		if result.Score < prev {
			t.Fatalf("score dropped from %d to %d when adding a detector", prev, result.Score)
		}
		prev = result.Score
	}
}

func TestAssess_Idempotent(t *testing.T) {
	engine := newTestEngine(t)

	first, err := engine.Assess(bareBones(), benignSnapshot(), testNow)
	if err != nil {
		t.Fatalf("first Assess: %v", err)
	}
	second, err := engine.Assess(bareBones(), benignSnapshot(), testNow)
	if err != nil {
		t.Fatalf("second Assess: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical results for identical inputs")
	}
}

func TestAssess_MissingWeatherSkipsWeatherAdjustment(t *testing.T) {
	engine := newTestEngine(t)

	snapshot := benignSnapshot()
	snapshot.Weather = nil

	result, err := engine.Assess(fullyEquipped(), snapshot, testNow)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	if result.EnvironmentalDataUsed {
		t.Fatal("expected degradation flag with weather missing")
	}
	for _, f := range result.Findings {
		if f.Code == "weather_heat" || f.Code == "weather_cold" || f.Code == "weather_wind" || f.Code == "weather_precipitation" {
			t.Fatalf("unexpected weather finding %s without weather data", f.Code)
		}
	}
	// The facility bonus still applies.
	if result.EnvironmentalAdjustment != 6 {
		t.Fatalf("expected facility-only adjustment 6, got %f", result.EnvironmentalAdjustment)
	}
}

func TestAssess_SevereWeatherCappedAtFloor(t *testing.T) {
	engine := newTestEngine(t)

	snapshot := &domain.EnvironmentalSnapshot{
		Weather: &domain.WeatherObservation{
			TemperatureC:    41,
			PrecipitationMM: 5,
			WindSpeedKMH:    45,
			ObservedAt:      testNow,
		},
	}

	result, err := engine.Assess(fullyEquipped(), snapshot, testNow)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	// Raw penalties are -5 -6 -8 = -19, floored at -15.
	if result.EnvironmentalAdjustment != -15 {
		t.Fatalf("expected weather adjustment -15, got %f", result.EnvironmentalAdjustment)
	}

	capped := false
	for _, f := range result.Findings {
		if f.Code == "weather_cap" {
			capped = true
			if f.Points != 4 {
				t.Fatalf("expected cap correction of 4 points, got %f", f.Points)
			}
		}
	}
	if !capped {
		t.Fatal("expected a cap finding when the floor bites")
	}
}

func TestAssess_IsolatedLocationPenalized(t *testing.T) {
	engine := newTestEngine(t)

	snapshot := &domain.EnvironmentalSnapshot{
		Weather: &domain.WeatherObservation{
			TemperatureC: 22,
			ObservedAt:   testNow,
		},
		Facilities:        nil,
		FacilitiesFetched: true,
		FetchedAt:         testNow,
	}

	result, err := engine.Assess(fullyEquipped(), snapshot, testNow)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	if result.EnvironmentalAdjustment != -8 {
		t.Fatalf("expected isolation penalty -8, got %f", result.EnvironmentalAdjustment)
	}
	if !result.EnvironmentalDataUsed {
		t.Fatal("an answered facility query with zero results is complete data")
	}
}

func TestAssess_RejectsInvalidProfile(t *testing.T) {
	engine := newTestEngine(t)

	profile := fullyEquipped()
	profile.Floors = 0

	_, err := engine.Assess(profile, nil, testNow)
	if err == nil {
		t.Fatal("expected validation error for zero floors")
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation kind, got %v", err)
	}
}

func TestAssess_SingleFloorStairRequirementsCountAsMet(t *testing.T) {
	engine := newTestEngine(t)

	profile := fullyEquipped()
	profile.Floors = 1
	profile.FireExtinguishers = 1
	profile.SmokeDetectors = 2
	profile.StairSafety = domain.StairSafetyNone

	result, err := engine.Assess(profile, nil, testNow)
	if err != nil {
		t.Fatalf("Assess: %v", err)
	}

	for _, d := range result.Deficiencies {
		if d.Kind == domain.DeficiencyStairHandrail || d.Kind == domain.DeficiencySlipCoating {
			t.Fatalf("unexpected stair deficiency %s for a single-floor building", d.Kind)
		}
	}
	// Base 50 + six bonuses + recent-build bonus.
	if result.Score != 86 {
		t.Fatalf("expected score 86, got %d", result.Score)
	}
}

func TestCategoryFor_Boundaries(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		score int
		want  domain.SafetyCategory
	}{
		{100, "excellent"},
		{90, "excellent"},
		{89, "good"},
		{75, "good"},
		{74, "fair"},
		{50, "fair"},
		{49, "poor"},
		{25, "poor"},
		{24, "critical"},
		{0, "critical"},
	}

	for _, tt := range tests {
		if got := cfg.CategoryFor(tt.score); got != tt.want {
			t.Fatalf("score %d: expected %s, got %s", tt.score, tt.want, got)
		}
	}
}
