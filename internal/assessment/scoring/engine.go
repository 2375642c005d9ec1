// Package scoring computes the safety score of a guesthouse from its
// physical profile and an environmental snapshot. The engine is a pure
// function over its inputs: same profile, snapshot and clock always produce
// the same result.
package scoring

import (
	"fmt"
	"math"
	"time"

	"guesthouse_backend/internal/assessment/domain"
)

// Engine scores guesthouse profiles against a validated Config.
type Engine struct {
	cfg Config
}

// NewEngine validates the config and returns a ready engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Assess scores a profile. The snapshot may be nil or partial; whatever
// source is missing contributes nothing and the result is flagged as
// degraded. Every point that moves the score away from the base appears as
// a finding, so the pre-clamp score minus the base equals the sum of
// finding points.
func (e *Engine) Assess(profile domain.GuesthouseProfile, env *domain.EnvironmentalSnapshot, now time.Time) (*domain.SafetyAssessmentResult, error) {
	if err := profile.Validate(now); err != nil {
		return nil, err
	}

	var findings []domain.Finding
	var deficiencies []domain.Deficiency

	baseline := e.cfg.BaseScore

	// Structural and equipment requirements.
	eq := e.cfg.Equipment

	points, deficit := e.scoreCount(&findings, "fire_extinguishers", "Fire extinguishers",
		profile.Floors*eq.MinExtinguishersPerFloor, profile.FireExtinguishers, eq.FireExtinguishers)
	baseline += points
	if deficit > 0 {
		deficiencies = append(deficiencies, domain.Deficiency{Kind: domain.DeficiencyFireExtinguisher, Quantity: deficit})
	}

	points, deficit = e.scoreCount(&findings, "smoke_detectors", "Smoke detectors",
		profile.Floors*eq.MinDetectorsPerFloor, profile.SmokeDetectors, eq.SmokeDetectors)
	baseline += points
	if deficit > 0 {
		deficiencies = append(deficiencies, domain.Deficiency{Kind: domain.DeficiencySmokeDetector, Quantity: deficit})
	}

	points, deficit = e.scoreCount(&findings, "emergency_exits", "Emergency exits",
		eq.MinEmergencyExits, profile.EmergencyExits, eq.EmergencyExits)
	baseline += points
	if deficit > 0 {
		deficiencies = append(deficiencies, domain.Deficiency{Kind: domain.DeficiencyEmergencyExit, Quantity: deficit})
	}

	points, deficit = e.scoreBool(&findings, "first_aid_kit", "First aid kit",
		profile.HasFirstAidKit, eq.FirstAidKit)
	baseline += points
	if deficit > 0 {
		deficiencies = append(deficiencies, domain.Deficiency{Kind: domain.DeficiencyFirstAidKit, Quantity: 1})
	}

	// Single-floor buildings have no staircases to secure, so both stair
	// requirements count as met.
	singleFloor := profile.Floors == 1

	points, deficit = e.scoreBool(&findings, "stair_handrails", "Stair handrails",
		singleFloor || profile.HasStairHandrails(), eq.StairHandrails)
	baseline += points
	if deficit > 0 {
		deficiencies = append(deficiencies, domain.Deficiency{Kind: domain.DeficiencyStairHandrail, Quantity: profile.Floors - 1})
	}

	points, deficit = e.scoreBool(&findings, "slip_resistance", "Slip-resistant stairs",
		singleFloor || profile.HasSlipResistantStairs(), eq.SlipResistance)
	baseline += points
	if deficit > 0 {
		// One coating application per staircase.
		deficiencies = append(deficiencies, domain.Deficiency{Kind: domain.DeficiencySlipCoating, Quantity: profile.Floors - 1})
	}

	baseline += e.scoreAge(&findings, profile.ConstructionYear, now)

	// Environmental adjustment. Each absent source is skipped entirely
	// rather than treated as a zero reading.
	adjustment := 0.0
	if env != nil && env.Weather != nil {
		adjustment += e.scoreWeather(&findings, *env.Weather)
	}
	if env != nil && env.FacilitiesFetched {
		adjustment += e.scoreFacilities(&findings, env)
	}

	final := clampScore(baseline + adjustment)

	return &domain.SafetyAssessmentResult{
		Score:                   final,
		Category:                e.cfg.CategoryFor(final),
		BaselineScore:           clampScore(baseline),
		EnvironmentalAdjustment: adjustment,
		Findings:                findings,
		Deficiencies:            deficiencies,
		EnvironmentalDataUsed:   env.Complete(),
		ScoreVersion:            e.cfg.Version,
		AssessedAt:              now.UTC(),
	}, nil
}

// scoreCount evaluates a count requirement: full bonus when the requirement
// is met, a per-unit penalty otherwise. Returns the points applied and the
// missing quantity.
func (e *Engine) scoreCount(findings *[]domain.Finding, code, label string, required, actual int, w Requirement) (float64, int) {
	deficit := required - actual
	if deficit <= 0 {
		addFinding(findings, domain.Finding{
			Kind:     domain.FindingStrength,
			Code:     code,
			Label:    label,
			Expected: fmt.Sprintf("at least %d", required),
			Actual:   fmt.Sprintf("%d", actual),
			Points:   w.Bonus,
		})
		return w.Bonus, 0
	}
	points := -float64(deficit) * w.PenaltyPerUnit
	addFinding(findings, domain.Finding{
		Kind:     domain.FindingDeficiency,
		Code:     code,
		Label:    label,
		Expected: fmt.Sprintf("at least %d", required),
		Actual:   fmt.Sprintf("%d", actual),
		Points:   points,
	})
	return points, deficit
}

// scoreBool evaluates a present/absent requirement.
func (e *Engine) scoreBool(findings *[]domain.Finding, code, label string, met bool, w Requirement) (float64, int) {
	if met {
		addFinding(findings, domain.Finding{
			Kind:     domain.FindingStrength,
			Code:     code,
			Label:    label,
			Expected: "present",
			Actual:   "present",
			Points:   w.Bonus,
		})
		return w.Bonus, 0
	}
	addFinding(findings, domain.Finding{
		Kind:     domain.FindingDeficiency,
		Code:     code,
		Label:    label,
		Expected: "present",
		Actual:   "absent",
		Points:   -w.PenaltyPerUnit,
	})
	return -w.PenaltyPerUnit, 1
}

// scoreAge rewards recent construction and penalizes old buildings in
// proportion to how far past the threshold they are, up to a cap. Buildings
// between the two thresholds are neutral.
func (e *Engine) scoreAge(findings *[]domain.Finding, constructionYear int, now time.Time) float64 {
	age := now.Year() - constructionYear
	cfg := e.cfg.Age

	switch {
	case age <= cfg.RecentYears:
		addFinding(findings, domain.Finding{
			Kind:     domain.FindingStrength,
			Code:     "building_age",
			Label:    "Building age",
			Expected: fmt.Sprintf("at most %d years", cfg.OldYears),
			Actual:   fmt.Sprintf("%d years", age),
			Points:   cfg.RecentBonus,
		})
		return cfg.RecentBonus
	case age > cfg.OldYears:
		penalty := math.Min(float64(age-cfg.OldYears)*cfg.PenaltyPerYear, cfg.MaxPenalty)
		addFinding(findings, domain.Finding{
			Kind:     domain.FindingDeficiency,
			Code:     "building_age",
			Label:    "Building age",
			Expected: fmt.Sprintf("at most %d years", cfg.OldYears),
			Actual:   fmt.Sprintf("%d years", age),
			Points:   -penalty,
		})
		return -penalty
	default:
		return 0
	}
}

// scoreWeather applies current-conditions penalties. The combined penalty is
// clamped to the configured floor; when the clamp bites, the excess is
// recorded as its own finding so the points ledger still adds up.
func (e *Engine) scoreWeather(findings *[]domain.Finding, obs domain.WeatherObservation) float64 {
	cfg := e.cfg.Weather
	raw := 0.0

	if obs.TemperatureC > cfg.HeatThresholdC {
		raw += addFinding(findings, domain.Finding{
			Kind:     domain.FindingAdjustment,
			Code:     "weather_heat",
			Label:    "Extreme heat",
			Expected: fmt.Sprintf("at most %.0f°C", cfg.HeatThresholdC),
			Actual:   fmt.Sprintf("%.1f°C", obs.TemperatureC),
			Points:   -cfg.HeatPenalty,
		})
	} else if obs.TemperatureC < cfg.ColdThresholdC {
		raw += addFinding(findings, domain.Finding{
			Kind:     domain.FindingAdjustment,
			Code:     "weather_cold",
			Label:    "Cold conditions",
			Expected: fmt.Sprintf("at least %.0f°C", cfg.ColdThresholdC),
			Actual:   fmt.Sprintf("%.1f°C", obs.TemperatureC),
			Points:   -cfg.ColdPenalty,
		})
	}

	if precip := math.Max(obs.PrecipitationMM, obs.RainMM); precip >= cfg.PrecipitationMM {
		raw += addFinding(findings, domain.Finding{
			Kind:     domain.FindingAdjustment,
			Code:     "weather_precipitation",
			Label:    "Active precipitation",
			Expected: fmt.Sprintf("below %.1f mm", cfg.PrecipitationMM),
			Actual:   fmt.Sprintf("%.1f mm", precip),
			Points:   -cfg.PrecipitationPenalty,
		})
	}

	if obs.WindSpeedKMH > cfg.StrongWindKMH {
		raw += addFinding(findings, domain.Finding{
			Kind:     domain.FindingAdjustment,
			Code:     "weather_wind",
			Label:    "Strong wind",
			Expected: fmt.Sprintf("at most %.0f km/h", cfg.StrongWindKMH),
			Actual:   fmt.Sprintf("%.1f km/h", obs.WindSpeedKMH),
			Points:   -cfg.StrongWindPenalty,
		})
	} else if obs.WindSpeedKMH > cfg.WindKMH {
		raw += addFinding(findings, domain.Finding{
			Kind:     domain.FindingAdjustment,
			Code:     "weather_wind",
			Label:    "Elevated wind",
			Expected: fmt.Sprintf("at most %.0f km/h", cfg.WindKMH),
			Actual:   fmt.Sprintf("%.1f km/h", obs.WindSpeedKMH),
			Points:   -cfg.WindPenalty,
		})
	}

	return e.capAdjustment(findings, "weather_cap", raw, cfg.MinAdjustment, 0)
}

// scoreFacilities awards proximity bonuses per facility kind and penalizes
// isolation when nothing is within the widest band.
func (e *Engine) scoreFacilities(findings *[]domain.Finding, env *domain.EnvironmentalSnapshot) float64 {
	cfg := e.cfg.Facilities
	raw := 0.0
	anyInReach := false
	widest := e.cfg.WidestFacilityRadiusKM()

	kinds := []struct {
		kind  domain.FacilityKind
		label string
		bands []DistanceBand
	}{
		{domain.FacilityHospital, "Hospital access", cfg.Hospital},
		{domain.FacilityFireStation, "Fire station access", cfg.FireStation},
		{domain.FacilityPharmacy, "Pharmacy access", cfg.Pharmacy},
	}

	for _, k := range kinds {
		nearest, ok := env.NearestKM(k.kind)
		if ok && nearest <= widest {
			anyInReach = true
		}
		if !ok {
			continue
		}
		for _, band := range k.bands {
			if nearest <= band.MaxKM {
				raw += addFinding(findings, domain.Finding{
					Kind:     domain.FindingAdjustment,
					Code:     string(k.kind) + "_access",
					Label:    k.label,
					Expected: fmt.Sprintf("within %.0f km", band.MaxKM),
					Actual:   fmt.Sprintf("%.1f km", nearest),
					Points:   band.Points,
				})
				break
			}
		}
	}

	if !anyInReach {
		raw += addFinding(findings, domain.Finding{
			Kind:     domain.FindingAdjustment,
			Code:     "facility_isolation",
			Label:    "Emergency facility access",
			Expected: fmt.Sprintf("any facility within %.0f km", widest),
			Actual:   "none",
			Points:   cfg.IsolationPenalty,
		})
	}

	return e.capAdjustment(findings, "facility_cap", raw, cfg.MinAdjustment, cfg.MaxAdjustment)
}

// capAdjustment clamps a raw adjustment into [min, max]. The correction is
// emitted as a finding of its own so the sum of finding points always equals
// the applied adjustment.
func (e *Engine) capAdjustment(findings *[]domain.Finding, code string, raw, min, max float64) float64 {
	capped := clampFloat(raw, min, max)
	if capped != raw {
		addFinding(findings, domain.Finding{
			Kind:   domain.FindingAdjustment,
			Code:   code,
			Label:  "Adjustment cap",
			Points: capped - raw,
		})
	}
	return capped
}

// addFinding appends a finding and returns its points for accumulation.
func addFinding(findings *[]domain.Finding, f domain.Finding) float64 {
	*findings = append(*findings, f)
	return f.Points
}

func clampScore(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
