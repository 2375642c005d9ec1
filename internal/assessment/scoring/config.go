package scoring

import (
	"fmt"
	"os"
	"sort"

	"guesthouse_backend/internal/assessment/domain"
	"guesthouse_backend/platform/apperr"

	"gopkg.in/yaml.v3"
)

// Requirement holds the bonus granted when a safety requirement is fully met
// and the penalty applied per missing unit.
type Requirement struct {
	Bonus          float64 `yaml:"bonus"`
	PenaltyPerUnit float64 `yaml:"penalty_per_unit"`
}

// EquipmentConfig defines the required equipment levels and their weights.
type EquipmentConfig struct {
	MinExtinguishersPerFloor int `yaml:"min_extinguishers_per_floor"`
	MinDetectorsPerFloor     int `yaml:"min_detectors_per_floor"`
	MinEmergencyExits        int `yaml:"min_emergency_exits"`

	FireExtinguishers Requirement `yaml:"fire_extinguishers"`
	SmokeDetectors    Requirement `yaml:"smoke_detectors"`
	EmergencyExits    Requirement `yaml:"emergency_exits"`
	FirstAidKit       Requirement `yaml:"first_aid_kit"`
	StairHandrails    Requirement `yaml:"stair_handrails"`
	SlipResistance    Requirement `yaml:"slip_resistance"`
}

// AgeConfig defines how construction age moves the score. Recent buildings
// get a flat bonus; beyond the old threshold the penalty grows with each
// excess year up to a cap.
type AgeConfig struct {
	RecentYears    int     `yaml:"recent_years"`
	RecentBonus    float64 `yaml:"recent_bonus"`
	OldYears       int     `yaml:"old_years"`
	PenaltyPerYear float64 `yaml:"penalty_per_year"`
	MaxPenalty     float64 `yaml:"max_penalty"`
}

// WeatherConfig defines the current-conditions penalty bands. The combined
// weather adjustment is clamped to [MinAdjustment, 0].
type WeatherConfig struct {
	HeatThresholdC       float64 `yaml:"heat_threshold_c"`
	HeatPenalty          float64 `yaml:"heat_penalty"`
	ColdThresholdC       float64 `yaml:"cold_threshold_c"`
	ColdPenalty          float64 `yaml:"cold_penalty"`
	PrecipitationMM      float64 `yaml:"precipitation_mm"`
	PrecipitationPenalty float64 `yaml:"precipitation_penalty"`
	StrongWindKMH        float64 `yaml:"strong_wind_kmh"`
	StrongWindPenalty    float64 `yaml:"strong_wind_penalty"`
	WindKMH              float64 `yaml:"wind_kmh"`
	WindPenalty          float64 `yaml:"wind_penalty"`
	MinAdjustment        float64 `yaml:"min_adjustment"`
}

// DistanceBand awards Points when the nearest facility of a kind is within
// MaxKM. Bands are evaluated nearest-first.
type DistanceBand struct {
	MaxKM  float64 `yaml:"max_km"`
	Points float64 `yaml:"points"`
}

// FacilitiesConfig defines the proximity bonus bands per facility kind and
// the isolation penalty applied when nothing is in reach. The combined
// facility adjustment is clamped to [MinAdjustment, MaxAdjustment].
type FacilitiesConfig struct {
	Hospital    []DistanceBand `yaml:"hospital"`
	FireStation []DistanceBand `yaml:"fire_station"`
	Pharmacy    []DistanceBand `yaml:"pharmacy"`

	IsolationPenalty float64 `yaml:"isolation_penalty"`
	MinAdjustment    float64 `yaml:"min_adjustment"`
	MaxAdjustment    float64 `yaml:"max_adjustment"`
}

// CategoryBand labels every score at or above MinScore that no higher band
// claims.
type CategoryBand struct {
	Name     domain.SafetyCategory `yaml:"name"`
	MinScore int                   `yaml:"min_score"`
}

// Config drives the scoring engine. Engines are constructed with a Config
// and never read globals, so tests and deployments can swap weight tables
// freely.
type Config struct {
	Version    string           `yaml:"version"`
	BaseScore  float64          `yaml:"base_score"`
	Equipment  EquipmentConfig  `yaml:"equipment"`
	Age        AgeConfig        `yaml:"age"`
	Weather    WeatherConfig    `yaml:"weather"`
	Facilities FacilitiesConfig `yaml:"facilities"`
	Categories []CategoryBand   `yaml:"categories"`
}

// DefaultConfig returns the built-in weight tables. configs/scoring.yaml
// ships the same values; operators override them via SCORING_CONFIG_PATH.
func DefaultConfig() Config {
	return Config{
		Version:   "2026-v1",
		BaseScore: 50,
		Equipment: EquipmentConfig{
			MinExtinguishersPerFloor: 1,
			MinDetectorsPerFloor:     2,
			MinEmergencyExits:        2,
			FireExtinguishers:        Requirement{Bonus: 6, PenaltyPerUnit: 5},
			SmokeDetectors:           Requirement{Bonus: 6, PenaltyPerUnit: 4},
			EmergencyExits:           Requirement{Bonus: 5, PenaltyPerUnit: 10},
			FirstAidKit:              Requirement{Bonus: 5, PenaltyPerUnit: 8},
			StairHandrails:           Requirement{Bonus: 4, PenaltyPerUnit: 8},
			SlipResistance:           Requirement{Bonus: 4, PenaltyPerUnit: 6},
		},
		Age: AgeConfig{
			RecentYears:    15,
			RecentBonus:    6,
			OldYears:       35,
			PenaltyPerYear: 0.5,
			MaxPenalty:     15,
		},
		Weather: WeatherConfig{
			HeatThresholdC:       35,
			HeatPenalty:          5,
			ColdThresholdC:       5,
			ColdPenalty:          3,
			PrecipitationMM:      0.5,
			PrecipitationPenalty: 6,
			StrongWindKMH:        30,
			StrongWindPenalty:    8,
			WindKMH:              20,
			WindPenalty:          3,
			MinAdjustment:        -15,
		},
		Facilities: FacilitiesConfig{
			Hospital: []DistanceBand{
				{MaxKM: 1, Points: 6},
				{MaxKM: 3, Points: 4},
				{MaxKM: 5, Points: 2},
			},
			FireStation: []DistanceBand{
				{MaxKM: 2, Points: 4},
				{MaxKM: 5, Points: 2},
			},
			Pharmacy: []DistanceBand{
				{MaxKM: 1, Points: 2},
				{MaxKM: 2, Points: 1},
			},
			IsolationPenalty: -8,
			MinAdjustment:    -8,
			MaxAdjustment:    12,
		},
		Categories: []CategoryBand{
			{Name: "excellent", MinScore: 90},
			{Name: "good", MinScore: 75},
			{Name: "fair", MinScore: 50},
			{Name: "poor", MinScore: 25},
			{Name: "critical", MinScore: 0},
		},
	}
}

// LoadConfig reads a YAML override on top of the defaults. An empty path
// returns the defaults unchanged. The result is always validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, apperr.Wrap(apperr.KindConfiguration, "read scoring config", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, apperr.Wrap(apperr.KindConfiguration, "parse scoring config", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects weight tables that cannot produce a well-defined score.
// The category bands must partition [0,100]: a highest band at or below 100
// and a lowest band at exactly 0, strictly descending, so every clamped
// score maps to exactly one label.
func (c Config) Validate() error {
	if c.BaseScore < 0 || c.BaseScore > 100 {
		return apperr.Configuration("base score must be within [0,100]")
	}
	if c.Equipment.MinExtinguishersPerFloor < 1 ||
		c.Equipment.MinDetectorsPerFloor < 1 ||
		c.Equipment.MinEmergencyExits < 1 {
		return apperr.Configuration("minimum equipment levels must be at least 1")
	}
	if c.Age.OldYears <= c.Age.RecentYears {
		return apperr.Configuration("old building threshold must exceed the recent threshold")
	}
	if c.Age.PenaltyPerYear < 0 || c.Age.MaxPenalty < 0 {
		return apperr.Configuration("age penalties cannot be negative")
	}
	if c.Weather.MinAdjustment > 0 {
		return apperr.Configuration("weather adjustment floor must not be positive")
	}
	if c.Facilities.MinAdjustment > c.Facilities.MaxAdjustment {
		return apperr.Configuration("facility adjustment range is inverted")
	}
	for _, bands := range [][]DistanceBand{c.Facilities.Hospital, c.Facilities.FireStation, c.Facilities.Pharmacy} {
		if !sort.SliceIsSorted(bands, func(i, j int) bool { return bands[i].MaxKM < bands[j].MaxKM }) {
			return apperr.Configuration("facility distance bands must be ordered nearest first")
		}
	}

	if len(c.Categories) == 0 {
		return apperr.Configuration("category table is empty")
	}
	if c.Categories[0].MinScore > 100 {
		return apperr.Configuration("highest category threshold exceeds 100")
	}
	for i, band := range c.Categories {
		if band.Name == "" {
			return apperr.Configuration(fmt.Sprintf("category %d has no name", i))
		}
		if i > 0 && band.MinScore >= c.Categories[i-1].MinScore {
			return apperr.Configuration("category thresholds must be strictly descending")
		}
	}
	if c.Categories[len(c.Categories)-1].MinScore != 0 {
		return apperr.Configuration("lowest category threshold must be 0")
	}
	return nil
}

// CategoryFor maps a clamped score to its label band.
func (c Config) CategoryFor(score int) domain.SafetyCategory {
	for _, band := range c.Categories {
		if score >= band.MinScore {
			return band.Name
		}
	}
	return c.Categories[len(c.Categories)-1].Name
}

// WidestFacilityRadiusKM is the largest configured band distance; a
// guesthouse with no facility of any kind inside it is considered isolated.
func (c Config) WidestFacilityRadiusKM() float64 {
	widest := 0.0
	for _, bands := range [][]DistanceBand{c.Facilities.Hospital, c.Facilities.FireStation, c.Facilities.Pharmacy} {
		for _, b := range bands {
			if b.MaxKM > widest {
				widest = b.MaxKM
			}
		}
	}
	return widest
}
