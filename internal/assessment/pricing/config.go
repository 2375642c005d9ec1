package pricing

import (
	"fmt"
	"os"

	"guesthouse_backend/internal/assessment/domain"
	"guesthouse_backend/platform/apperr"

	"gopkg.in/yaml.v3"
)

// PriceEntry is one row of the price table. Prices are int64 millimes so
// subtotals stay exact. ServicingMillimes is the annual per-unit upkeep of
// an installed item; zero means the item needs none.
type PriceEntry struct {
	Description       string  `yaml:"description"`
	UnitPriceMillimes int64   `yaml:"unit_price_millimes"`
	Unit              string  `yaml:"unit"`
	MetersPerFlight   float64 `yaml:"meters_per_flight,omitempty"`
	ServicingMillimes int64   `yaml:"servicing_millimes"`
}

// InstallationTier maps an equipment-subtotal bracket to a labor surcharge
// percentage. Tiers are evaluated in order; the last tier must be
// open-ended (UpToMillimes = 0).
type InstallationTier struct {
	UpToMillimes int64   `yaml:"up_to_millimes"`
	Percent      float64 `yaml:"percent"`
}

// ComplianceBracket is one floor-count bracket of the compliance fee
// matrix. MaxFloors = 0 marks the open-ended bracket.
type ComplianceBracket struct {
	MaxFloors int                           `yaml:"max_floors"`
	Fees      map[domain.BuildingType]int64 `yaml:"fees"`
}

// AdvisoryItem is one row of the optional improvement table. Gates are
// disjunctive: an item with no gates always applies, otherwise meeting any
// one positive gate is enough. PerFloor scales the quantity by the floor
// count; Quantity is the fixed count otherwise and defaults to one.
type AdvisoryItem struct {
	Item              string `yaml:"item"`
	Reason            string `yaml:"reason"`
	UnitPriceMillimes int64  `yaml:"unit_price_millimes"`
	Quantity          int    `yaml:"quantity,omitempty"`
	PerFloor          bool   `yaml:"per_floor,omitempty"`
	MinFloors         int    `yaml:"min_floors,omitempty"`
	MinRooms          int    `yaml:"min_rooms,omitempty"`
}

// applies reports whether a profile meets the item's gates.
func (a AdvisoryItem) applies(p domain.GuesthouseProfile) bool {
	if a.MinFloors == 0 && a.MinRooms == 0 {
		return true
	}
	if a.MinFloors > 0 && p.Floors >= a.MinFloors {
		return true
	}
	return a.MinRooms > 0 && p.Rooms >= a.MinRooms
}

// MaintenanceConfig drives the annual cost group: a percentage of the new
// equipment and installation work, plus a flat yearly inspection. Per-unit
// servicing of items already on site comes from the price table.
type MaintenanceConfig struct {
	NewEquipmentPercent      float64 `yaml:"new_equipment_percent"`
	AnnualInspectionMillimes int64   `yaml:"annual_inspection_millimes"`
}

// Config drives the cost estimation engine.
type Config struct {
	Currency    string                               `yaml:"currency"`
	Prices      map[domain.DeficiencyKind]PriceEntry `yaml:"prices"`
	Tiers       []InstallationTier                   `yaml:"installation_tiers"`
	Multipliers map[domain.BuildingType]float64      `yaml:"building_multipliers"`
	Compliance  []ComplianceBracket                  `yaml:"compliance_brackets"`
	Maintenance MaintenanceConfig                    `yaml:"maintenance"`
	Advisory    []AdvisoryItem                       `yaml:"advisory"`
}

// DefaultConfig returns the built-in Tunisian market price tables.
// configs/pricing.yaml ships the same values; PRICING_CONFIG_PATH overrides
// them. The figures are illustrative, not quotes.
func DefaultConfig() Config {
	return Config{
		Currency: "TND",
		Prices: map[domain.DeficiencyKind]PriceEntry{
			domain.DeficiencyFireExtinguisher: {
				Description:       "6kg ABC powder fire extinguisher",
				UnitPriceMillimes: 100_000,
				Unit:              "unit",
				ServicingMillimes: 15_000,
			},
			domain.DeficiencySmokeDetector: {
				Description:       "Battery-powered smoke detector",
				UnitPriceMillimes: 50_000,
				Unit:              "unit",
				ServicingMillimes: 8_000,
			},
			domain.DeficiencyEmergencyExit: {
				Description:       "LED illuminated emergency exit sign",
				UnitPriceMillimes: 65_000,
				Unit:              "unit",
				ServicingMillimes: 10_000,
			},
			domain.DeficiencyFirstAidKit: {
				Description:       "Professional first aid kit",
				UnitPriceMillimes: 130_000,
				Unit:              "unit",
				ServicingMillimes: 50_000,
			},
			domain.DeficiencyStairHandrail: {
				Description:       "Stair handrail",
				UnitPriceMillimes: 150_000,
				Unit:              "meter",
				MetersPerFlight:   3.5,
				ServicingMillimes: 20_000,
			},
			domain.DeficiencySlipCoating: {
				Description:       "Slip-resistant stair coating",
				UnitPriceMillimes: 250_000,
				Unit:              "staircase",
				ServicingMillimes: 0,
			},
		},
		Tiers: []InstallationTier{
			{UpToMillimes: 500_000, Percent: 45},
			{UpToMillimes: 1_500_000, Percent: 40},
			{UpToMillimes: 0, Percent: 35},
		},
		Multipliers: map[domain.BuildingType]float64{
			domain.BuildingModern:      0.9,
			domain.BuildingTraditional: 1.0,
			domain.BuildingRenovated:   1.1,
		},
		Compliance: []ComplianceBracket{
			{
				MaxFloors: 1,
				Fees: map[domain.BuildingType]int64{
					domain.BuildingModern:      300_000,
					domain.BuildingTraditional: 350_000,
					domain.BuildingRenovated:   400_000,
				},
			},
			{
				MaxFloors: 3,
				Fees: map[domain.BuildingType]int64{
					domain.BuildingModern:      400_000,
					domain.BuildingTraditional: 450_000,
					domain.BuildingRenovated:   500_000,
				},
			},
			{
				MaxFloors: 0,
				Fees: map[domain.BuildingType]int64{
					domain.BuildingModern:      550_000,
					domain.BuildingTraditional: 600_000,
					domain.BuildingRenovated:   650_000,
				},
			},
		},
		Maintenance: MaintenanceConfig{
			NewEquipmentPercent:      8,
			AnnualInspectionMillimes: 100_000,
		},
		Advisory: []AdvisoryItem{
			{
				Item:              "Fire blanket",
				Reason:            "Kitchen fire suppression",
				UnitPriceMillimes: 80_000,
			},
			{
				Item:              "Emergency lighting",
				Reason:            "Battery backup lighting for evacuation during power outages",
				UnitPriceMillimes: 120_000,
				PerFloor:          true,
				MinFloors:         2,
			},
			{
				Item:              "Carbon monoxide detector",
				Reason:            "Detects dangerous gas from cooking appliances or heating",
				UnitPriceMillimes: 90_000,
			},
			{
				Item:              "Centralized fire alarm system",
				Reason:            "Comprehensive alert system for larger properties",
				UnitPriceMillimes: 800_000,
				MinRooms:          6,
			},
			{
				Item:              "Emergency evacuation plan signage",
				Reason:            "Professional floor plans and evacuation route markers",
				UnitPriceMillimes: 150_000,
				MinFloors:         2,
				MinRooms:          5,
			},
			{
				Item:              "Security cameras",
				Reason:            "Monitor the entrance and common areas",
				UnitPriceMillimes: 250_000,
				Quantity:          2,
				MinRooms:          4,
			},
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
			return Config{}, apperr.Wrap(apperr.KindConfiguration, "read pricing config", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, apperr.Wrap(apperr.KindConfiguration, "parse pricing config", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects price tables the engine cannot price against.
func (c Config) Validate() error {
	if c.Currency == "" {
		return apperr.Configuration("pricing currency is empty")
	}
	if len(c.Prices) == 0 {
		return apperr.Configuration("price table is empty")
	}
	for kind, entry := range c.Prices {
		if entry.UnitPriceMillimes < 0 || entry.ServicingMillimes < 0 {
			return apperr.Configuration(fmt.Sprintf("negative price for %s", kind))
		}
		if entry.Description == "" || entry.Unit == "" {
			return apperr.Configuration(fmt.Sprintf("incomplete price entry for %s", kind))
		}
	}

	if len(c.Tiers) == 0 {
		return apperr.Configuration("installation tier table is empty")
	}
	for i, tier := range c.Tiers {
		if tier.Percent < 0 {
			return apperr.Configuration("negative installation percentage")
		}
		last := i == len(c.Tiers)-1
		if last && tier.UpToMillimes != 0 {
			return apperr.Configuration("last installation tier must be open-ended")
		}
		if !last && (tier.UpToMillimes <= 0 || (i > 0 && tier.UpToMillimes <= c.Tiers[i-1].UpToMillimes)) {
			return apperr.Configuration("installation tiers must be strictly ascending")
		}
	}

	for _, bt := range []domain.BuildingType{domain.BuildingTraditional, domain.BuildingModern, domain.BuildingRenovated} {
		if m, ok := c.Multipliers[bt]; !ok || m <= 0 {
			return apperr.Configuration(fmt.Sprintf("missing building multiplier for %s", bt))
		}
	}

	if len(c.Compliance) == 0 {
		return apperr.Configuration("compliance fee matrix is empty")
	}
	for i, bracket := range c.Compliance {
		last := i == len(c.Compliance)-1
		if last && bracket.MaxFloors != 0 {
			return apperr.Configuration("last compliance bracket must be open-ended")
		}
		if !last && (bracket.MaxFloors <= 0 || (i > 0 && bracket.MaxFloors <= c.Compliance[i-1].MaxFloors)) {
			return apperr.Configuration("compliance brackets must be strictly ascending")
		}
		for _, bt := range []domain.BuildingType{domain.BuildingTraditional, domain.BuildingModern, domain.BuildingRenovated} {
			if fee, ok := bracket.Fees[bt]; !ok || fee < 0 {
				return apperr.Configuration(fmt.Sprintf("missing compliance fee for %s", bt))
			}
		}
	}

	if c.Maintenance.NewEquipmentPercent < 0 || c.Maintenance.AnnualInspectionMillimes < 0 {
		return apperr.Configuration("negative maintenance parameters")
	}

	for _, item := range c.Advisory {
		if item.Item == "" || item.Reason == "" {
			return apperr.Configuration("incomplete advisory entry")
		}
		if item.UnitPriceMillimes < 0 || item.Quantity < 0 || item.MinFloors < 0 || item.MinRooms < 0 {
			return apperr.Configuration(fmt.Sprintf("negative advisory parameters for %q", item.Item))
		}
	}
	return nil
}

// installationPercent returns the labor surcharge for an equipment
// subtotal.
func (c Config) installationPercent(equipmentMillimes int64) float64 {
	for _, tier := range c.Tiers {
		if tier.UpToMillimes == 0 || equipmentMillimes <= tier.UpToMillimes {
			return tier.Percent
		}
	}
	return c.Tiers[len(c.Tiers)-1].Percent
}

// complianceFee returns the flat certification fee for a building type and
// floor count.
func (c Config) complianceFee(bt domain.BuildingType, floors int) int64 {
	for _, bracket := range c.Compliance {
		if bracket.MaxFloors == 0 || floors <= bracket.MaxFloors {
			return bracket.Fees[bt]
		}
	}
	return c.Compliance[len(c.Compliance)-1].Fees[bt]
}
