package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"guesthouse_backend/internal/assessment/domain"
)

func TestLoadConfig_OverridesOnTopOfDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	override := "currency: EUR\nmaintenance:\n  new_equipment_percent: 10\n  annual_inspection_millimes: 120000\n"
	if err := os.WriteFile(path, []byte(override), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Currency != "EUR" {
		t.Fatalf("expected overridden currency EUR, got %s", cfg.Currency)
	}
	if cfg.Maintenance.AnnualInspectionMillimes != 120_000 {
		t.Fatalf("expected overridden inspection fee, got %d", cfg.Maintenance.AnnualInspectionMillimes)
	}
	if cfg.Prices[domain.DeficiencyFireExtinguisher].UnitPriceMillimes != 100_000 {
		t.Fatal("expected default price table to survive a partial override")
	}
}

func TestConfigValidate_RejectsBrokenTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty currency", func(c *Config) { c.Currency = "" }},
		{"empty price table", func(c *Config) { c.Prices = nil }},
		{"negative price", func(c *Config) {
			entry := c.Prices[domain.DeficiencySmokeDetector]
			entry.UnitPriceMillimes = -1
			c.Prices[domain.DeficiencySmokeDetector] = entry
		}},
		{"no tiers", func(c *Config) { c.Tiers = nil }},
		{"closed last tier", func(c *Config) { c.Tiers[len(c.Tiers)-1].UpToMillimes = 9_999_999 }},
		{"unordered tiers", func(c *Config) { c.Tiers[1].UpToMillimes = 100 }},
		{"missing multiplier", func(c *Config) { delete(c.Multipliers, domain.BuildingRenovated) }},
		{"no compliance brackets", func(c *Config) { c.Compliance = nil }},
		{"closed last bracket", func(c *Config) { c.Compliance[len(c.Compliance)-1].MaxFloors = 10 }},
		{"missing compliance fee", func(c *Config) { delete(c.Compliance[0].Fees, domain.BuildingModern) }},
		{"negative maintenance", func(c *Config) { c.Maintenance.NewEquipmentPercent = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation to fail")
			}
		})
	}
}

func TestInstallationPercent_TierBoundaries(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		equipment int64
		want      float64
	}{
		{100_000, 45},
		{500_000, 45},
		{500_001, 40},
		{1_500_000, 40},
		{1_500_001, 35},
		{50_000_000, 35},
	}
	for _, tt := range tests {
		if got := cfg.installationPercent(tt.equipment); got != tt.want {
			t.Fatalf("equipment %d: expected %.0f%%, got %.0f%%", tt.equipment, tt.want, got)
		}
	}
}

func TestComplianceFee_FloorBrackets(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		bt     domain.BuildingType
		floors int
		want   int64
	}{
		{domain.BuildingModern, 1, 300_000},
		{domain.BuildingTraditional, 2, 450_000},
		{domain.BuildingTraditional, 3, 450_000},
		{domain.BuildingRenovated, 4, 650_000},
		{domain.BuildingRenovated, 9, 650_000},
	}
	for _, tt := range tests {
		if got := cfg.complianceFee(tt.bt, tt.floors); got != tt.want {
			t.Fatalf("%s/%d floors: expected %d, got %d", tt.bt, tt.floors, tt.want, got)
		}
	}
}
