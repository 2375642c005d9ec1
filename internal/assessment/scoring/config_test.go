package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"guesthouse_backend/platform/apperr"
)

func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseScore != 50 {
		t.Fatalf("expected default base score 50, got %f", cfg.BaseScore)
	}
	if len(cfg.Categories) != 5 {
		t.Fatalf("expected 5 category bands, got %d", len(cfg.Categories))
	}
}

func TestLoadConfig_OverridesOnTopOfDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	override := "base_score: 60\nage:\n  recent_years: 10\n  recent_bonus: 6\n  old_years: 40\n  penalty_per_year: 0.5\n  max_penalty: 15\n"
	if err := os.WriteFile(path, []byte(override), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BaseScore != 60 {
		t.Fatalf("expected overridden base score 60, got %f", cfg.BaseScore)
	}
	if cfg.Age.OldYears != 40 {
		t.Fatalf("expected overridden old threshold 40, got %d", cfg.Age.OldYears)
	}
	// Untouched sections keep their defaults.
	if cfg.Equipment.MinDetectorsPerFloor != 2 {
		t.Fatalf("expected default detector minimum 2, got %d", cfg.Equipment.MinDetectorsPerFloor)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !apperr.Is(err, apperr.KindConfiguration) {
		t.Fatalf("expected configuration kind, got %v", err)
	}
}

func TestConfigValidate_RejectsBrokenCategoryTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty table", func(c *Config) { c.Categories = nil }},
		{"lowest band not zero", func(c *Config) { c.Categories[len(c.Categories)-1].MinScore = 5 }},
		{"not descending", func(c *Config) { c.Categories[1].MinScore = 95 }},
		{"duplicate threshold", func(c *Config) { c.Categories[1].MinScore = 90 }},
		{"top band above 100", func(c *Config) { c.Categories[0].MinScore = 101 }},
		{"unnamed band", func(c *Config) { c.Categories[2].Name = "" }},
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

func TestConfigValidate_RejectsInvertedThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Age.RecentYears = 50
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when recent threshold exceeds old threshold")
	}

	cfg = DefaultConfig()
	cfg.Facilities.MinAdjustment = 20
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted facility adjustment range")
	}
}

func TestWidestFacilityRadius(t *testing.T) {
	if got := DefaultConfig().WidestFacilityRadiusKM(); got != 5 {
		t.Fatalf("expected widest radius 5 km, got %f", got)
	}
}
