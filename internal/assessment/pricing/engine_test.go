package pricing

import (
	"testing"

	"guesthouse_backend/internal/assessment/domain"
	"guesthouse_backend/platform/apperr"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func equippedProfile() domain.GuesthouseProfile {
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
	}
}

func emptyProfile() domain.GuesthouseProfile {
	return domain.GuesthouseProfile{
		ConstructionYear: 1966,
		Floors:           3,
		Rooms:            10,
		BuildingType:     domain.BuildingTraditional,
		StairSafety:      domain.StairSafetyNone,
	}
}

func allDeficiencies() []domain.Deficiency {
	return []domain.Deficiency{
		{Kind: domain.DeficiencyFireExtinguisher, Quantity: 3},
		{Kind: domain.DeficiencySmokeDetector, Quantity: 6},
		{Kind: domain.DeficiencyEmergencyExit, Quantity: 2},
		{Kind: domain.DeficiencyFirstAidKit, Quantity: 1},
		{Kind: domain.DeficiencyStairHandrail, Quantity: 2},
		{Kind: domain.DeficiencySlipCoating, Quantity: 2},
	}
}

func TestEstimate_NoDeficienciesStillCostsMaintenance(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.Estimate(equippedProfile(), nil)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if report.EquipmentMillimes != 0 || report.InstallationMillimes != 0 || report.ComplianceMillimes != 0 {
		t.Fatalf("expected zero one-time groups, got %d/%d/%d",
			report.EquipmentMillimes, report.InstallationMillimes, report.ComplianceMillimes)
	}
	// 2 extinguishers, 4 detectors, 2 exit signs, first aid kit, one
	// handrail flight, plus the yearly inspection.
	want := int64(2*15_000 + 4*8_000 + 2*10_000 + 50_000 + 20_000 + 100_000)
	if report.MaintenanceMillimes != want {
		t.Fatalf("expected maintenance %d, got %d", want, report.MaintenanceMillimes)
	}
	if report.GrandTotalMillimes != want {
		t.Fatalf("expected grand total %d, got %d", want, report.GrandTotalMillimes)
	}
	if report.Currency != "TND" {
		t.Fatalf("expected TND, got %s", report.Currency)
	}
}

func TestEstimate_FullRemediation(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.Estimate(emptyProfile(), allDeficiencies())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	// 3x100 + 6x50 + 2x65 + 130 + 7m x 150 + 2x250 TND.
	if report.EquipmentMillimes != 2_410_000 {
		t.Fatalf("expected equipment 2410000, got %d", report.EquipmentMillimes)
	}
	// Top tier 35%, traditional multiplier 1.0.
	if report.InstallationMillimes != 843_500 {
		t.Fatalf("expected installation 843500, got %d", report.InstallationMillimes)
	}
	// Traditional building, 3 floors.
	if report.ComplianceMillimes != 450_000 {
		t.Fatalf("expected compliance 450000, got %d", report.ComplianceMillimes)
	}
	// 8 percent of the new work plus the yearly inspection; nothing on
	// site to service.
	if report.MaintenanceMillimes != 360_280 {
		t.Fatalf("expected maintenance 360280, got %d", report.MaintenanceMillimes)
	}
	if report.GrandTotalMillimes != 4_063_780 {
		t.Fatalf("expected grand total 4063780, got %d", report.GrandTotalMillimes)
	}
}

func TestEstimate_GrandTotalIsExactGroupSum(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.Estimate(emptyProfile(), allDeficiencies())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	groups := map[domain.CostGroup]int64{}
	for _, line := range report.Lines {
		groups[line.Group] += line.SubtotalMillimes
	}
	if groups[domain.GroupEquipment] != report.EquipmentMillimes {
		t.Fatalf("equipment lines sum to %d, group says %d", groups[domain.GroupEquipment], report.EquipmentMillimes)
	}
	if groups[domain.GroupInstallation] != report.InstallationMillimes {
		t.Fatalf("installation lines sum to %d, group says %d", groups[domain.GroupInstallation], report.InstallationMillimes)
	}
	if groups[domain.GroupCompliance] != report.ComplianceMillimes {
		t.Fatalf("compliance lines sum to %d, group says %d", groups[domain.GroupCompliance], report.ComplianceMillimes)
	}
	if groups[domain.GroupMaintenance] != report.MaintenanceMillimes {
		t.Fatalf("maintenance lines sum to %d, group says %d", groups[domain.GroupMaintenance], report.MaintenanceMillimes)
	}

	sum := report.EquipmentMillimes + report.InstallationMillimes + report.ComplianceMillimes + report.MaintenanceMillimes
	if report.GrandTotalMillimes != sum {
		t.Fatalf("grand total %d is not the group sum %d", report.GrandTotalMillimes, sum)
	}
	if report.OneTimeTotalMillimes != sum-report.MaintenanceMillimes {
		t.Fatalf("one-time total %d does not exclude maintenance", report.OneTimeTotalMillimes)
	}
}

func TestEstimate_UnknownDeficiencyKindFailsFast(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Estimate(emptyProfile(), []domain.Deficiency{
		{Kind: "sprinkler_system", Quantity: 1},
	})
	if err == nil {
		t.Fatal("expected configuration error for unpriced deficiency")
	}
	if !apperr.Is(err, apperr.KindConfiguration) {
		t.Fatalf("expected configuration kind, got %v", err)
	}
}

func TestEstimate_BuildingMultiplierScalesInstallation(t *testing.T) {
	engine := newTestEngine(t)
	deficiency := []domain.Deficiency{{Kind: domain.DeficiencySmokeDetector, Quantity: 1}}

	modern := equippedProfile()
	modern.BuildingType = domain.BuildingModern
	renovated := equippedProfile()
	renovated.BuildingType = domain.BuildingRenovated

	modernReport, err := engine.Estimate(modern, deficiency)
	if err != nil {
		t.Fatalf("Estimate modern: %v", err)
	}
	renovatedReport, err := engine.Estimate(renovated, deficiency)
	if err != nil {
		t.Fatalf("Estimate renovated: %v", err)
	}

	// 50 TND detector lands in the 45% tier: 50 x 0.45 x multiplier.
	if modernReport.InstallationMillimes != 20_250 {
		t.Fatalf("expected modern installation 20250, got %d", modernReport.InstallationMillimes)
	}
	if renovatedReport.InstallationMillimes != 24_750 {
		t.Fatalf("expected renovated installation 24750, got %d", renovatedReport.InstallationMillimes)
	}
}

func TestEstimate_HandrailsPricedByMeter(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.Estimate(emptyProfile(), []domain.Deficiency{
		{Kind: domain.DeficiencyStairHandrail, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	var line *domain.LineItem
	for i := range report.Lines {
		if report.Lines[i].Kind == domain.DeficiencyStairHandrail {
			line = &report.Lines[i]
		}
	}
	if line == nil {
		t.Fatal("expected a handrail line item")
	}
	if line.Quantity != 7 || line.Unit != "meter" {
		t.Fatalf("expected 7 meters, got %f %s", line.Quantity, line.Unit)
	}
	if line.SubtotalMillimes != 1_050_000 {
		t.Fatalf("expected handrail subtotal 1050000, got %d", line.SubtotalMillimes)
	}
}

func TestEstimate_AdvisoryRecommendationsGatedBySize(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name   string
		floors int
		rooms  int
		want   []string
	}{
		{
			name:   "small single-floor property",
			floors: 1,
			rooms:  2,
			want:   []string{"Fire blanket", "Carbon monoxide detector"},
		},
		{
			name:   "mid-size two-floor property",
			floors: 2,
			rooms:  4,
			want: []string{
				"Fire blanket",
				"Emergency lighting",
				"Carbon monoxide detector",
				"Emergency evacuation plan signage",
				"Security cameras",
			},
		},
		{
			name:   "large property",
			floors: 3,
			rooms:  10,
			want: []string{
				"Fire blanket",
				"Emergency lighting",
				"Carbon monoxide detector",
				"Centralized fire alarm system",
				"Emergency evacuation plan signage",
				"Security cameras",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			profile := equippedProfile()
			profile.Floors = tc.floors
			profile.Rooms = tc.rooms
			if tc.floors == 1 {
				profile.StairSafety = domain.StairSafetyNone
			}

			report, err := engine.Estimate(profile, nil)
			if err != nil {
				t.Fatalf("Estimate: %v", err)
			}

			if len(report.Recommendations) != len(tc.want) {
				t.Fatalf("expected %d recommendations, got %d", len(tc.want), len(report.Recommendations))
			}
			for i, item := range tc.want {
				if report.Recommendations[i].Item != item {
					t.Fatalf("expected recommendation %d to be %q, got %q", i, item, report.Recommendations[i].Item)
				}
			}
		})
	}
}

func TestEstimate_AdvisoryQuantitiesAndCosts(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.Estimate(emptyProfile(), nil)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	byItem := map[string]domain.Recommendation{}
	for _, rec := range report.Recommendations {
		byItem[rec.Item] = rec
	}

	// Emergency lighting scales per floor on the 3-floor profile.
	lighting := byItem["Emergency lighting"]
	if lighting.Quantity != 3 || lighting.CostMillimes != 360_000 {
		t.Fatalf("expected 3 lighting units at 360000, got %d at %d", lighting.Quantity, lighting.CostMillimes)
	}
	cameras := byItem["Security cameras"]
	if cameras.Quantity != 2 || cameras.CostMillimes != 500_000 {
		t.Fatalf("expected 2 cameras at 500000, got %d at %d", cameras.Quantity, cameras.CostMillimes)
	}
	for _, rec := range report.Recommendations {
		if rec.CostMillimes != rec.UnitPriceMillimes*int64(rec.Quantity) {
			t.Fatalf("recommendation %q cost %d does not match %d x %d",
				rec.Item, rec.CostMillimes, rec.UnitPriceMillimes, rec.Quantity)
		}
	}
}

func TestEstimate_AdvisoryCostsStayOutOfTotals(t *testing.T) {
	engine := newTestEngine(t)

	report, err := engine.Estimate(emptyProfile(), allDeficiencies())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	if len(report.Recommendations) == 0 {
		t.Fatal("expected advisory recommendations")
	}
	sum := report.EquipmentMillimes + report.InstallationMillimes + report.ComplianceMillimes + report.MaintenanceMillimes
	if report.GrandTotalMillimes != sum {
		t.Fatalf("grand total %d is not the group sum %d", report.GrandTotalMillimes, sum)
	}
	for _, line := range report.Lines {
		for _, rec := range report.Recommendations {
			if line.Description == rec.Item {
				t.Fatalf("advisory item %q leaked into the priced lines", rec.Item)
			}
		}
	}
}
