// Package pricing turns the deficiency list of a safety assessment into a
// cost estimation report. All money is int64 millimes; the grand total is
// the exact sum of the four group subtotals, never a re-derivation.
package pricing

import (
	"fmt"
	"math"

	"guesthouse_backend/internal/assessment/domain"
	"guesthouse_backend/platform/apperr"
)

// Engine prices deficiency lists against a validated Config.
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

// Estimate builds a cost report for a profile and its deficiencies. A
// deficiency kind without a price-table entry fails the whole estimate: an
// incomplete cost report is worse than no report.
func (e *Engine) Estimate(profile domain.GuesthouseProfile, deficiencies []domain.Deficiency) (*domain.CostEstimationReport, error) {
	report := &domain.CostEstimationReport{Currency: e.cfg.Currency}

	for _, d := range deficiencies {
		entry, ok := e.cfg.Prices[d.Kind]
		if !ok {
			return nil, apperr.Configuration(
				fmt.Sprintf("no price table entry for deficiency %q", d.Kind),
			).WithOp("pricing.Estimate")
		}
		line := equipmentLine(d, entry)
		report.Lines = append(report.Lines, line)
		report.EquipmentMillimes += line.SubtotalMillimes
	}

	if report.EquipmentMillimes > 0 {
		report.Lines = append(report.Lines, e.installationLine(profile, report.EquipmentMillimes))
		report.InstallationMillimes = report.Lines[len(report.Lines)-1].SubtotalMillimes
	}

	// Certification is only due when there is remediation work to certify.
	if len(deficiencies) > 0 {
		fee := e.cfg.complianceFee(profile.BuildingType, profile.Floors)
		report.Lines = append(report.Lines, domain.LineItem{
			Group:             domain.GroupCompliance,
			Description:       "Fire safety inspection and certification",
			UnitPriceMillimes: fee,
			Quantity:          1,
			Unit:              "service",
			SubtotalMillimes:  fee,
		})
		report.ComplianceMillimes = fee
	}

	for _, line := range e.maintenanceLines(profile, report.EquipmentMillimes+report.InstallationMillimes) {
		report.Lines = append(report.Lines, line)
		report.MaintenanceMillimes += line.SubtotalMillimes
	}

	report.Recommendations = e.advisoryRecommendations(profile)

	report.OneTimeTotalMillimes = report.EquipmentMillimes + report.InstallationMillimes + report.ComplianceMillimes
	report.GrandTotalMillimes = report.OneTimeTotalMillimes + report.MaintenanceMillimes
	return report, nil
}

// advisoryRecommendations builds the optional improvement list from the
// advisory table. The costs are informational and stay out of every
// subtotal and the grand total.
func (e *Engine) advisoryRecommendations(profile domain.GuesthouseProfile) []domain.Recommendation {
	var recs []domain.Recommendation
	for _, item := range e.cfg.Advisory {
		if !item.applies(profile) {
			continue
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if item.PerFloor {
			quantity = profile.Floors
		}
		recs = append(recs, domain.Recommendation{
			Item:              item.Item,
			Reason:            item.Reason,
			UnitPriceMillimes: item.UnitPriceMillimes,
			Quantity:          quantity,
			CostMillimes:      item.UnitPriceMillimes * int64(quantity),
		})
	}
	return recs
}

// equipmentLine prices one deficiency. Handrails are sold by the meter, so
// the missing flight count converts through the configured meters per
// flight; everything else is per unit.
func equipmentLine(d domain.Deficiency, entry PriceEntry) domain.LineItem {
	quantity := float64(d.Quantity)
	if entry.MetersPerFlight > 0 {
		quantity = float64(d.Quantity) * entry.MetersPerFlight
	}
	return domain.LineItem{
		Group:             domain.GroupEquipment,
		Kind:              d.Kind,
		Description:       entry.Description,
		UnitPriceMillimes: entry.UnitPriceMillimes,
		Quantity:          quantity,
		Unit:              entry.Unit,
		SubtotalMillimes:  roundMillimes(float64(entry.UnitPriceMillimes) * quantity),
	}
}

// installationLine computes labor as a tiered percentage of the equipment
// subtotal scaled by the building-type multiplier.
func (e *Engine) installationLine(profile domain.GuesthouseProfile, equipmentMillimes int64) domain.LineItem {
	percent := e.cfg.installationPercent(equipmentMillimes)
	multiplier := e.cfg.Multipliers[profile.BuildingType]
	subtotal := roundMillimes(float64(equipmentMillimes) * percent / 100 * multiplier)
	return domain.LineItem{
		Group:            domain.GroupInstallation,
		Description:      fmt.Sprintf("Installation labor (%.0f%% of equipment, %s building)", percent, profile.BuildingType),
		Quantity:         1,
		Unit:             "job",
		SubtotalMillimes: subtotal,
	}
}

// maintenanceLines builds the annual cost group: upkeep of the new work,
// servicing of equipment already on site, and the yearly fire inspection.
func (e *Engine) maintenanceLines(profile domain.GuesthouseProfile, newWorkMillimes int64) []domain.LineItem {
	var lines []domain.LineItem

	if newWorkMillimes > 0 && e.cfg.Maintenance.NewEquipmentPercent > 0 {
		lines = append(lines, domain.LineItem{
			Group:            domain.GroupMaintenance,
			Description:      fmt.Sprintf("Annual upkeep of new installations (%.0f%%)", e.cfg.Maintenance.NewEquipmentPercent),
			Quantity:         1,
			Unit:             "year",
			SubtotalMillimes: roundMillimes(float64(newWorkMillimes) * e.cfg.Maintenance.NewEquipmentPercent / 100),
			Annual:           true,
		})
	}

	existing := []struct {
		kind  domain.DeficiencyKind
		count int
	}{
		{domain.DeficiencyFireExtinguisher, profile.FireExtinguishers},
		{domain.DeficiencySmokeDetector, profile.SmokeDetectors},
		{domain.DeficiencyEmergencyExit, profile.EmergencyExits},
		{domain.DeficiencyFirstAidKit, boolCount(profile.HasFirstAidKit)},
		{domain.DeficiencyStairHandrail, handrailFlights(profile)},
	}
	for _, item := range existing {
		entry, ok := e.cfg.Prices[item.kind]
		if !ok || item.count == 0 || entry.ServicingMillimes == 0 {
			continue
		}
		lines = append(lines, domain.LineItem{
			Group:             domain.GroupMaintenance,
			Kind:              item.kind,
			Description:       "Annual servicing: " + entry.Description,
			UnitPriceMillimes: entry.ServicingMillimes,
			Quantity:          float64(item.count),
			Unit:              "unit",
			SubtotalMillimes:  entry.ServicingMillimes * int64(item.count),
			Annual:            true,
		})
	}

	lines = append(lines, domain.LineItem{
		Group:             domain.GroupMaintenance,
		Description:       "Annual fire safety inspection",
		UnitPriceMillimes: e.cfg.Maintenance.AnnualInspectionMillimes,
		Quantity:          1,
		Unit:              "year",
		SubtotalMillimes:  e.cfg.Maintenance.AnnualInspectionMillimes,
		Annual:            true,
	})

	return lines
}

// handrailFlights counts serviceable handrail flights already on site.
func handrailFlights(profile domain.GuesthouseProfile) int {
	if !profile.HasStairHandrails() || profile.Floors < 2 {
		return 0
	}
	return profile.Floors - 1
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

func roundMillimes(v float64) int64 {
	return int64(math.Round(v))
}
