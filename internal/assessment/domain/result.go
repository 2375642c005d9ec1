package domain

import "time"

// FindingKind classifies a scoring contribution.
type FindingKind string

const (
	// FindingStrength is a met requirement contributing positive points.
	FindingStrength FindingKind = "strength"
	// FindingDeficiency is an unmet requirement contributing a penalty.
	FindingDeficiency FindingKind = "deficiency"
	// FindingAdjustment is an environmental bonus or penalty.
	FindingAdjustment FindingKind = "adjustment"
)

// DeficiencyKind identifies a remediable gap; it is the key into the price
// table.
type DeficiencyKind string

const (
	DeficiencyFireExtinguisher DeficiencyKind = "fire_extinguisher"
	DeficiencySmokeDetector    DeficiencyKind = "smoke_detector"
	DeficiencyEmergencyExit    DeficiencyKind = "emergency_exit_sign"
	DeficiencyFirstAidKit      DeficiencyKind = "first_aid_kit"
	DeficiencyStairHandrail    DeficiencyKind = "stair_handrail"
	DeficiencySlipCoating      DeficiencyKind = "slip_resistant_coating"
)

// Finding is one audited contribution to the safety score: the attribute it
// concerns, what was expected, what was found, and the points applied.
type Finding struct {
	Kind     FindingKind `json:"kind"`
	Code     string      `json:"code"`
	Label    string      `json:"label"`
	Expected string      `json:"expected"`
	Actual   string      `json:"actual"`
	Points   float64     `json:"points"`
}

// Deficiency is the cost-engine-facing view of a gap: what to remediate and
// how many units are missing.
type Deficiency struct {
	Kind     DeficiencyKind `json:"kind"`
	Quantity int            `json:"quantity"`
}

// SafetyCategory is the label band a score falls into.
type SafetyCategory string

// SafetyAssessmentResult is the scoring engine output. The sum of all
// finding points equals base score subtracted from the pre-clamp score, so
// the result is fully auditable.
type SafetyAssessmentResult struct {
	Score                   int            `json:"score"`
	Category                SafetyCategory `json:"category"`
	BaselineScore           int            `json:"baselineScore"`
	EnvironmentalAdjustment float64        `json:"environmentalAdjustment"`
	Findings                []Finding      `json:"findings"`
	Deficiencies            []Deficiency   `json:"deficiencies"`

	// EnvironmentalDataUsed is false when the snapshot was absent or
	// partial and the environmental adjustments of the affected sources
	// were skipped.
	EnvironmentalDataUsed bool `json:"environmentalDataUsed"`

	ScoreVersion string    `json:"scoreVersion"`
	AssessedAt   time.Time `json:"assessedAt"`
}
