package domain

// CostGroup is the bucket a cost line belongs to.
type CostGroup string

const (
	GroupEquipment    CostGroup = "equipment"
	GroupInstallation CostGroup = "installation"
	GroupCompliance   CostGroup = "compliance"
	GroupMaintenance  CostGroup = "maintenance"
)

// LineItem is one priced entry of the cost report. Quantities can be
// fractional (handrail meters); money is integer millimes so group subtotals
// always sum exactly to the grand total.
type LineItem struct {
	Group             CostGroup      `json:"group"`
	Kind              DeficiencyKind `json:"kind,omitempty"`
	Description       string         `json:"description"`
	UnitPriceMillimes int64          `json:"unitPriceMillimes"`
	Quantity          float64        `json:"quantity"`
	Unit              string         `json:"unit"`
	SubtotalMillimes  int64          `json:"subtotalMillimes"`
	Annual            bool           `json:"annual"`
}

// Recommendation is an optional safety improvement suggested alongside the
// mandatory work. It is advisory only: its cost never enters any subtotal
// or the grand total.
type Recommendation struct {
	Item              string `json:"item"`
	Reason            string `json:"reason"`
	UnitPriceMillimes int64  `json:"unitPriceMillimes"`
	Quantity          int    `json:"quantity"`
	CostMillimes      int64  `json:"costMillimes"`
}

// CostEstimationReport is the cost engine output. Equipment, installation
// and compliance are one-time costs; maintenance is annual and presented
// separately yet included in the grand total as one of the four groups.
// Recommendations sit outside all of them.
type CostEstimationReport struct {
	Currency string     `json:"currency"`
	Lines    []LineItem `json:"lines"`

	Recommendations []Recommendation `json:"recommendations"`

	EquipmentMillimes    int64 `json:"equipmentMillimes"`
	InstallationMillimes int64 `json:"installationMillimes"`
	ComplianceMillimes   int64 `json:"complianceMillimes"`
	MaintenanceMillimes  int64 `json:"maintenanceMillimes"`

	OneTimeTotalMillimes int64 `json:"oneTimeTotalMillimes"`
	GrandTotalMillimes   int64 `json:"grandTotalMillimes"`
}
