package transport

import (
	"time"

	"guesthouse_backend/internal/assessment/domain"

	"github.com/google/uuid"
)

// SafetyAssessmentResponse is the combined payload of a full assessment run:
// the score, the cost report, and the environmental data that informed them.
type SafetyAssessmentResponse struct {
	GuesthouseID uuid.UUID                      `json:"guesthouseId"`
	Assessment   *domain.SafetyAssessmentResult `json:"assessment"`
	CostEstimate *domain.CostEstimationReport   `json:"costEstimate"`
	Environment  *domain.EnvironmentalSnapshot  `json:"environment,omitempty"`
}

// AssessmentHistoryEntry is one stored assessment run, trimmed for listing.
type AssessmentHistoryEntry struct {
	ID                      uuid.UUID           `json:"id"`
	Score                   int                 `json:"score"`
	Category                string              `json:"category"`
	BaselineScore           int                 `json:"baselineScore"`
	EnvironmentalAdjustment float64             `json:"environmentalAdjustment"`
	EnvironmentalDataUsed   bool                `json:"environmentalDataUsed"`
	ScoreVersion            string              `json:"scoreVersion"`
	Deficiencies            []domain.Deficiency `json:"deficiencies"`
	GrandTotalMillimes      int64               `json:"grandTotalMillimes"`
	Currency                string              `json:"currency"`
	CreatedAt               time.Time           `json:"createdAt"`
}

// AssessmentHistoryResponse lists stored assessments, newest first.
type AssessmentHistoryResponse struct {
	GuesthouseID uuid.UUID                `json:"guesthouseId"`
	Assessments  []AssessmentHistoryEntry `json:"assessments"`
	Count        int                      `json:"count"`
}
