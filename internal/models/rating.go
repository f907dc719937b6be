package models

import (
	"time"

	"github.com/spboyer/leadval/internal/statistics"
)

// ExpertRating is one expert's independent assessment of the company behind
// an AI analysis. At most one rating exists per (AnalysisID, ExpertName).
type ExpertRating struct {
	ID                    string              `json:"id"`
	AnalysisID            string              `json:"analysis_id"`
	ExpertName            string              `json:"expert_name"`
	ExpertRole            string              `json:"expert_role,omitempty"`
	LeadScore             float64             `json:"lead_score"`
	ICPMatchPercentage    float64             `json:"icp_match_percentage"`
	Category              statistics.Category `json:"category"`
	ComponentScores       []ComponentScore    `json:"component_scores"`
	BlindRating           bool                `json:"blind_rating"`
	Notes                 string              `json:"notes,omitempty"`
	RatingDurationSeconds int                 `json:"rating_duration_seconds,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// Component returns the named component score, if present.
func (r *ExpertRating) Component(name string) (ComponentScore, bool) {
	return findComponent(r.ComponentScores, name)
}

// OverallAccuracy is an expert's coarse impression of an extraction.
type OverallAccuracy string

const (
	AccuracyHigh   OverallAccuracy = "high"
	AccuracyMedium OverallAccuracy = "medium"
	AccuracyLow    OverallAccuracy = "low"
)

// FieldValidation is an expert's verdict on one extracted field.
type FieldValidation struct {
	Status         statistics.FieldStatus `json:"status"`
	CorrectedValue string                 `json:"corrected_value,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
}

// ExtractionValidation records an expert's review of the data extracted for
// a company. At most one exists per (CompanyID, ExpertName).
type ExtractionValidation struct {
	ID               string                     `json:"id"`
	CompanyID        string                     `json:"company_id"`
	ExpertName       string                     `json:"expert_name"`
	FieldValidations map[string]FieldValidation `json:"field_validations"`
	OverallAccuracy  OverallAccuracy            `json:"overall_accuracy,omitempty"`
	Notes            string                     `json:"notes,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// Statuses flattens the field verdicts for the statistics engine.
func (v *ExtractionValidation) Statuses() statistics.FieldValidations {
	out := make(statistics.FieldValidations, len(v.FieldValidations))
	for field, fv := range v.FieldValidations {
		out[field] = fv.Status
	}
	return out
}
