package models

import "github.com/spboyer/leadval/internal/statistics"

// ValidationMetrics is the AI-vs-expert report for one tenant. Every section
// except SampleInfo is nil when its minimum sample size is not met, so
// consumers can tell "not enough data" apart from a computed zero.
type ValidationMetrics struct {
	SampleInfo            SampleInfo                          `json:"sample_info"`
	InterRaterReliability *InterRaterReliability              `json:"inter_rater_reliability"`
	Correlation           *Correlation                        `json:"correlation"`
	ErrorMetrics          *ErrorMetrics                       `json:"error_metrics"`
	ConfusionMatrix       *statistics.ConfusionMatrix         `json:"confusion_matrix"`
	ClassificationMetrics *ClassificationReport               `json:"classification_metrics"`
	ComponentAnalysis     []ComponentAnalysis                 `json:"component_analysis"`
	ExtractionMetrics     []statistics.ExtractionFieldMetrics `json:"extraction_metrics"`
}

// SampleInfo summarizes the data behind a report.
type SampleInfo struct {
	TotalAnalyses    int      `json:"total_analyses"`
	TotalRatings     int      `json:"total_ratings"`
	PairedRatings    int      `json:"paired_ratings"`
	UniqueExperts    []string `json:"unique_experts"`
	BlindRatingCount int      `json:"blind_rating_count"`
	RatedAnalyses    int      `json:"rated_analyses"`
}

// InterRaterReliability compares AI and expert hot/warm/cold categories.
type InterRaterReliability struct {
	CohensKappa   statistics.KappaResult `json:"cohens_kappa"`
	WeightedKappa statistics.KappaResult `json:"weighted_kappa"`
}

// Correlation compares AI and expert numeric scores.
type Correlation struct {
	LeadScore statistics.PearsonResult `json:"lead_score"`
	ICPMatch  statistics.PearsonResult `json:"icp_match"`
}

// ErrorMetrics holds absolute error between AI and expert scores.
type ErrorMetrics struct {
	LeadScoreMAE  float64 `json:"lead_score_mae"`
	LeadScoreRMSE float64 `json:"lead_score_rmse"`
	ICPMatchMAE   float64 `json:"icp_match_mae"`
	ICPMatchRMSE  float64 `json:"icp_match_rmse"`

	// LeadScoreMAECI is nil below MinBootstrapPairs.
	LeadScoreMAECI *statistics.ConfidenceInterval `json:"lead_score_mae_ci,omitempty"`
}

// ClassificationReport holds confusion-matrix derived metrics.
type ClassificationReport struct {
	PerCategory map[statistics.Category]statistics.ClassificationMetrics `json:"per_category"`
	Accuracy    float64                                                  `json:"accuracy"`
	MacroF1     float64                                                  `json:"macro_f1"`
	WeightedF1  float64                                                  `json:"weighted_f1"`
}

// ComponentAnalysis compares one named score component across pairs.
type ComponentAnalysis struct {
	Name    string                   `json:"name"`
	Pearson statistics.PearsonResult `json:"pearson"`
	MAE     float64                  `json:"mae"`
}
