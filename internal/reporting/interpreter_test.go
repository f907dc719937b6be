package reporting

import (
	"strings"
	"testing"

	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestReport returns a fully populated report that meets the minimums.
func newTestReport() *models.ValidationMetrics {
	return &models.ValidationMetrics{
		SampleInfo: models.SampleInfo{
			TotalAnalyses:    14,
			TotalRatings:     12,
			PairedRatings:    12,
			UniqueExperts:    []string{"Ana", "Ben", "Chloe"},
			BlindRatingCount: 5,
			RatedAnalyses:    10,
		},
		InterRaterReliability: &models.InterRaterReliability{
			CohensKappa:   statistics.KappaResult{Kappa: 0.72, Interpretation: "Substantial agreement", ObservedAgreement: 0.83, ExpectedAgreement: 0.4},
			WeightedKappa: statistics.KappaResult{Kappa: 0.81, Interpretation: "Almost perfect agreement"},
		},
		Correlation: &models.Correlation{
			LeadScore: statistics.PearsonResult{R: 0.82, PValue: 0.001, N: 12},
			ICPMatch:  statistics.PearsonResult{R: 0.41, PValue: 0.18, N: 12},
		},
		ErrorMetrics: &models.ErrorMetrics{
			LeadScoreMAE:  6.5,
			LeadScoreRMSE: 8.1,
			ICPMatchMAE:   14.2,
			ICPMatchRMSE:  17.9,
			LeadScoreMAECI: &statistics.ConfidenceInterval{
				Lower: 4.25, Upper: 9.1, Mean: 6.5, ConfidenceLevel: 0.95, Resamples: 10000,
			},
		},
		ConfusionMatrix: &statistics.ConfusionMatrix{
			Matrix: [3][3]int{{3, 1, 0}, {0, 4, 1}, {0, 0, 3}},
			Labels: statistics.Categories,
			Total:  12,
		},
		ClassificationMetrics: &models.ClassificationReport{
			PerCategory: map[statistics.Category]statistics.ClassificationMetrics{
				statistics.Hot:  {Precision: 0.75, Recall: 1, F1: 0.857, Support: 3},
				statistics.Warm: {Precision: 0.8, Recall: 0.8, F1: 0.8, Support: 5},
				statistics.Cold: {Precision: 1, Recall: 0.75, F1: 0.857, Support: 4},
			},
			Accuracy:   0.833,
			MacroF1:    0.838,
			WeightedF1: 0.833,
		},
		ComponentAnalysis: []models.ComponentAnalysis{
			{Name: "Budget", Pearson: statistics.PearsonResult{R: 0.66, PValue: 0.02, N: 12}, MAE: 9.5},
		},
		ExtractionMetrics: []statistics.ExtractionFieldMetrics{
			{Field: "industry", Correct: 2, Partial: 1, Total: 3, Accuracy: 2.0 / 3},
		},
	}
}

func TestInterpretCorrelation(t *testing.T) {
	tests := []struct {
		r    float64
		want string
	}{
		{0.95, "Strong"},
		{0.7, "Strong"},
		{-0.8, "Strong"},
		{0.69, "Moderate"},
		{0.3, "Moderate"},
		{-0.45, "Moderate"},
		{0.29, "Weak"},
		{0, "Weak"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InterpretCorrelation(tt.r), "r=%v", tt.r)
	}
}

func TestInterpretSignificance(t *testing.T) {
	assert.Equal(t, "significant", InterpretSignificance(0.01))
	assert.Equal(t, "not significant", InterpretSignificance(0.05))
	assert.Equal(t, "not significant", InterpretSignificance(0.5))
}

func TestInterpretError(t *testing.T) {
	tests := []struct {
		mae  float64
		want string
	}{
		{0, "Excellent"},
		{9.99, "Excellent"},
		{10, "Good"},
		{20, "Good"},
		{20.01, "Significant disagreement"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InterpretError(tt.mae), "mae=%v", tt.mae)
	}
}

func TestMinimumDataNotice(t *testing.T) {
	t.Run("met", func(t *testing.T) {
		info := newTestReport().SampleInfo
		assert.True(t, MeetsMinimumData(info))
		assert.Empty(t, MinimumDataNotice(info))
	})

	t.Run("nothing rated", func(t *testing.T) {
		assert.Empty(t, MinimumDataNotice(models.SampleInfo{TotalAnalyses: 4}))
	})

	t.Run("preliminary", func(t *testing.T) {
		info := models.SampleInfo{TotalRatings: 4, RatedAnalyses: 4, UniqueExperts: []string{"Ana"}}
		assert.False(t, MeetsMinimumData(info))
		assert.Equal(t,
			"Minimum requirements not yet met: 4/10 analyses rated, 1/3 expert raters. Results below are preliminary.",
			MinimumDataNotice(info))
	})
}

func TestFormatSummaryReport(t *testing.T) {
	out := FormatSummaryReport(newTestReport())

	assert.True(t, strings.HasPrefix(out, "=== Validation Report ===\n"))
	for _, want := range []string{
		"Sample Information",
		"3 (Ana, Ben, Chloe)",
		"Cohen's kappa",
		"0.720 (Substantial agreement)",
		"r = 0.820 (Strong, significant), p = 0.0010, n = 12",
		"r = 0.410 (Moderate, not significant)",
		"MAE 6.50 (Excellent), RMSE 8.10",
		"MAE 14.20 (Good)",
		"95% CI 4.25 to 9.10 (bootstrap, 10000 resamples)",
		"AI \\ Expert",
		"Diagonal = agreement. Total: 12",
		"Budget",
		"Data Extraction Accuracy",
		"66.7%",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "preliminary")
}

func TestFormatSummaryReport_NoRatings(t *testing.T) {
	out := FormatSummaryReport(&models.ValidationMetrics{SampleInfo: models.SampleInfo{TotalAnalyses: 3}})

	assert.Contains(t, out, "No expert ratings submitted yet.")
	assert.NotContains(t, out, "Inter-Rater Reliability")
	assert.NotContains(t, out, "Data Extraction Accuracy")
}

func TestFormatSummaryReport_InsufficientSections(t *testing.T) {
	r := &models.ValidationMetrics{
		SampleInfo: models.SampleInfo{TotalAnalyses: 1, TotalRatings: 1, PairedRatings: 1, RatedAnalyses: 1, UniqueExperts: []string{"Ana"}},
		ErrorMetrics: &models.ErrorMetrics{
			LeadScoreMAE: 25, ICPMatchMAE: 3,
		},
	}
	out := FormatSummaryReport(r)

	assert.Contains(t, out, "Minimum requirements not yet met")
	assert.Contains(t, out, "Insufficient data: requires at least 2 paired ratings.")
	assert.Contains(t, out, "Insufficient data: requires at least 3 paired ratings.")
	assert.Contains(t, out, "MAE 25.00 (Significant disagreement)")
}

func TestFormatSummaryReport_NoSharedComponents(t *testing.T) {
	r := newTestReport()
	r.ComponentAnalysis = []models.ComponentAnalysis{}

	assert.Contains(t, FormatSummaryReport(r), "No component was scored by both the AI and an expert")
}

func TestFormatMarkdown(t *testing.T) {
	out := FormatMarkdown(newTestReport())

	assert.True(t, strings.HasPrefix(out, "# Validation Report\n"))
	assert.Contains(t, out, "## Inter-Rater Reliability")
	assert.Contains(t, out, "- **Accuracy:** 0.833")
	assert.Contains(t, out, "| Category | Precision | Recall | F1 | Support |")
	assert.Contains(t, out, "| Hot | 0.750 | 1.000 | 0.857 | 3 |")
	assert.Contains(t, out, "| AI \\ Expert | Hot | Warm | Cold |")
	assert.Contains(t, out, "## Interpretation Guide")
}

func TestFormatHTML(t *testing.T) {
	out, err := FormatHTML(newTestReport(), "Acme <Leads>")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Acme &lt;Leads&gt;</title>")
	assert.Contains(t, out, "<h1>Validation Report</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Hot</td>")
}

func TestPadRight_WideRunes(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "日本", padRight("日本", 3))
	assert.Equal(t, "日本 ", padRight("日本", 5))
	assert.Equal(t, "  7", padLeft("7", 3))
}
