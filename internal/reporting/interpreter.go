// Package reporting renders validation reports for people: plain text for
// the terminal, markdown and HTML for sharing, and JUnit XML for CI gates.
package reporting

import (
	"fmt"
	"math"
	"strings"

	"github.com/spboyer/leadval/internal/models"
)

// A report is preliminary until this many analyses have been rated by this
// many distinct experts.
const (
	MinRatedAnalyses = 10
	MinExperts       = 3
)

// SignificanceLevel is the p-value below which a correlation is reported
// as statistically significant.
const SignificanceLevel = 0.05

// InterpretCorrelation returns a strength label for a Pearson r.
func InterpretCorrelation(r float64) string {
	abs := math.Abs(r)
	switch {
	case abs >= 0.7:
		return "Strong"
	case abs >= 0.3:
		return "Moderate"
	default:
		return "Weak"
	}
}

// InterpretSignificance explains a correlation p-value.
func InterpretSignificance(p float64) string {
	if p < SignificanceLevel {
		return "significant"
	}
	return "not significant"
}

// InterpretError grades a mean absolute error on the 0-100 score scale.
func InterpretError(mae float64) string {
	switch {
	case mae < 10:
		return "Excellent"
	case mae <= 20:
		return "Good"
	default:
		return "Significant disagreement"
	}
}

// MeetsMinimumData reports whether enough analyses and experts are present
// for the report to be more than preliminary.
func MeetsMinimumData(info models.SampleInfo) bool {
	return info.RatedAnalyses >= MinRatedAnalyses && len(info.UniqueExperts) >= MinExperts
}

// MinimumDataNotice returns a warning when the sample is too small, or ""
// when the minimums are met or nothing has been rated.
func MinimumDataNotice(info models.SampleInfo) string {
	if info.TotalRatings == 0 || MeetsMinimumData(info) {
		return ""
	}
	return fmt.Sprintf("Minimum requirements not yet met: %d/%d analyses rated, %d/%d expert raters. Results below are preliminary.",
		info.RatedAnalyses, MinRatedAnalyses, len(info.UniqueExperts), MinExperts)
}

func describeCorrelation(r float64, p float64, n int) string {
	return fmt.Sprintf("r = %.3f (%s, %s), p = %.4f, n = %d",
		r, InterpretCorrelation(r), InterpretSignificance(p), p, n)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
