package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spboyer/leadval/internal/metrics"
	"github.com/spboyer/leadval/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one tenant's validation report.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one quality gate.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a gate whose metric missed its threshold.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a gate that could not be evaluated.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// Thresholds are the minimum quality an AI scorer must reach. A zero
// threshold disables its gate.
type Thresholds struct {
	MinKappa       float64
	MinCorrelation float64
	MaxMAE         float64
	MinAccuracy    float64
}

// Gate is the outcome of checking one metric against its threshold.
type Gate struct {
	Name    string
	Value   float64
	Limit   float64
	Passed  bool
	Skipped string // reason the gate could not be evaluated
}

// CheckThresholds evaluates every enabled gate against a report. Gates whose
// section is missing are skipped rather than failed.
func CheckThresholds(r *models.ValidationMetrics, th Thresholds) []Gate {
	var gates []Gate
	check := func(name string, present bool, value, limit float64, pairs int, lowerIsBetter bool) {
		if limit == 0 {
			return
		}
		g := Gate{Name: name, Value: value, Limit: limit}
		switch {
		case !present:
			g.Skipped = fmt.Sprintf("insufficient data: requires at least %d paired ratings", pairs)
		case lowerIsBetter:
			g.Passed = value <= limit
		default:
			g.Passed = value >= limit
		}
		gates = append(gates, g)
	}

	var kappa, leadR, icpR, leadMAE, icpMAE, accuracy float64
	if r.InterRaterReliability != nil {
		kappa = r.InterRaterReliability.CohensKappa.Kappa
	}
	if r.Correlation != nil {
		leadR = r.Correlation.LeadScore.R
		icpR = r.Correlation.ICPMatch.R
	}
	if r.ErrorMetrics != nil {
		leadMAE = r.ErrorMetrics.LeadScoreMAE
		icpMAE = r.ErrorMetrics.ICPMatchMAE
	}
	if r.ClassificationMetrics != nil {
		accuracy = r.ClassificationMetrics.Accuracy
	}

	irr, corr, errs, cls := r.InterRaterReliability != nil, r.Correlation != nil, r.ErrorMetrics != nil, r.ClassificationMetrics != nil
	check("cohens_kappa", irr, kappa, th.MinKappa, metrics.MinReliabilityPairs, false)
	check("lead_score_correlation", corr, leadR, th.MinCorrelation, metrics.MinCorrelationPairs, false)
	check("icp_match_correlation", corr, icpR, th.MinCorrelation, metrics.MinCorrelationPairs, false)
	check("lead_score_mae", errs, leadMAE, th.MaxMAE, metrics.MinErrorPairs, true)
	check("icp_match_mae", errs, icpMAE, th.MaxMAE, metrics.MinErrorPairs, true)
	check("classification_accuracy", cls, accuracy, th.MinAccuracy, metrics.MinClassificationPairs, false)
	return gates
}

// GatesFailed reports whether any evaluated gate failed.
func GatesFailed(gates []Gate) bool {
	for _, g := range gates {
		if g.Skipped == "" && !g.Passed {
			return true
		}
	}
	return false
}

// ConvertToJUnit converts a validation report into JUnit XML, one test case
// per gate plus one for the sample-size minimums.
func ConvertToJUnit(r *models.ValidationMetrics, th Thresholds, tenant string, at time.Time) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name:      "leadval/" + tenant,
		Timestamp: at.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "tenant", Value: tenant},
			{Name: "paired_ratings", Value: fmt.Sprintf("%d", r.SampleInfo.PairedRatings)},
			{Name: "experts", Value: strings.Join(r.SampleInfo.UniqueExperts, ",")},
		},
	}

	sample := JUnitTestCase{Name: "sample_size", Classname: suite.Name}
	if !MeetsMinimumData(r.SampleInfo) {
		sample.Skipped = &JUnitSkipped{Message: fmt.Sprintf("preliminary: %d/%d analyses rated, %d/%d expert raters",
			r.SampleInfo.RatedAnalyses, MinRatedAnalyses, len(r.SampleInfo.UniqueExperts), MinExperts)}
		suite.Skipped++
	}
	suite.TestCases = append(suite.TestCases, sample)

	for _, g := range CheckThresholds(r, th) {
		tc := JUnitTestCase{Name: g.Name, Classname: suite.Name}
		switch {
		case g.Skipped != "":
			tc.Skipped = &JUnitSkipped{Message: g.Skipped}
			suite.Skipped++
		case !g.Passed:
			tc.Failure = &JUnitFailure{
				Message: fmt.Sprintf("%s: %.3f does not meet threshold %.3f", g.Name, g.Value, g.Limit),
				Type:    "ThresholdFailure",
			}
			suite.Failures++
		}
		suite.TestCases = append(suite.TestCases, tc)
	}
	suite.Tests = len(suite.TestCases)

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		TestSuites: []JUnitTestSuite{suite},
	}
}

// MarshalJUnitXML returns the report as an indented JUnit XML document.
func MarshalJUnitXML(r *models.ValidationMetrics, th Thresholds, tenant string, at time.Time) ([]byte, error) {
	data, err := xml.MarshalIndent(ConvertToJUnit(r, th, tenant, at), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JUnit XML: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(r *models.ValidationMetrics, th Thresholds, tenant, path string) error {
	data, err := MarshalJUnitXML(r, th, tenant, time.Now())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
