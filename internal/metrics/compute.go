// Package metrics pairs AI analyses with expert ratings and runs the
// statistics engine over them, gating each report section on sample size.
package metrics

import (
	"log/slog"

	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/statistics"
)

// Minimum paired observations required before a section is computed.
const (
	MinReliabilityPairs    = 2
	MinCorrelationPairs    = 3
	MinErrorPairs          = 1
	MinClassificationPairs = 1
	MinComponentPairs      = 3
	MinBootstrapPairs      = 2
)

// MAEConfidenceLevel is the level of the bootstrap interval on lead score MAE.
const MAEConfidenceLevel = 0.95

// Input is a snapshot of one tenant's data.
type Input struct {
	Analyses              []models.Analysis
	Ratings               []models.ExpertRating
	ExtractionValidations []models.ExtractionValidation
}

// pair joins one expert rating with the analysis it rates.
type pair struct {
	analysis *models.Analysis
	rating   *models.ExpertRating
}

// series holds the index-aligned arrays fed to the statistics engine.
type series struct {
	aiLead, expertLead         []float64
	aiICP, expertICP           []float64
	aiCategory, expertCategory []statistics.Category
}

// Compute builds the validation report for in. It never fails: sections
// without enough data are left nil.
func Compute(in Input) *models.ValidationMetrics {
	return compute(in, slog.Default())
}

func compute(in Input, logger *slog.Logger) *models.ValidationMetrics {
	report := &models.ValidationMetrics{
		SampleInfo: sampleInfo(in),
	}

	if len(in.ExtractionValidations) > 0 {
		validations := make([]statistics.FieldValidations, 0, len(in.ExtractionValidations))
		for i := range in.ExtractionValidations {
			validations = append(validations, in.ExtractionValidations[i].Statuses())
		}
		report.ExtractionMetrics = statistics.CalculateExtractionMetrics(validations)
	}

	if len(in.Ratings) == 0 {
		return report
	}

	pairs := pairRatings(in, logger)
	report.SampleInfo.PairedRatings = len(pairs)
	s := buildSeries(pairs)
	n := len(pairs)

	if n >= MinReliabilityPairs {
		report.InterRaterReliability = &models.InterRaterReliability{
			CohensKappa:   statistics.CohensKappa(s.aiCategory, s.expertCategory),
			WeightedKappa: statistics.WeightedKappa(s.aiCategory, s.expertCategory),
		}
	}

	if n >= MinCorrelationPairs {
		report.Correlation = &models.Correlation{
			LeadScore: statistics.PearsonCorrelation(s.aiLead, s.expertLead),
			ICPMatch:  statistics.PearsonCorrelation(s.aiICP, s.expertICP),
		}
	}

	if n >= MinErrorPairs {
		report.ErrorMetrics = &models.ErrorMetrics{
			LeadScoreMAE:  statistics.MeanAbsoluteError(s.aiLead, s.expertLead),
			LeadScoreRMSE: statistics.RootMeanSquareError(s.aiLead, s.expertLead),
			ICPMatchMAE:   statistics.MeanAbsoluteError(s.aiICP, s.expertICP),
			ICPMatchRMSE:  statistics.RootMeanSquareError(s.aiICP, s.expertICP),
		}
		if n >= MinBootstrapPairs {
			ci := statistics.BootstrapMeanCI(statistics.AbsoluteErrors(s.aiLead, s.expertLead), MAEConfidenceLevel)
			report.ErrorMetrics.LeadScoreMAECI = &ci
		}
	}

	if n >= MinClassificationPairs {
		cm := statistics.BuildConfusionMatrix(s.aiCategory, s.expertCategory)
		report.ConfusionMatrix = &cm
		report.ClassificationMetrics = &models.ClassificationReport{
			PerCategory: statistics.Classify(cm),
			Accuracy:    statistics.Accuracy(cm),
			MacroF1:     statistics.MacroF1(cm),
			WeightedF1:  statistics.WeightedF1(cm),
		}
	}

	if n >= MinComponentPairs {
		report.ComponentAnalysis = componentAnalysis(pairs)
	}

	return report
}

func sampleInfo(in Input) models.SampleInfo {
	info := models.SampleInfo{
		TotalAnalyses: len(in.Analyses),
		TotalRatings:  len(in.Ratings),
		UniqueExperts: []string{},
	}

	seenExperts := make(map[string]bool)
	rated := make(map[string]bool)
	for _, r := range in.Ratings {
		if !seenExperts[r.ExpertName] {
			seenExperts[r.ExpertName] = true
			info.UniqueExperts = append(info.UniqueExperts, r.ExpertName)
		}
		if r.BlindRating {
			info.BlindRatingCount++
		}
		rated[r.AnalysisID] = true
	}
	info.RatedAnalyses = len(rated)
	return info
}

// pairRatings matches each rating to its analysis. Ratings pointing at an
// unknown analysis are dropped.
func pairRatings(in Input, logger *slog.Logger) []pair {
	byID := make(map[string]*models.Analysis, len(in.Analyses))
	for i := range in.Analyses {
		byID[in.Analyses[i].ID] = &in.Analyses[i]
	}

	pairs := make([]pair, 0, len(in.Ratings))
	for i := range in.Ratings {
		r := &in.Ratings[i]
		a, ok := byID[r.AnalysisID]
		if !ok {
			logger.Debug("skipping orphaned expert rating", "rating_id", r.ID, "analysis_id", r.AnalysisID)
			continue
		}
		pairs = append(pairs, pair{analysis: a, rating: r})
	}
	return pairs
}

func buildSeries(pairs []pair) series {
	n := len(pairs)
	s := series{
		aiLead:         make([]float64, 0, n),
		expertLead:     make([]float64, 0, n),
		aiICP:          make([]float64, 0, n),
		expertICP:      make([]float64, 0, n),
		aiCategory:     make([]statistics.Category, 0, n),
		expertCategory: make([]statistics.Category, 0, n),
	}
	for _, p := range pairs {
		s.aiLead = append(s.aiLead, p.analysis.LeadScore)
		s.expertLead = append(s.expertLead, p.rating.LeadScore)
		s.aiICP = append(s.aiICP, p.analysis.ICPMatchPercentage)
		s.expertICP = append(s.expertICP, p.rating.ICPMatchPercentage)
		s.aiCategory = append(s.aiCategory, statistics.ScoreToCategory(p.analysis.LeadScore))
		s.expertCategory = append(s.expertCategory, p.rating.Category)
	}
	return s
}

// componentAnalysis correlates each component named by the experts. A pair
// only counts when both sides scored the component.
func componentAnalysis(pairs []pair) []models.ComponentAnalysis {
	var names []string
	seen := make(map[string]bool)
	for _, p := range pairs {
		for _, c := range p.rating.ComponentScores {
			if !seen[c.Name] {
				seen[c.Name] = true
				names = append(names, c.Name)
			}
		}
	}

	out := []models.ComponentAnalysis{}
	for _, name := range names {
		var ai, expert []float64
		for _, p := range pairs {
			aiComp, ok := p.analysis.Component(name)
			if !ok {
				continue
			}
			expComp, ok := p.rating.Component(name)
			if !ok {
				continue
			}
			ai = append(ai, aiComp.Score)
			expert = append(expert, expComp.Score)
		}
		if len(ai) < MinComponentPairs {
			continue
		}
		out = append(out, models.ComponentAnalysis{
			Name:    name,
			Pearson: statistics.PearsonCorrelation(ai, expert),
			MAE:     statistics.MeanAbsoluteError(ai, expert),
		})
	}
	return out
}
