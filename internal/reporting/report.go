package reporting

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/spboyer/leadval/internal/metrics"
	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/statistics"
)

// section is one titled block of a rendered report.
type section struct {
	title  string
	notes  []string
	fields [][2]string
	tables []*table
}

func (s *section) field(label, value string) {
	s.fields = append(s.fields, [2]string{label, value})
}

func insufficient(pairs int) []string {
	return []string{fmt.Sprintf("%s: requires at least %d paired ratings.", statistics.InsufficientData, pairs)}
}

func buildSections(r *models.ValidationMetrics) []section {
	info := r.SampleInfo
	sample := section{title: "Sample Information"}
	sample.field("Total analyses", strconv.Itoa(info.TotalAnalyses))
	sample.field("Expert ratings", fmt.Sprintf("%d (%d paired)", info.TotalRatings, info.PairedRatings))
	sample.field("Rated analyses", strconv.Itoa(info.RatedAnalyses))
	experts := strconv.Itoa(len(info.UniqueExperts))
	if len(info.UniqueExperts) > 0 {
		experts += " (" + strings.Join(info.UniqueExperts, ", ") + ")"
	}
	sample.field("Unique experts", experts)
	sample.field("Blind ratings", strconv.Itoa(info.BlindRatingCount))
	if notice := MinimumDataNotice(info); notice != "" {
		sample.notes = append(sample.notes, notice)
	}
	if info.TotalRatings == 0 {
		sample.notes = append(sample.notes, "No expert ratings submitted yet.")
	}
	sections := []section{sample}

	if info.TotalRatings > 0 {
		sections = append(sections,
			reliabilitySection(r),
			correlationSection(r),
			errorSection(r),
			confusionSection(r),
			classificationSection(r),
			componentSection(r),
		)
	}
	if len(r.ExtractionMetrics) > 0 {
		sections = append(sections, extractionSection(r))
	}
	return sections
}

func reliabilitySection(r *models.ValidationMetrics) section {
	s := section{title: "Inter-Rater Reliability"}
	irr := r.InterRaterReliability
	if irr == nil {
		s.notes = insufficient(metrics.MinReliabilityPairs)
		return s
	}
	s.field("Cohen's kappa", fmt.Sprintf("%.3f (%s)", irr.CohensKappa.Kappa, irr.CohensKappa.Interpretation))
	s.field("Weighted kappa", fmt.Sprintf("%.3f (%s)", irr.WeightedKappa.Kappa, irr.WeightedKappa.Interpretation))
	s.field("Observed agreement", fmt.Sprintf("%.3f", irr.CohensKappa.ObservedAgreement))
	s.field("Expected agreement", fmt.Sprintf("%.3f", irr.CohensKappa.ExpectedAgreement))
	return s
}

func correlationSection(r *models.ValidationMetrics) section {
	s := section{title: "Correlation"}
	c := r.Correlation
	if c == nil {
		s.notes = insufficient(metrics.MinCorrelationPairs)
		return s
	}
	s.field("Lead score", describeCorrelation(c.LeadScore.R, c.LeadScore.PValue, c.LeadScore.N))
	s.field("ICP match", describeCorrelation(c.ICPMatch.R, c.ICPMatch.PValue, c.ICPMatch.N))
	return s
}

func errorSection(r *models.ValidationMetrics) section {
	s := section{title: "Error Metrics"}
	e := r.ErrorMetrics
	if e == nil {
		s.notes = insufficient(metrics.MinErrorPairs)
		return s
	}
	s.field("Lead score", fmt.Sprintf("MAE %.2f (%s), RMSE %.2f", e.LeadScoreMAE, InterpretError(e.LeadScoreMAE), e.LeadScoreRMSE))
	if ci := e.LeadScoreMAECI; ci != nil {
		s.field("Lead score MAE interval", fmt.Sprintf("%.0f%% CI %.2f to %.2f (bootstrap, %d resamples)",
			ci.ConfidenceLevel*100, ci.Lower, ci.Upper, ci.Resamples))
	}
	s.field("ICP match", fmt.Sprintf("MAE %.2f (%s), RMSE %.2f", e.ICPMatchMAE, InterpretError(e.ICPMatchMAE), e.ICPMatchRMSE))
	return s
}

func confusionSection(r *models.ValidationMetrics) section {
	s := section{title: "Confusion Matrix"}
	cm := r.ConfusionMatrix
	if cm == nil {
		s.notes = insufficient(metrics.MinClassificationPairs)
		return s
	}
	header := []string{"AI \\ Expert"}
	for _, l := range cm.Labels {
		header = append(header, titleCase(string(l)))
	}
	t := newTable(header...)
	for i, l := range cm.Labels {
		row := []string{titleCase(string(l))}
		for j := range cm.Labels {
			row = append(row, strconv.Itoa(cm.Matrix[i][j]))
		}
		t.add(row...)
	}
	s.tables = append(s.tables, t)
	s.notes = append(s.notes, fmt.Sprintf("Rows are AI predictions, columns are expert ratings. Diagonal = agreement. Total: %d", cm.Total))
	return s
}

func classificationSection(r *models.ValidationMetrics) section {
	s := section{title: "Classification Metrics"}
	c := r.ClassificationMetrics
	if c == nil {
		s.notes = insufficient(metrics.MinClassificationPairs)
		return s
	}
	t := newTable("Category", "Precision", "Recall", "F1", "Support")
	for _, cat := range statistics.Categories {
		m := c.PerCategory[cat]
		t.add(titleCase(string(cat)), f3(m.Precision), f3(m.Recall), f3(m.F1), strconv.Itoa(m.Support))
	}
	s.tables = append(s.tables, t)
	s.field("Accuracy", f3(c.Accuracy))
	s.field("Macro F1", f3(c.MacroF1))
	s.field("Weighted F1", f3(c.WeightedF1))
	return s
}

func componentSection(r *models.ValidationMetrics) section {
	s := section{title: "Component Analysis"}
	if r.ComponentAnalysis == nil {
		s.notes = insufficient(metrics.MinComponentPairs)
		return s
	}
	if len(r.ComponentAnalysis) == 0 {
		s.notes = []string{fmt.Sprintf("No component was scored by both the AI and an expert in at least %d pairs.", metrics.MinComponentPairs)}
		return s
	}
	t := newTable("Component", "Pearson r", "p-value", "MAE", "n")
	for _, c := range r.ComponentAnalysis {
		t.add(c.Name, f3(c.Pearson.R), fmt.Sprintf("%.4f", c.Pearson.PValue), fmt.Sprintf("%.1f", c.MAE), strconv.Itoa(c.Pearson.N))
	}
	s.tables = append(s.tables, t)
	return s
}

func extractionSection(r *models.ValidationMetrics) section {
	s := section{title: "Data Extraction Accuracy"}
	t := newTable("Field", "Correct", "Partial", "Incorrect", "Accuracy")
	for _, f := range r.ExtractionMetrics {
		t.add(f.Field, strconv.Itoa(f.Correct), strconv.Itoa(f.Partial), strconv.Itoa(f.Incorrect), fmt.Sprintf("%.1f%%", f.Accuracy*100))
	}
	s.tables = append(s.tables, t)
	return s
}

func f3(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// FormatSummaryReport renders a validation report as plain text.
func FormatSummaryReport(r *models.ValidationMetrics) string {
	var b strings.Builder
	b.WriteString("=== Validation Report ===\n")

	for _, s := range buildSections(r) {
		b.WriteString("\n" + s.title + "\n")
		width := 0
		for _, f := range s.fields {
			width = max(width, len(f[0])+1)
		}
		for _, t := range s.tables {
			b.WriteString(t.text("  "))
		}
		for _, f := range s.fields {
			b.WriteString("  " + padRight(f[0]+":", width) + " " + f[1] + "\n")
		}
		for _, n := range s.notes {
			b.WriteString("  " + n + "\n")
		}
	}
	return b.String()
}

// FormatMarkdown renders a validation report as GitHub-flavored markdown.
func FormatMarkdown(r *models.ValidationMetrics) string {
	var b strings.Builder
	b.WriteString("# Validation Report\n")

	for _, s := range buildSections(r) {
		b.WriteString("\n## " + s.title + "\n\n")
		for _, t := range s.tables {
			b.WriteString(t.markdown())
			b.WriteString("\n")
		}
		for _, f := range s.fields {
			b.WriteString("- **" + f[0] + ":** " + f[1] + "\n")
		}
		if len(s.fields) > 0 {
			b.WriteString("\n")
		}
		for _, n := range s.notes {
			b.WriteString("> " + n + "\n\n")
		}
	}
	b.WriteString("## Interpretation Guide\n\n")
	b.WriteString(interpretationGuide)
	return b.String()
}

const interpretationGuide = `| Kappa | Agreement |
| --- | --- |
| < 0.00 | Poor |
| 0.00 - 0.20 | Slight |
| 0.21 - 0.40 | Fair |
| 0.41 - 0.60 | Moderate |
| 0.61 - 0.80 | Substantial |
| 0.81 - 1.00 | Almost perfect |

- Pearson r: |r| < 0.3 weak, 0.3 to 0.7 moderate, 0.7 and above strong. p < 0.05 is significant.
- MAE on the 0-100 scale: below 10 is excellent, 10 to 20 is good, above 20 is significant disagreement. RMSE penalizes large errors more heavily.
`

// FormatHTML renders the markdown report as a standalone HTML page.
func FormatHTML(r *models.ValidationMetrics, title string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(FormatMarkdown(r)), &body); err != nil {
		return "", fmt.Errorf("rendering HTML report: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString("<style>body{font-family:sans-serif;max-width:60rem;margin:2rem auto}table{border-collapse:collapse}th,td{border:1px solid #ccc;padding:.25rem .5rem}</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
