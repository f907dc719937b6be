package statistics

import "sort"

// FieldStatus is an expert's verdict on one extracted company field.
type FieldStatus string

const (
	StatusCorrect   FieldStatus = "correct"
	StatusIncorrect FieldStatus = "incorrect"
	StatusPartial   FieldStatus = "partial"
)

// FieldValidations maps a field name to the expert's verdict on it.
// Field names are free-form and discovered from the data.
type FieldValidations map[string]FieldStatus

// ExtractionFieldMetrics rolls up verdicts for one field across experts.
type ExtractionFieldMetrics struct {
	Field     string  `json:"field"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Partial   int     `json:"partial"`
	Total     int     `json:"total"`
	Accuracy  float64 `json:"accuracy"`
}

// CalculateExtractionMetrics counts verdicts per field across all
// validations. Unknown statuses register the field but are not counted.
// Output is sorted by field name.
func CalculateExtractionMetrics(validations []FieldValidations) []ExtractionFieldMetrics {
	counts := make(map[string]*ExtractionFieldMetrics)
	for _, v := range validations {
		for field, status := range v {
			m, ok := counts[field]
			if !ok {
				m = &ExtractionFieldMetrics{Field: field}
				counts[field] = m
			}
			switch status {
			case StatusCorrect:
				m.Correct++
			case StatusIncorrect:
				m.Incorrect++
			case StatusPartial:
				m.Partial++
			}
		}
	}

	out := make([]ExtractionFieldMetrics, 0, len(counts))
	for _, m := range counts {
		m.Total = m.Correct + m.Incorrect + m.Partial
		m.Accuracy = safeDivide(float64(m.Correct), float64(m.Total))
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
