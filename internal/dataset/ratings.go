package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/statistics"
)

// Column prefixes for per-component data. A "component:fit" column holds
// the expert's score for the "fit" component and "reasoning:fit" its
// justification.
const (
	ComponentPrefix = "component:"
	ReasoningPrefix = "reasoning:"
)

// ratingRow is the flat shape of one CSV rating row.
type ratingRow struct {
	AnalysisID            string  `mapstructure:"analysis_id"`
	ExpertName            string  `mapstructure:"expert_name"`
	ExpertRole            string  `mapstructure:"expert_role"`
	LeadScore             float64 `mapstructure:"lead_score"`
	ICPMatchPercentage    float64 `mapstructure:"icp_match_percentage"`
	Category              string  `mapstructure:"category"`
	BlindRating           bool    `mapstructure:"blind_rating"`
	Notes                 string  `mapstructure:"notes"`
	RatingDurationSeconds int     `mapstructure:"rating_duration_seconds"`
}

// ParseExpertRatings converts CSV rows into expert ratings. Numeric and
// boolean cells are decoded loosely ("72", "72.5", "true", "1"). first is
// the 1-based data row of rows[0], as passed to LoadCSVRange; errors name
// the file row, counting the header as row 1.
func ParseExpertRatings(rows []Row, first int) ([]models.ExpertRating, error) {
	out := make([]models.ExpertRating, 0, len(rows))
	for i, row := range rows {
		r, err := parseRating(row)
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: %w", first+i+1, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func parseRating(row Row) (models.ExpertRating, error) {
	var rr ratingRow
	if err := weakDecode(row, &rr); err != nil {
		return models.ExpertRating{}, err
	}

	category, err := statistics.ParseCategory(rr.Category)
	if err != nil {
		return models.ExpertRating{}, err
	}

	components, err := parseComponents(row)
	if err != nil {
		return models.ExpertRating{}, err
	}

	return models.ExpertRating{
		AnalysisID:            rr.AnalysisID,
		ExpertName:            rr.ExpertName,
		ExpertRole:            rr.ExpertRole,
		LeadScore:             rr.LeadScore,
		ICPMatchPercentage:    rr.ICPMatchPercentage,
		Category:              category,
		ComponentScores:       components,
		BlindRating:           rr.BlindRating,
		Notes:                 rr.Notes,
		RatingDurationSeconds: rr.RatingDurationSeconds,
	}, nil
}

// parseComponents collects component columns in name order. Empty score
// cells are skipped.
func parseComponents(row Row) ([]models.ComponentScore, error) {
	var names []string
	for col, val := range row {
		if name, ok := strings.CutPrefix(col, ComponentPrefix); ok && name != "" && val != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	components := make([]models.ComponentScore, 0, len(names))
	for _, name := range names {
		var c models.ComponentScore
		raw := map[string]any{
			"name":      name,
			"score":     row[ComponentPrefix+name],
			"reasoning": row[ReasoningPrefix+name],
		}
		if err := weakDecode(raw, &c); err != nil {
			return nil, fmt.Errorf("component %q: %w", name, err)
		}
		components = append(components, c)
	}
	return components, nil
}

func weakDecode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
