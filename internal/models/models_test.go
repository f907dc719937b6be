package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/leadval/internal/statistics"
)

func TestComponentLookup(t *testing.T) {
	a := Analysis{ComponentScores: []ComponentScore{
		{Name: "fit", Score: 80, Weight: 0.6},
		{Name: "budget", Score: 40, Weight: 0.4},
	}}
	r := ExpertRating{ComponentScores: []ComponentScore{{Name: "budget", Score: 55}}}

	got, ok := a.Component("budget")
	require.True(t, ok)
	assert.Equal(t, 40.0, got.Score)

	got, ok = r.Component("budget")
	require.True(t, ok)
	assert.Equal(t, 55.0, got.Score)

	_, ok = r.Component("fit")
	assert.False(t, ok)
}

func TestExtractionValidation_Statuses(t *testing.T) {
	v := ExtractionValidation{FieldValidations: map[string]FieldValidation{
		"industry":       {Status: statistics.StatusCorrect},
		"employee_count": {Status: statistics.StatusIncorrect, CorrectedValue: "200-500"},
	}}

	assert.Equal(t, statistics.FieldValidations{
		"industry":       statistics.StatusCorrect,
		"employee_count": statistics.StatusIncorrect,
	}, v.Statuses())
}

func TestExpertRating_JSONOmitsAIOnlyFields(t *testing.T) {
	r := ExpertRating{
		AnalysisID: "a1",
		ExpertName: "Dana",
		LeadScore:  72,
		Category:   statistics.Warm,
		ComponentScores: []ComponentScore{
			{Name: "fit", Score: 70},
		},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "warm", raw["category"])
	assert.NotContains(t, raw, "rating_duration_seconds")
	assert.NotContains(t, raw, "expert_role")
	component := raw["component_scores"].([]any)[0].(map[string]any)
	assert.NotContains(t, component, "weight")
}
