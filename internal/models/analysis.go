package models

import "time"

// Company is a prospect whose data was extracted and scored.
type Company struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Domain        string   `json:"domain"`
	Industry      string   `json:"industry,omitempty"`
	Description   string   `json:"description,omitempty"`
	EmployeeCount string   `json:"employee_count,omitempty"`
	Location      string   `json:"location,omitempty"`
	TechStack     []string `json:"tech_stack,omitempty"`
}

// ComponentScore is one named dimension of a lead score. Weight is only
// populated on AI analyses.
type ComponentScore struct {
	Name      string  `json:"name" mapstructure:"name"`
	Score     float64 `json:"score" mapstructure:"score"`
	Weight    float64 `json:"weight,omitempty" mapstructure:"weight"`
	Reasoning string  `json:"reasoning,omitempty" mapstructure:"reasoning"`
}

// Analysis is one AI-generated lead assessment.
type Analysis struct {
	ID                 string           `json:"id"`
	CompanyID          string           `json:"company_id"`
	LeadScore          float64          `json:"lead_score"`
	ICPMatchPercentage float64          `json:"icp_match_percentage"`
	ComponentScores    []ComponentScore `json:"component_scores"`
	Archived           bool             `json:"archived,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// Component returns the named component score, if present.
func (a *Analysis) Component(name string) (ComponentScore, bool) {
	return findComponent(a.ComponentScores, name)
}

// AnalysisForValidation is an analysis joined with its company and every
// expert rating recorded against it.
type AnalysisForValidation struct {
	Analysis
	Company       Company        `json:"company"`
	ExpertRatings []ExpertRating `json:"expert_ratings"`
}

func findComponent(scores []ComponentScore, name string) (ComponentScore, bool) {
	for _, s := range scores {
		if s.Name == name {
			return s, true
		}
	}
	return ComponentScore{}, false
}
