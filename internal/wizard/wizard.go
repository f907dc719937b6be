// Package wizard collects an expert rating interactively.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/statistics"
)

// DefaultComponent is rated when the analysis carries no component scores.
const DefaultComponent = "overall"

// Options seed the rating form.
type Options struct {
	ExpertName string
	ExpertRole string
	// Blind hides the AI's scores while rating.
	Blind bool
	// Now is the clock used to time the rating; defaults to time.Now.
	Now func() time.Time
}

// ComponentAnswer is the raw form input for one component.
type ComponentAnswer struct {
	Name      string
	Score     string
	Reasoning string
}

// Answers holds the raw strings collected by the form.
type Answers struct {
	ExpertName string
	ExpertRole string
	LeadScore  string
	ICPMatch   string
	Category   string
	Components []ComponentAnswer
	Notes      string
}

// NewAnswers prepares empty answers for every component of the analysis.
func NewAnswers(a *models.AnalysisForValidation, opts Options) *Answers {
	ans := &Answers{
		ExpertName: opts.ExpertName,
		ExpertRole: opts.ExpertRole,
	}
	for _, c := range a.ComponentScores {
		ans.Components = append(ans.Components, ComponentAnswer{Name: c.Name})
	}
	if len(ans.Components) == 0 {
		ans.Components = []ComponentAnswer{{Name: DefaultComponent}}
	}
	return ans
}

// Rating converts the answers into an expert rating for analysisID.
func (a *Answers) Rating(analysisID string, blind bool, elapsed time.Duration) (*models.ExpertRating, error) {
	name := strings.TrimSpace(a.ExpertName)
	if err := validateRequired("expert name")(name); err != nil {
		return nil, err
	}
	lead, err := parseScore("lead score", a.LeadScore)
	if err != nil {
		return nil, err
	}
	icp, err := parseScore("ICP match", a.ICPMatch)
	if err != nil {
		return nil, err
	}
	category, err := statistics.ParseCategory(a.Category)
	if err != nil {
		return nil, err
	}

	r := &models.ExpertRating{
		AnalysisID:         analysisID,
		ExpertName:         name,
		ExpertRole:         strings.TrimSpace(a.ExpertRole),
		LeadScore:          lead,
		ICPMatchPercentage: icp,
		Category:           category,
		BlindRating:        blind,
		Notes:              strings.TrimSpace(a.Notes),
	}
	for _, c := range a.Components {
		score, err := parseScore(c.Name, c.Score)
		if err != nil {
			return nil, err
		}
		reasoning := strings.TrimSpace(c.Reasoning)
		if reasoning == "" {
			return nil, fmt.Errorf("%s: reasoning is required", c.Name)
		}
		r.ComponentScores = append(r.ComponentScores, models.ComponentScore{Name: c.Name, Score: score, Reasoning: reasoning})
	}
	if secs := int(elapsed.Round(time.Second).Seconds()); secs > 0 {
		r.RatingDurationSeconds = secs
	}
	return r, nil
}

// Briefing describes the analysis being rated. Blind briefings show only
// the company, never the AI's scores.
func Briefing(a *models.AnalysisForValidation, blind bool) string {
	var b strings.Builder
	c := a.Company
	fmt.Fprintf(&b, "%s (%s)", c.Name, c.Domain)
	if c.Industry != "" {
		fmt.Fprintf(&b, "\nIndustry: %s", c.Industry)
	}
	if c.EmployeeCount != "" {
		fmt.Fprintf(&b, "\nEmployees: %s", c.EmployeeCount)
	}
	if c.Location != "" {
		fmt.Fprintf(&b, "\nLocation: %s", c.Location)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "\n%s", c.Description)
	}
	if blind {
		b.WriteString("\n\nBlind rating: AI scores are hidden.")
		return b.String()
	}
	fmt.Fprintf(&b, "\n\nAI lead score: %.0f, ICP match: %.0f%% (%s)",
		a.LeadScore, a.ICPMatchPercentage, statistics.ScoreToCategory(a.LeadScore))
	for _, s := range a.ComponentScores {
		fmt.Fprintf(&b, "\n  %s: %.0f", s.Name, s.Score)
	}
	return b.String()
}

// RunRatingForm runs an interactive huh form to collect an expert rating of
// the given analysis.
func RunRatingForm(in io.Reader, out io.Writer, a *models.AnalysisForValidation, opts Options) (*models.ExpertRating, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ans := NewAnswers(a, opts)

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewNote().
				Title("Rate this lead").
				Description(Briefing(a, opts.Blind)),
			huh.NewInput().
				Title("Your name").
				Value(&ans.ExpertName).
				Validate(validateRequired("expert name")),
			huh.NewInput().
				Title("Your role").
				Placeholder("Account Executive").
				Value(&ans.ExpertRole),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Lead score").
				Description("0-100").
				Value(&ans.LeadScore).
				Validate(validateScore("lead score")),
			huh.NewInput().
				Title("ICP match percentage").
				Description("0-100").
				Value(&ans.ICPMatch).
				Validate(validateScore("ICP match")),
			huh.NewSelect[string]().
				Title("Category").
				Options(
					huh.NewOption("hot", string(statistics.Hot)),
					huh.NewOption("warm", string(statistics.Warm)),
					huh.NewOption("cold", string(statistics.Cold)),
				).
				Value(&ans.Category),
		),
	}
	for i := range ans.Components {
		c := &ans.Components[i]
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title(c.Name+" score").
				Description("0-100").
				Value(&c.Score).
				Validate(validateScore(c.Name)),
			huh.NewText().
				Title(c.Name+" reasoning").
				Value(&c.Reasoning).
				Validate(validateRequired(c.Name+" reasoning")),
		))
	}
	groups = append(groups, huh.NewGroup(
		huh.NewText().
			Title("Notes").
			Value(&ans.Notes),
	))

	form := huh.NewForm(groups...).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	start := now()
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, err
		}
		return nil, fmt.Errorf("rating form failed: %w", err)
	}
	return ans.Rating(a.ID, opts.Blind, now().Sub(start))
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateScore(field string) func(string) error {
	return func(s string) error {
		_, err := parseScore(field, s)
		return err
	}
}

func parseScore(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", field, s)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("%s: %v is outside 0-100", field, v)
	}
	return v, nil
}
