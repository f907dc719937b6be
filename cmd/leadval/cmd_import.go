package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spboyer/leadval/internal/dataset"
	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/spinner"
	"github.com/spboyer/leadval/internal/store"
	"github.com/spboyer/leadval/internal/validation"
)

// importBundle is the JSON import format. Records reference each other by
// ID, so companies come before the analyses that score them and analyses
// before the ratings of them.
type importBundle struct {
	Companies             []models.Company              `json:"companies"`
	Analyses              []models.Analysis             `json:"analyses"`
	ExpertRatings         []models.ExpertRating         `json:"expert_ratings"`
	ExtractionValidations []models.ExtractionValidation `json:"extraction_validations"`
}

func (b *importBundle) summary() string {
	return fmt.Sprintf("%d companies, %d analyses, %d expert ratings, %d extraction validations",
		len(b.Companies), len(b.Analyses), len(b.ExpertRatings), len(b.ExtractionValidations))
}

type importOptions struct {
	from   int
	to     int
	dryRun bool
}

func newImportCommand(a *app) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <file.json|file.csv>",
		Short: "Import companies, analyses, and expert ratings",
		Long: `Import records into the current tenant.

A .json file holds a bundle:

  {"companies": [...], "analyses": [...],
   "expert_ratings": [...], "extraction_validations": [...]}

A .csv file holds expert ratings, one per row, with columns analysis_id,
expert_name, lead_score, icp_match_percentage, category, and optional
expert_role, blind_rating, notes, rating_duration_seconds. Each
"component:<name>" column scores a component and "reasoning:<name>" explains
it. Use --from/--to to import a slice of data rows (1-based, inclusive).

Every rating and extraction validation is schema-checked before anything is
written. Re-importing a rating for the same analysis and expert replaces it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.from, "from", 0, "First CSV data row to import (1-based)")
	cmd.Flags().IntVar(&opts.to, "to", 0, "Last CSV data row to import (inclusive)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate the file without writing anything")

	return cmd
}

func runImport(cmd *cobra.Command, a *app, path string, opts importOptions) error {
	var (
		bundle *importBundle
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		bundle, err = loadCSVBundle(path, opts)
	case ".json":
		if opts.from != 0 || opts.to != 0 {
			return errors.New("--from/--to apply to CSV files only")
		}
		bundle, err = loadJSONBundle(path)
	default:
		return fmt.Errorf("unsupported import file %q: expected .json or .csv", path)
	}
	if err != nil {
		return err
	}
	if err := validateBundle(bundle); err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", bundle.summary())
		return nil
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	sp := spinner.Start(cmd.ErrOrStderr(), "Importing "+bundle.summary())
	err = writeBundle(cmd, st, a.cfg.Tenant, bundle)
	sp.Stop()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into tenant %q\n", bundle.summary(), a.cfg.Tenant)
	return nil
}

func loadJSONBundle(path string) (*importBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var b importBundle
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &b, nil
}

func loadCSVBundle(path string, opts importOptions) (*importBundle, error) {
	from, to := opts.from, opts.to
	if from == 0 {
		from = 1
	}
	if to == 0 {
		to = math.MaxInt
	}
	rows, err := dataset.LoadCSVRange(path, from, to)
	if err != nil {
		return nil, err
	}
	ratings, err := dataset.ParseExpertRatings(rows, from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &importBundle{ExpertRatings: ratings}, nil
}

// validateBundle schema-checks every rating and extraction validation and
// reports all problems at once.
func validateBundle(b *importBundle) error {
	var problems []string
	for i := range b.ExpertRatings {
		for _, e := range validation.ValidateRating(&b.ExpertRatings[i]) {
			problems = append(problems, fmt.Sprintf("expert_ratings[%d]%s", i, e))
		}
	}
	for i := range b.ExtractionValidations {
		for _, e := range validation.ValidateExtraction(&b.ExtractionValidations[i]) {
			problems = append(problems, fmt.Sprintf("extraction_validations[%d]%s", i, e))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("import rejected, %d problem(s):\n  %s", len(problems), strings.Join(problems, "\n  "))
	}
	return nil
}

func writeBundle(cmd *cobra.Command, st *store.Store, tenant string, b *importBundle) error {
	ctx := cmd.Context()
	for i := range b.Companies {
		if err := st.UpsertCompany(ctx, tenant, &b.Companies[i]); err != nil {
			return fmt.Errorf("companies[%d]: %w", i, err)
		}
	}
	for i := range b.Analyses {
		if err := st.UpsertAnalysis(ctx, tenant, &b.Analyses[i]); err != nil {
			return fmt.Errorf("analyses[%d]: %w", i, err)
		}
	}
	for i := range b.ExpertRatings {
		if err := st.UpsertExpertRating(ctx, tenant, &b.ExpertRatings[i]); err != nil {
			return fmt.Errorf("expert_ratings[%d]: %w", i, err)
		}
	}
	for i := range b.ExtractionValidations {
		if err := st.UpsertExtractionValidation(ctx, tenant, &b.ExtractionValidations[i]); err != nil {
			return fmt.Errorf("extraction_validations[%d]: %w", i, err)
		}
	}
	return nil
}
