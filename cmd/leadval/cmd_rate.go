package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/spboyer/leadval/internal/validation"
	"github.com/spboyer/leadval/internal/wizard"
)

func newRateCommand(a *app) *cobra.Command {
	var (
		expert string
		role   string
		blind  bool
	)

	cmd := &cobra.Command{
		Use:   "rate <analysis-id>",
		Short: "Rate an analysis interactively",
		Long: `Rate the company behind an AI analysis with an interactive form.

The expert name, role, and blind mode default to the rating section of
.leadval.yaml. In blind mode the AI's scores are hidden while rating.
Rating the same analysis again replaces your earlier rating.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := wizard.Options{
				ExpertName: a.cfg.Rating.ExpertName,
				ExpertRole: a.cfg.Rating.ExpertRole,
				Blind:      a.cfg.Rating.Blind != nil && *a.cfg.Rating.Blind,
			}
			if cmd.Flags().Changed("expert") {
				opts.ExpertName = expert
			}
			if cmd.Flags().Changed("role") {
				opts.ExpertRole = role
			}
			if cmd.Flags().Changed("blind") {
				opts.Blind = blind
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			analysis, err := st.GetAnalysis(cmd.Context(), a.cfg.Tenant, args[0])
			if err != nil {
				return err
			}

			rating, err := wizard.RunRatingForm(cmd.InOrStdin(), cmd.OutOrStdout(), analysis, opts)
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Rating cancelled.")
				return nil
			}
			if err != nil {
				return err
			}
			if errs := validation.ValidateRating(rating); len(errs) > 0 {
				return fmt.Errorf("invalid rating:\n  %s", strings.Join(errs, "\n  "))
			}
			if err := st.UpsertExpertRating(cmd.Context(), a.cfg.Tenant, rating); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved rating %s for %s (%s, lead score %.0f)\n",
				rating.ID, analysis.Company.Name, rating.Category, rating.LeadScore)
			return nil
		},
	}

	cmd.Flags().StringVar(&expert, "expert", "", "Expert name (defaults to rating.expert_name)")
	cmd.Flags().StringVar(&role, "role", "", "Expert role (defaults to rating.expert_role)")
	cmd.Flags().BoolVar(&blind, "blind", false, "Hide the AI's scores while rating")

	return cmd
}
