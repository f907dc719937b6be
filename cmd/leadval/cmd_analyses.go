package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/statistics"
)

func newAnalysesCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "analyses",
		Short: "List analyses available for expert validation",
		Long: `List non-archived analyses for the current tenant, newest first, with
the number of expert ratings each has received.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			analyses, err := st.ListAnalysesForValidation(cmd.Context(), a.cfg.Tenant)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(analyses)
			case "table":
				fmt.Fprint(cmd.OutOrStdout(), formatAnalysesTable(analyses))
				return nil
			default:
				return fmt.Errorf("unknown format %q: must be table or json", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")

	return cmd
}

func formatAnalysesTable(analyses []models.AnalysisForValidation) string {
	if len(analyses) == 0 {
		return "No analyses to validate.\n"
	}
	header := []string{"ID", "COMPANY", "SCORE", "CATEGORY", "RATINGS", "CREATED"}
	rows := [][]string{header}
	for _, a := range analyses {
		rows = append(rows, []string{
			a.ID,
			a.Company.Name,
			strconv.FormatFloat(a.LeadScore, 'f', 0, 64),
			string(statistics.ScoreToCategory(a.LeadScore)),
			strconv.Itoa(len(a.ExpertRatings)),
			a.CreatedAt.Format("2006-01-02"),
		})
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]+2))
		}
		b.WriteString("\n")
	}
	return b.String()
}
