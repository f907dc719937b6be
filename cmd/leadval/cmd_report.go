package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spboyer/leadval/internal/metrics"
	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/projectconfig"
	"github.com/spboyer/leadval/internal/reporting"
	"github.com/spboyer/leadval/internal/spinner"
)

type reportOptions struct {
	format string
	output string
	title  string
	check  bool
}

func newReportCommand(a *app) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the expert-vs-AI validation report",
		Long: `Compute the validation report for the current tenant.

Formats:
  text      human-readable summary (default from config)
  json      the raw metrics document
  markdown  GitHub-flavored markdown
  html      standalone HTML page
  junit     JUnit XML with one test case per quality gate

With --check, the report is compared against the thresholds in
.leadval.yaml (report.thresholds) and the command exits 1 when a gate fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = a.cfg.Report.Format
			}
			return runReport(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text, json, markdown, html, or junit")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&opts.title, "title", "Lead Validation Report", "Page title for HTML output")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Fail with exit code 1 when a quality gate fails")

	return cmd
}

func runReport(cmd *cobra.Command, a *app, opts reportOptions) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	sp := spinner.Start(cmd.ErrOrStderr(), "Computing validation metrics")
	report, err := metrics.NewService(st).Compute(cmd.Context(), a.cfg.Tenant)
	sp.Stop()
	if err != nil {
		return fmt.Errorf("computing validation metrics: %w", err)
	}
	th := thresholdsFromConfig(a.cfg.Report.Thresholds)

	data, err := renderReport(report, opts, th, a.cfg.Tenant)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", opts.output)
	} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	if !opts.check {
		return nil
	}
	gates := reporting.CheckThresholds(report, th)
	printGates(cmd.ErrOrStderr(), gates)
	if reporting.GatesFailed(gates) {
		return &CheckFailedError{Message: "validation report failed one or more quality gates"}
	}
	return nil
}

func renderReport(report *models.ValidationMetrics, opts reportOptions, th reporting.Thresholds, tenant string) ([]byte, error) {
	switch opts.format {
	case "text":
		return []byte(reporting.FormatSummaryReport(report)), nil
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding report: %w", err)
		}
		return append(data, '\n'), nil
	case "markdown", "md":
		return []byte(reporting.FormatMarkdown(report)), nil
	case "html":
		page, err := reporting.FormatHTML(report, opts.title)
		if err != nil {
			return nil, err
		}
		return []byte(page), nil
	case "junit":
		return reporting.MarshalJUnitXML(report, th, tenant, time.Now())
	default:
		return nil, fmt.Errorf("unknown format %q: must be text, json, markdown, html, or junit", opts.format)
	}
}

func thresholdsFromConfig(c projectconfig.ThresholdsConfig) reporting.Thresholds {
	deref := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	return reporting.Thresholds{
		MinKappa:       deref(c.MinKappa),
		MinCorrelation: deref(c.MinCorrelation),
		MaxMAE:         deref(c.MaxMAE),
		MinAccuracy:    deref(c.MinAccuracy),
	}
}

func printGates(w io.Writer, gates []reporting.Gate) {
	for _, g := range gates {
		switch {
		case g.Skipped != "":
			fmt.Fprintf(w, "SKIP  %-24s %s\n", g.Name, g.Skipped)
		case g.Passed:
			fmt.Fprintf(w, "PASS  %-24s %.3f (limit %.3f)\n", g.Name, g.Value, g.Limit)
		default:
			fmt.Fprintf(w, "FAIL  %-24s %.3f (limit %.3f)\n", g.Name, g.Value, g.Limit)
		}
	}
}
