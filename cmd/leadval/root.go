package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spboyer/leadval/internal/projectconfig"
	"github.com/spboyer/leadval/internal/store"
	"github.com/spboyer/leadval/internal/webapi"
)

var version = "dev"

// app carries state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	dir    string
	tenant string
	dbPath string

	cfg *projectconfig.ProjectConfig
}

// load reads .leadval.yaml (walking up from --dir) and applies flag overrides.
func (a *app) load() error {
	cfg, err := projectconfig.Load(a.dir)
	if err != nil {
		return err
	}
	if a.tenant != "" {
		cfg.Tenant = a.tenant
	}
	if a.dbPath != "" {
		cfg.Store.Path = a.dbPath
	}
	a.cfg = cfg
	slog.Debug("configuration loaded", "dir", cfg.Dir, "tenant", cfg.Tenant, "db", cfg.Store.Path)
	return nil
}

func (a *app) openStore() (*store.Store, error) {
	st, err := store.Open(a.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	slog.Debug("using store", "path", st.Path(), "tenant", a.cfg.Tenant)
	return st, nil
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "leadval",
		Short: "leadval - validate AI lead scoring against expert judgment",
		Long: `leadval measures how well AI lead analyses agree with sales experts.

Experts rate the same companies the AI scored. leadval stores both and
reports inter-rater reliability (Cohen's and weighted kappa), Pearson
correlation, error metrics, a hot/warm/cold confusion matrix with
precision/recall/F1, per-component agreement, and data extraction accuracy.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "Directory to search for "+projectconfig.FileName)
	cmd.PersistentFlags().StringVar(&a.tenant, "tenant", "", "Tenant to operate on (overrides config)")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Path to the SQLite database (overrides config)")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		return a.load()
	}

	webapi.Version = version

	// Add subcommands
	cmd.AddCommand(newReportCommand(a))
	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newImportCommand(a))
	cmd.AddCommand(newRateCommand(a))
	cmd.AddCommand(newValidateCommand(a))
	cmd.AddCommand(newAnalysesCommand(a))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
