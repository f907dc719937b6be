package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spboyer/leadval/internal/metrics"
	"github.com/spboyer/leadval/internal/webserver"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		port           int
		host           string
		allowedOrigins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the REST API server.

Endpoints:
  GET  /api/health                  health check
  GET  /api/report                  validation report (JSON)
  GET  /api/analyses                analyses awaiting expert ratings
  GET  /api/analyses/{id}           one analysis with its ratings
  GET  /api/ratings                 expert ratings
  POST /api/ratings                 submit or replace an expert rating
  GET  /api/extraction-validations  extraction reviews
  POST /api/extraction-validations  submit or replace an extraction review
  GET  /metrics                     Prometheus metrics

The X-Tenant-ID header selects a tenant; requests without it use the
configured tenant. The server binds to 127.0.0.1 unless --host is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Server.Port
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			logger := slog.Default()
			srv, err := webserver.New(webserver.Config{
				Host:           host,
				Port:           port,
				Tenant:         a.cfg.Tenant,
				Store:          st,
				Reporter:       metrics.NewService(st, metrics.WithLogger(logger)),
				AllowedOrigins: allowedOrigins,
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.ErrOrStderr(), "leadval API: http://%s\n", srv.Addr())
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", webserver.DefaultPort, "Port to listen on")
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Interface to bind")
	cmd.Flags().StringSliceVar(&allowedOrigins, "allow-origin", nil, "Origins allowed by CORS (repeatable)")

	return cmd
}
