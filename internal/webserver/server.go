// Package webserver provides the HTTP server that exposes the REST API and
// Prometheus metrics.
package webserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spboyer/leadval/internal/webapi"
)

// DefaultPort is used when Config.Port is zero.
const DefaultPort = 3000

// Config holds the HTTP server configuration.
type Config struct {
	Host           string
	Port           int
	Tenant         string
	Store          webapi.Store
	Reporter       webapi.Reporter
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg     Config
	srv     *http.Server
	logger  *slog.Logger
	metrics *httpMetrics
}

// New creates a new HTTP server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil || cfg.Reporter == nil {
		return nil, errors.New("webserver: store and reporter are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}

	s := &Server{
		cfg:     cfg,
		logger:  cfg.Logger,
		metrics: newHTTPMetrics(),
	}
	s.srv = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("HTTP server starting", "address", s.srv.Addr, "tenant", s.cfg.Tenant)

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
