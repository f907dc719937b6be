package metrics

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/spboyer/leadval/internal/models"
)

//go:generate go tool mockgen -source=service.go -destination=source_mock_test.go -package=metrics

// Source supplies one tenant's analyses, expert ratings, and extraction
// validations.
type Source interface {
	ListAnalyses(ctx context.Context, tenant string) ([]models.Analysis, error)
	ListExpertRatings(ctx context.Context, tenant string) ([]models.ExpertRating, error)
	ListExtractionValidations(ctx context.Context, tenant string) ([]models.ExtractionValidation, error)
}

// Service computes validation reports from a Source.
type Service struct {
	source Source
	logger *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service reading from source.
func NewService(source Source, opts ...ServiceOption) *Service {
	s := &Service{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute fetches a snapshot of the tenant's data and builds its report.
func (s *Service) Compute(ctx context.Context, tenant string) (*models.ValidationMetrics, error) {
	var in Input

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		analyses, err := s.source.ListAnalyses(gctx, tenant)
		if err != nil {
			return fmt.Errorf("listing analyses: %w", err)
		}
		in.Analyses = analyses
		return nil
	})
	g.Go(func() error {
		ratings, err := s.source.ListExpertRatings(gctx, tenant)
		if err != nil {
			return fmt.Errorf("listing expert ratings: %w", err)
		}
		in.Ratings = ratings
		return nil
	})
	g.Go(func() error {
		validations, err := s.source.ListExtractionValidations(gctx, tenant)
		if err != nil {
			return fmt.Errorf("listing extraction validations: %w", err)
		}
		in.ExtractionValidations = validations
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("validation metrics fetch failed", "tenant", tenant, "error", err)
		return nil, err
	}

	report := compute(in, s.logger)
	s.logger.Debug("validation metrics computed",
		"tenant", tenant,
		"analyses", report.SampleInfo.TotalAnalyses,
		"ratings", report.SampleInfo.TotalRatings,
		"paired", report.SampleInfo.PairedRatings)
	return report, nil
}
