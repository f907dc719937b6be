package webapi

import (
	"context"

	"github.com/spboyer/leadval/internal/models"
)

//go:generate go tool mockgen -source=store.go -destination=store_mock_test.go -package=webapi

// Store provides tenant-scoped access to validation records.
type Store interface {
	// ListAnalysesForValidation returns non-archived analyses with their
	// company and expert ratings, newest first.
	ListAnalysesForValidation(ctx context.Context, tenant string) ([]models.AnalysisForValidation, error)
	// GetAnalysis returns one analysis with its company and ratings.
	GetAnalysis(ctx context.Context, tenant, id string) (*models.AnalysisForValidation, error)
	ListExpertRatings(ctx context.Context, tenant string) ([]models.ExpertRating, error)
	// UpsertExpertRating inserts or replaces the rating keyed on
	// (AnalysisID, ExpertName).
	UpsertExpertRating(ctx context.Context, tenant string, r *models.ExpertRating) error
	ListExtractionValidations(ctx context.Context, tenant string) ([]models.ExtractionValidation, error)
	// UpsertExtractionValidation inserts or replaces the validation keyed on
	// (CompanyID, ExpertName).
	UpsertExtractionValidation(ctx context.Context, tenant string, v *models.ExtractionValidation) error
}

// Reporter computes a tenant's validation report.
type Reporter interface {
	Compute(ctx context.Context, tenant string) (*models.ValidationMetrics, error)
}
