package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/statistics"
)

func TestService_Compute(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	src.EXPECT().ListAnalyses(gomock.Any(), "acme").Return([]models.Analysis{
		analysis("a1", 80, 70),
		analysis("a2", 30, 20),
	}, nil)
	src.EXPECT().ListExpertRatings(gomock.Any(), "acme").Return([]models.ExpertRating{
		rating("a1", "dana", 75, 70, statistics.Hot),
		rating("a2", "dana", 35, 25, statistics.Cold),
	}, nil)
	src.EXPECT().ListExtractionValidations(gomock.Any(), "acme").Return(nil, nil)

	report, err := NewService(src).Compute(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, 2, report.SampleInfo.PairedRatings)
	require.NotNil(t, report.InterRaterReliability)
	assert.InDelta(t, 1.0, report.InterRaterReliability.CohensKappa.Kappa, 1e-9)
	assert.Nil(t, report.Correlation)
	assert.Nil(t, report.ExtractionMetrics)
}

func TestService_ComputeSourceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	boom := errors.New("database is locked")

	src.EXPECT().ListAnalyses(gomock.Any(), "acme").Return(nil, nil).AnyTimes()
	src.EXPECT().ListExpertRatings(gomock.Any(), "acme").Return(nil, boom).AnyTimes()
	src.EXPECT().ListExtractionValidations(gomock.Any(), "acme").Return(nil, nil).AnyTimes()

	report, err := NewService(src).Compute(context.Background(), "acme")
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "listing expert ratings")
}

func TestService_ComputeCanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src.EXPECT().ListAnalyses(gomock.Any(), "acme").DoAndReturn(
		func(ctx context.Context, _ string) ([]models.Analysis, error) {
			return nil, ctx.Err()
		}).AnyTimes()
	src.EXPECT().ListExpertRatings(gomock.Any(), "acme").Return(nil, nil).AnyTimes()
	src.EXPECT().ListExtractionValidations(gomock.Any(), "acme").Return(nil, nil).AnyTimes()

	_, err := NewService(src).Compute(ctx, "acme")
	assert.ErrorIs(t, err, context.Canceled)
}
