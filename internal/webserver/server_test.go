package webserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/leadval/internal/metrics"
	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/store"
)

func newTestServer(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "leadval.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv, err := New(Config{
		Port:     0,
		Tenant:   "default",
		Store:    st,
		Reporter: metrics.NewService(st),
	})
	require.NoError(t, err)
	return srv.Handler(), st
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNew_Defaults(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "leadval.db"))
	require.NoError(t, err)
	defer st.Close()

	srv, err := New(Config{Store: st, Reporter: metrics.NewService(st)})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000", srv.Addr())
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := get(t, handler, "/api/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestReportEndpoint_Empty(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := get(t, handler, "/api/report")

	require.Equal(t, http.StatusOK, rec.Code)
	var report models.ValidationMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Zero(t, report.SampleInfo.TotalAnalyses)
	assert.Nil(t, report.InterRaterReliability)
}

func TestSubmitRatingThenReport(t *testing.T) {
	handler, st := newTestServer(t)
	ctx := context.Background()

	company := models.Company{Name: "Initech", Domain: "initech.example"}
	require.NoError(t, st.UpsertCompany(ctx, "default", &company))
	analysis := models.Analysis{
		CompanyID:          company.ID,
		LeadScore:          80,
		ICPMatchPercentage: 70,
		ComponentScores:    []models.ComponentScore{{Name: "fit", Score: 85, Weight: 1}},
	}
	require.NoError(t, st.UpsertAnalysis(ctx, "default", &analysis))

	body := fmt.Sprintf(`{"analysis_id": %q, "expert_name": "Dana", "lead_score": 75, "icp_match_percentage": 60,
		"category": "hot", "component_scores": [{"name": "fit", "score": 80, "reasoning": "core vertical"}]}`, analysis.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/ratings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = get(t, handler, "/api/report")
	require.Equal(t, http.StatusOK, rec.Code)
	var report models.ValidationMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.SampleInfo.PairedRatings)
	require.NotNil(t, report.ErrorMetrics)
	assert.InDelta(t, 5.0, report.ErrorMetrics.LeadScoreMAE, 1e-9)
	assert.Nil(t, report.Correlation)

	rec = get(t, handler, "/api/analyses")
	require.Equal(t, http.StatusOK, rec.Code)
	var analyses []models.AnalysisForValidation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analyses))
	require.Len(t, analyses, 1)
	assert.Len(t, analyses[0].ExpertRatings, 1)
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	get(t, handler, "/api/health")
	get(t, handler, "/api/analyses/does-not-exist")
	get(t, handler, "/wp-admin/setup.php")
	get(t, handler, "/.env")
	rec := get(t, handler, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `leadval_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
	assert.Contains(t, out, `route="/api/analyses/{id}",status="404"`)
	assert.Contains(t, out, `leadval_http_requests_total{method="GET",route="unmatched",status="404"} 2`)
	assert.NotContains(t, out, "wp-admin")
	assert.NotContains(t, out, `route="/.env"`)
	assert.Contains(t, out, "leadval_http_request_duration_seconds_bucket")
}

func TestUnknownRoute(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := get(t, handler, "/api/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "leadval.db"))
	require.NoError(t, err)
	defer st.Close()

	srv, err := New(Config{Port: 38471, Store: st, Reporter: metrics.NewService(st)})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()

	assert.NoError(t, <-done)
}
