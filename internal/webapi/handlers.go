// Package webapi exposes validation records and reports over a JSON REST API.
package webapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/store"
	"github.com/spboyer/leadval/internal/validation"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// TenantHeader selects the tenant for a request. Requests without it use
// the server's default tenant.
const TenantHeader = "X-Tenant-ID"

const maxBodyBytes = 1 << 20

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store    Store
	reporter Reporter
	tenant   string
	logger   *slog.Logger
}

// NewHandlers creates Handlers serving defaultTenant unless a request names
// another one.
func NewHandlers(s Store, reporter Reporter, defaultTenant string, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{store: s, reporter: reporter, tenant: defaultTenant, logger: logger}
}

func (h *Handlers) tenantFor(r *http.Request) string {
	if t := r.Header.Get(TenantHeader); t != "" {
		return t
	}
	return h.tenant
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleReport computes the tenant's validation report.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reporter.Compute(r.Context(), h.tenantFor(r))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleAnalyses lists analyses awaiting or holding expert ratings.
func (h *Handlers) HandleAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.store.ListAnalysesForValidation(r.Context(), h.tenantFor(r))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analyses)
}

// HandleAnalysisDetail returns one analysis with its company and ratings.
func (h *Handlers) HandleAnalysisDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "analysis id is required")
		return
	}
	analysis, err := h.store.GetAnalysis(r.Context(), h.tenantFor(r), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// HandleRatings lists the tenant's expert ratings, newest first.
func (h *Handlers) HandleRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.store.ListExpertRatings(r.Context(), h.tenantFor(r))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

// HandleSubmitRating validates and saves an expert rating. Resubmitting for
// the same analysis and expert replaces the earlier rating.
func (h *Handlers) HandleSubmitRating(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if errs := validation.ValidateRatingBytes(body); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}
	var rating models.ExpertRating
	if err := json.Unmarshal(body, &rating); err != nil {
		writeError(w, http.StatusBadRequest, "invalid rating: "+err.Error())
		return
	}
	rating.ID = ""

	tenant := h.tenantFor(r)
	if err := h.store.UpsertExpertRating(r.Context(), tenant, &rating); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.logger.Info("expert rating submitted", "tenant", tenant, "analysis_id", rating.AnalysisID, "expert", rating.ExpertName)
	writeJSON(w, http.StatusOK, rating)
}

// HandleExtractionValidations lists the tenant's extraction reviews.
func (h *Handlers) HandleExtractionValidations(w http.ResponseWriter, r *http.Request) {
	validations, err := h.store.ListExtractionValidations(r.Context(), h.tenantFor(r))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validations)
}

// HandleSubmitExtractionValidation validates and saves an extraction review.
func (h *Handlers) HandleSubmitExtractionValidation(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	if errs := validation.ValidateExtractionBytes(body); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}
	var v models.ExtractionValidation
	if err := json.Unmarshal(body, &v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid extraction validation: "+err.Error())
		return
	}
	v.ID = ""

	tenant := h.tenantFor(r)
	if err := h.store.UpsertExtractionValidation(r.Context(), tenant, &v); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.logger.Info("extraction validation submitted", "tenant", tenant, "company_id", v.CompanyID, "expert", v.ExpertName)
	writeJSON(w, http.StatusOK, v)
}

// RegisterRoutes registers all web API routes on the given router.
func RegisterRoutes(r chi.Router, h *Handlers) {
	r.Get("/api/health", h.HandleHealth)
	r.Get("/api/report", h.HandleReport)
	r.Get("/api/analyses", h.HandleAnalyses)
	r.Get("/api/analyses/{id}", h.HandleAnalysisDetail)
	r.Get("/api/ratings", h.HandleRatings)
	r.Post("/api/ratings", h.HandleSubmitRating)
	r.Get("/api/extraction-validations", h.HandleExtractionValidations)
	r.Post("/api/extraction-validations", h.HandleSubmitExtractionValidation)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+TenantHeader)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "reading request body: "+err.Error())
		}
		return nil, false
	}
	return body, true
}

func (h *Handlers) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrAnalysisNotFound):
		writeError(w, http.StatusNotFound, "analysis not found")
	case errors.Is(err, store.ErrCompanyNotFound):
		writeError(w, http.StatusNotFound, "company not found")
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}

func writeValidationError(w http.ResponseWriter, details []string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    http.StatusUnprocessableEntity,
		Details: details,
	})
}
