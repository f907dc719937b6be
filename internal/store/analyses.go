package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spboyer/leadval/internal/models"
)

// UpsertCompany inserts or replaces a company. An empty ID is assigned a new
// UUID. A company ID already owned by another tenant is reported as
// ErrCompanyNotFound.
func (s *Store) UpsertCompany(ctx context.Context, tenant string, c *models.Company) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	techStack, err := marshalJSON(c.TechStack)
	if err != nil {
		return fmt.Errorf("encoding tech stack: %w", err)
	}

	var id string
	err = s.retryWrite(ctx, "upsert company", func() error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO companies (id, tenant, name, domain, industry, description, employee_count, location, tech_stack, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				domain = excluded.domain,
				industry = excluded.industry,
				description = excluded.description,
				employee_count = excluded.employee_count,
				location = excluded.location,
				tech_stack = excluded.tech_stack
			WHERE companies.tenant = excluded.tenant
			RETURNING id`,
			c.ID, tenant, c.Name, c.Domain, c.Industry, c.Description, c.EmployeeCount, c.Location, techStack, formatTime(s.now()),
		).Scan(&id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("company %s: %w", c.ID, ErrCompanyNotFound)
	}
	if err != nil {
		return fmt.Errorf("upserting company %s: %w", c.ID, err)
	}
	return nil
}

// UpsertAnalysis inserts or replaces an AI analysis. The referenced company
// must belong to tenant.
func (s *Store) UpsertAnalysis(ctx context.Context, tenant string, a *models.Analysis) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	components, err := marshalJSON(a.ComponentScores)
	if err != nil {
		return fmt.Errorf("encoding component scores: %w", err)
	}

	var id string
	err = s.retryWrite(ctx, "upsert analysis", func() error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO analyses (id, tenant, company_id, lead_score, icp_match_percentage, component_scores, archived, created_at)
			SELECT ?, ?, id, ?, ?, ?, ?, ? FROM companies WHERE id = ? AND tenant = ?
			ON CONFLICT(id) DO UPDATE SET
				company_id = excluded.company_id,
				lead_score = excluded.lead_score,
				icp_match_percentage = excluded.icp_match_percentage,
				component_scores = excluded.component_scores,
				archived = excluded.archived
			WHERE analyses.tenant = excluded.tenant
			RETURNING id`,
			a.ID, tenant, a.LeadScore, a.ICPMatchPercentage, components, boolToInt(a.Archived), formatTime(a.CreatedAt),
			a.CompanyID, tenant,
		).Scan(&id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("analysis %s references company %s: %w", a.ID, a.CompanyID, ErrCompanyNotFound)
	}
	if err != nil {
		return fmt.Errorf("upserting analysis %s: %w", a.ID, err)
	}
	return nil
}

// ListAnalyses returns every analysis for tenant, archived included, newest
// first.
func (s *Store) ListAnalyses(ctx context.Context, tenant string) ([]models.Analysis, error) {
	rows, err := s.readDB.QueryContext(ctx, `
		SELECT id, company_id, lead_score, icp_match_percentage, component_scores, archived, created_at
		FROM analyses WHERE tenant = ? ORDER BY created_at DESC, id`, tenant)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var out []models.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}
	return out, nil
}

const validationSelect = `
	SELECT a.id, a.company_id, a.lead_score, a.icp_match_percentage, a.component_scores, a.archived, a.created_at,
		c.name, c.domain, c.industry, c.description, c.employee_count, c.location, c.tech_stack
	FROM analyses a
	JOIN companies c ON c.id = a.company_id`

// ListAnalysesForValidation returns the tenant's non-archived analyses with
// their company and expert ratings attached, newest first.
func (s *Store) ListAnalysesForValidation(ctx context.Context, tenant string) ([]models.AnalysisForValidation, error) {
	rows, err := s.readDB.QueryContext(ctx, validationSelect+`
		WHERE a.tenant = ? AND a.archived = 0
		ORDER BY a.created_at DESC, a.id`, tenant)
	if err != nil {
		return nil, fmt.Errorf("querying analyses for validation: %w", err)
	}

	var out []models.AnalysisForValidation
	for rows.Next() {
		v, err := scanAnalysisForValidation(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, v)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterating analyses for validation: %w", err)
	}

	ratings, err := s.ListExpertRatings(ctx, tenant)
	if err != nil {
		return nil, err
	}
	byAnalysis := make(map[string][]models.ExpertRating)
	for _, r := range ratings {
		byAnalysis[r.AnalysisID] = append(byAnalysis[r.AnalysisID], r)
	}
	for i := range out {
		out[i].ExpertRatings = byAnalysis[out[i].ID]
		if out[i].ExpertRatings == nil {
			out[i].ExpertRatings = []models.ExpertRating{}
		}
	}
	return out, nil
}

// GetAnalysis returns one analysis with its company and expert ratings.
func (s *Store) GetAnalysis(ctx context.Context, tenant, id string) (*models.AnalysisForValidation, error) {
	row := s.readDB.QueryRowContext(ctx, validationSelect+`
		WHERE a.tenant = ? AND a.id = ?`, tenant, id)
	v, err := scanAnalysisForValidation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, ErrAnalysisNotFound)
	}
	if err != nil {
		return nil, err
	}

	ratings, err := s.ListExpertRatings(ctx, tenant)
	if err != nil {
		return nil, err
	}
	v.ExpertRatings = []models.ExpertRating{}
	for _, r := range ratings {
		if r.AnalysisID == id {
			v.ExpertRatings = append(v.ExpertRatings, r)
		}
	}
	return &v, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (models.Analysis, error) {
	var (
		a          models.Analysis
		components string
		archived   int
		createdAt  string
	)
	if err := row.Scan(&a.ID, &a.CompanyID, &a.LeadScore, &a.ICPMatchPercentage, &components, &archived, &createdAt); err != nil {
		return a, fmt.Errorf("scanning analysis: %w", err)
	}
	return a, decodeAnalysis(&a, components, archived, createdAt)
}

func scanAnalysisForValidation(row scanner) (models.AnalysisForValidation, error) {
	var (
		v          models.AnalysisForValidation
		components string
		archived   int
		createdAt  string
		techStack  string
	)
	err := row.Scan(
		&v.ID, &v.CompanyID, &v.LeadScore, &v.ICPMatchPercentage, &components, &archived, &createdAt,
		&v.Company.Name, &v.Company.Domain, &v.Company.Industry, &v.Company.Description,
		&v.Company.EmployeeCount, &v.Company.Location, &techStack,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return v, err
	}
	if err != nil {
		return v, fmt.Errorf("scanning analysis: %w", err)
	}
	if err := decodeAnalysis(&v.Analysis, components, archived, createdAt); err != nil {
		return v, err
	}
	v.Company.ID = v.CompanyID
	if err := json.Unmarshal([]byte(techStack), &v.Company.TechStack); err != nil {
		return v, fmt.Errorf("decoding tech stack for company %s: %w", v.CompanyID, err)
	}
	return v, nil
}

func decodeAnalysis(a *models.Analysis, components string, archived int, createdAt string) error {
	if err := json.Unmarshal([]byte(components), &a.ComponentScores); err != nil {
		return fmt.Errorf("decoding component scores for analysis %s: %w", a.ID, err)
	}
	a.Archived = archived != 0
	t, err := parseTime(createdAt)
	if err != nil {
		return err
	}
	a.CreatedAt = t
	return nil
}
