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

// UpsertExtractionValidation records an expert's review of a company's
// extracted data, replacing any earlier review by the same expert. The
// company must belong to tenant, otherwise ErrCompanyNotFound is returned.
func (s *Store) UpsertExtractionValidation(ctx context.Context, tenant string, v *models.ExtractionValidation) error {
	fields, err := marshalJSON(v.FieldValidations)
	if err != nil {
		return fmt.Errorf("encoding field validations: %w", err)
	}
	now := formatTime(s.now())

	var createdAt string
	err = s.retryWrite(ctx, "upsert extraction validation", func() error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO extraction_validations (
				id, tenant, company_id, expert_name, field_validations, overall_accuracy, notes, created_at, updated_at)
			SELECT ?, ?, id, ?, ?, ?, ?, ?, ? FROM companies WHERE id = ? AND tenant = ?
			ON CONFLICT(company_id, expert_name) DO UPDATE SET
				field_validations = excluded.field_validations,
				overall_accuracy = excluded.overall_accuracy,
				notes = excluded.notes,
				updated_at = excluded.updated_at
			RETURNING id, created_at`,
			uuid.NewString(), tenant, v.ExpertName, fields, string(v.OverallAccuracy), v.Notes, now, now,
			v.CompanyID, tenant,
		).Scan(&v.ID, &createdAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("company %s: %w", v.CompanyID, ErrCompanyNotFound)
	}
	if err != nil {
		return fmt.Errorf("upserting extraction validation: %w", err)
	}
	if v.CreatedAt, err = parseTime(createdAt); err != nil {
		return err
	}
	s.logger.Debug("extraction validation saved", "id", v.ID, "company_id", v.CompanyID, "expert", v.ExpertName)
	return nil
}

// ListExtractionValidations returns every extraction validation for tenant,
// newest first.
func (s *Store) ListExtractionValidations(ctx context.Context, tenant string) ([]models.ExtractionValidation, error) {
	rows, err := s.readDB.QueryContext(ctx, `
		SELECT id, company_id, expert_name, field_validations, overall_accuracy, notes, created_at
		FROM extraction_validations WHERE tenant = ? ORDER BY created_at DESC, id`, tenant)
	if err != nil {
		return nil, fmt.Errorf("querying extraction validations: %w", err)
	}
	defer rows.Close()

	var out []models.ExtractionValidation
	for rows.Next() {
		var (
			v                           models.ExtractionValidation
			fields, accuracy, createdAt string
		)
		if err := rows.Scan(&v.ID, &v.CompanyID, &v.ExpertName, &fields, &accuracy, &v.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning extraction validation: %w", err)
		}
		v.OverallAccuracy = models.OverallAccuracy(accuracy)
		if err := json.Unmarshal([]byte(fields), &v.FieldValidations); err != nil {
			return nil, fmt.Errorf("decoding field validations for %s: %w", v.ID, err)
		}
		if v.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating extraction validations: %w", err)
	}
	return out, nil
}
