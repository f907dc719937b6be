package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/internal/statistics"
)

// UpsertExpertRating records an expert's rating of an analysis. A second
// rating by the same expert for the same analysis replaces the first and
// keeps its ID. The analysis must belong to tenant, otherwise
// ErrAnalysisNotFound is returned. On success r carries the stored ID and
// timestamps.
func (s *Store) UpsertExpertRating(ctx context.Context, tenant string, r *models.ExpertRating) error {
	components, err := marshalJSON(r.ComponentScores)
	if err != nil {
		return fmt.Errorf("encoding component scores: %w", err)
	}
	now := formatTime(s.now())

	var createdAt, updatedAt string
	err = s.retryWrite(ctx, "upsert expert rating", func() error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO expert_ratings (
				id, tenant, analysis_id, expert_name, expert_role, lead_score, icp_match_percentage,
				category, component_scores, blind_rating, notes, rating_duration_seconds, created_at, updated_at)
			SELECT ?, ?, id, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ? FROM analyses WHERE id = ? AND tenant = ?
			ON CONFLICT(analysis_id, expert_name) DO UPDATE SET
				expert_role = excluded.expert_role,
				lead_score = excluded.lead_score,
				icp_match_percentage = excluded.icp_match_percentage,
				category = excluded.category,
				component_scores = excluded.component_scores,
				blind_rating = excluded.blind_rating,
				notes = excluded.notes,
				rating_duration_seconds = excluded.rating_duration_seconds,
				updated_at = excluded.updated_at
			RETURNING id, created_at, updated_at`,
			uuid.NewString(), tenant, r.ExpertName, r.ExpertRole, r.LeadScore, r.ICPMatchPercentage,
			string(r.Category), components, boolToInt(r.BlindRating), r.Notes, r.RatingDurationSeconds, now, now,
			r.AnalysisID, tenant,
		).Scan(&r.ID, &createdAt, &updatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("analysis %s: %w", r.AnalysisID, ErrAnalysisNotFound)
	}
	if err != nil {
		return fmt.Errorf("upserting expert rating: %w", err)
	}

	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return err
	}
	s.logger.Debug("expert rating saved", "id", r.ID, "analysis_id", r.AnalysisID, "expert", r.ExpertName)
	return nil
}

// ListExpertRatings returns every expert rating for tenant, newest first.
func (s *Store) ListExpertRatings(ctx context.Context, tenant string) ([]models.ExpertRating, error) {
	rows, err := s.readDB.QueryContext(ctx, `
		SELECT id, analysis_id, expert_name, expert_role, lead_score, icp_match_percentage, category,
			component_scores, blind_rating, notes, rating_duration_seconds, created_at, updated_at
		FROM expert_ratings WHERE tenant = ? ORDER BY created_at DESC, id`, tenant)
	if err != nil {
		return nil, fmt.Errorf("querying expert ratings: %w", err)
	}
	defer rows.Close()

	var out []models.ExpertRating
	for rows.Next() {
		var (
			r                    models.ExpertRating
			category, components string
			blind                int
			createdAt, updatedAt string
		)
		if err := rows.Scan(
			&r.ID, &r.AnalysisID, &r.ExpertName, &r.ExpertRole, &r.LeadScore, &r.ICPMatchPercentage, &category,
			&components, &blind, &r.Notes, &r.RatingDurationSeconds, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning expert rating: %w", err)
		}
		r.Category = statistics.Category(category)
		r.BlindRating = blind != 0
		if err := json.Unmarshal([]byte(components), &r.ComponentScores); err != nil {
			return nil, fmt.Errorf("decoding component scores for rating %s: %w", r.ID, err)
		}
		if r.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expert ratings: %w", err)
	}
	return out, nil
}
