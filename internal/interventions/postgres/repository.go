// Package postgres provides PostgreSQL implementation of the interventions
// repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vigie-status/vigie/internal/domain"
	"github.com/vigie-status/vigie/internal/interventions"
)

// Repository implements interventions.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateIntervention creates an intervention and its service associations
// atomically.
func (r *Repository) CreateIntervention(ctx context.Context, iv *domain.Intervention) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	query := `
		INSERT INTO interventions (title, description, start_at, end_at, severity, estimated_duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		iv.Title,
		iv.Description,
		iv.StartAt,
		iv.EndAt,
		iv.Severity,
		iv.EstimatedDurationMinutes,
	).Scan(&iv.ID, &iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create intervention: %w", err)
	}

	if err := r.associateServicesTx(ctx, tx, iv.ID, iv.ServiceIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetIntervention retrieves an intervention by ID.
func (r *Repository) GetIntervention(ctx context.Context, id string) (*domain.Intervention, error) {
	query := `
		SELECT
			i.id, i.title, i.description, i.start_at, i.end_at,
			i.severity, i.estimated_duration_minutes, i.created_at, i.updated_at,
			COALESCE(array_agg(isv.service_id) FILTER (WHERE isv.service_id IS NOT NULL), '{}')
		FROM interventions i
		LEFT JOIN intervention_services isv ON isv.intervention_id = i.id
		WHERE i.id = $1
		GROUP BY i.id
	`
	var iv domain.Intervention
	err := r.db.QueryRow(ctx, query, id).Scan(
		&iv.ID,
		&iv.Title,
		&iv.Description,
		&iv.StartAt,
		&iv.EndAt,
		&iv.Severity,
		&iv.EstimatedDurationMinutes,
		&iv.CreatedAt,
		&iv.UpdatedAt,
		&iv.ServiceIDs,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, interventions.ErrInterventionNotFound
		}
		return nil, fmt.Errorf("get intervention: %w", err)
	}

	return &iv, nil
}

// ListInterventions retrieves all interventions ordered by start time.
func (r *Repository) ListInterventions(ctx context.Context) ([]domain.Intervention, error) {
	query := `
		SELECT
			i.id, i.title, i.description, i.start_at, i.end_at,
			i.severity, i.estimated_duration_minutes, i.created_at, i.updated_at,
			COALESCE(array_agg(isv.service_id) FILTER (WHERE isv.service_id IS NOT NULL), '{}')
		FROM interventions i
		LEFT JOIN intervention_services isv ON isv.intervention_id = i.id
		GROUP BY i.id
		ORDER BY i.start_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	defer rows.Close()

	ivs := make([]domain.Intervention, 0)
	for rows.Next() {
		var iv domain.Intervention
		err := rows.Scan(
			&iv.ID,
			&iv.Title,
			&iv.Description,
			&iv.StartAt,
			&iv.EndAt,
			&iv.Severity,
			&iv.EstimatedDurationMinutes,
			&iv.CreatedAt,
			&iv.UpdatedAt,
			&iv.ServiceIDs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan intervention: %w", err)
		}
		ivs = append(ivs, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interventions: %w", err)
	}

	return ivs, nil
}

// UpdateIntervention updates an intervention and replaces its service
// associations atomically.
func (r *Repository) UpdateIntervention(ctx context.Context, iv *domain.Intervention) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	query := `
		UPDATE interventions
		SET title = $2, description = $3, start_at = $4, end_at = $5,
			severity = $6, estimated_duration_minutes = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err = tx.QueryRow(ctx, query,
		iv.ID,
		iv.Title,
		iv.Description,
		iv.StartAt,
		iv.EndAt,
		iv.Severity,
		iv.EstimatedDurationMinutes,
	).Scan(&iv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return interventions.ErrInterventionNotFound
		}
		return fmt.Errorf("update intervention: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM intervention_services WHERE intervention_id = $1`, iv.ID); err != nil {
		return fmt.Errorf("clear service associations: %w", err)
	}

	if err := r.associateServicesTx(ctx, tx, iv.ID, iv.ServiceIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// DeleteIntervention deletes an intervention. Associations and comments go
// away via cascade.
func (r *Repository) DeleteIntervention(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM interventions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete intervention: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return interventions.ErrInterventionNotFound
	}
	return nil
}

// CreateComment attaches a comment to an intervention.
func (r *Repository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO intervention_comments (intervention_id, message)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		comment.InterventionID,
		comment.Message,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// ListComments lists the comments of an intervention, oldest first.
func (r *Repository) ListComments(ctx context.Context, interventionID string) ([]domain.Comment, error) {
	query := `
		SELECT id, intervention_id, message, created_at
		FROM intervention_comments
		WHERE intervention_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, interventionID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.InterventionID, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}

// DeleteComment deletes a comment by ID.
func (r *Repository) DeleteComment(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM intervention_comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return interventions.ErrCommentNotFound
	}
	return nil
}

func (r *Repository) associateServicesTx(ctx context.Context, tx pgx.Tx, interventionID string, serviceIDs []string) error {
	for _, sid := range serviceIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO intervention_services (intervention_id, service_id) VALUES ($1, $2)`,
			interventionID, sid,
		)
		if err != nil {
			return fmt.Errorf("associate service %s: %w", sid, err)
		}
	}
	return nil
}
