// Package postgres provides the PostgreSQL snapshot source for the status
// page façade.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vigie-status/vigie/internal/domain"
	"github.com/vigie-status/vigie/internal/statuspage"
)

// Repository implements statuspage.SnapshotSource using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL snapshot source.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Snapshot reads services and interventions inside a single repeatable-read
// transaction so the façade sees one self-consistent view per request.
func (r *Repository) Snapshot(ctx context.Context) (*statuspage.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback snapshot transaction", "error", err)
		}
	}()

	services, err := r.listServices(ctx, tx)
	if err != nil {
		return nil, err
	}

	interventions, err := r.listInterventions(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit snapshot transaction: %w", err)
	}

	return &statuspage.Snapshot{
		Services:      services,
		Interventions: interventions,
	}, nil
}

func (r *Repository) listServices(ctx context.Context, tx pgx.Tx) ([]domain.Service, error) {
	query := `
		SELECT id, name, slug, url, created_at, updated_at
		FROM services
		ORDER BY name
	`
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Slug, &svc.URL, &svc.CreatedAt, &svc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}
	return services, nil
}

func (r *Repository) listInterventions(ctx context.Context, tx pgx.Tx) ([]domain.Intervention, error) {
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
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	defer rows.Close()

	interventions := make([]domain.Intervention, 0)
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
		interventions = append(interventions, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interventions: %w", err)
	}
	return interventions, nil
}
