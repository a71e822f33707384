// Package postgres provides PostgreSQL implementation of the catalog
// repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vigie-status/vigie/internal/catalog"
	"github.com/vigie-status/vigie/internal/domain"
)

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// Repository implements the catalog.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateService creates a new service in the database.
func (r *Repository) CreateService(ctx context.Context, service *domain.Service) error {
	query := `
		INSERT INTO services (name, slug, url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		service.Name,
		service.Slug,
		service.URL,
	).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return catalog.ErrSlugExists
		}
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

// GetServiceByID retrieves a service by its ID.
func (r *Repository) GetServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	return r.getService(ctx, "id", id)
}

// GetServiceBySlug retrieves a service by its slug.
func (r *Repository) GetServiceBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	return r.getService(ctx, "slug", slug)
}

func (r *Repository) getService(ctx context.Context, column, value string) (*domain.Service, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, url, created_at, updated_at
		FROM services
		WHERE %s = $1
	`, column)

	var svc domain.Service
	err := r.db.QueryRow(ctx, query, value).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Slug,
		&svc.URL,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service by %s: %w", column, err)
	}

	return &svc, nil
}

// ListServices retrieves all services ordered by name.
func (r *Repository) ListServices(ctx context.Context) ([]domain.Service, error) {
	query := `
		SELECT id, name, slug, url, created_at, updated_at
		FROM services
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Slug,
			&svc.URL,
			&svc.CreatedAt,
			&svc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}

// UpdateService updates an existing service.
func (r *Repository) UpdateService(ctx context.Context, service *domain.Service) error {
	query := `
		UPDATE services
		SET name = $2, slug = $3, url = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		service.ID,
		service.Name,
		service.Slug,
		service.URL,
	).Scan(&service.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.ErrServiceNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return catalog.ErrSlugExists
		}
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// DeleteService deletes a service by ID.
func (r *Repository) DeleteService(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

// ValidateServicesExist returns the subset of serviceIDs with no matching
// service row.
func (r *Repository) ValidateServicesExist(ctx context.Context, serviceIDs []string) ([]string, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT candidate.id
		FROM unnest($1::uuid[]) AS candidate(id)
		LEFT JOIN services s ON s.id = candidate.id
		WHERE s.id IS NULL
	`
	rows, err := r.db.Query(ctx, query, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("validate services exist: %w", err)
	}
	defer rows.Close()

	missing := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan missing service id: %w", err)
		}
		missing = append(missing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate missing service ids: %w", err)
	}
	return missing, nil
}

// CountInterventionsForService counts interventions referencing the service.
func (r *Repository) CountInterventionsForService(ctx context.Context, serviceID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM intervention_services WHERE service_id = $1`,
		serviceID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count interventions for service: %w", err)
	}
	return count, nil
}

// DetachServiceFromInterventions removes the service from every intervention
// referencing it and returns the affected intervention IDs.
func (r *Repository) DetachServiceFromInterventions(ctx context.Context, serviceID string) ([]string, error) {
	query := `
		DELETE FROM intervention_services
		WHERE service_id = $1
		RETURNING intervention_id
	`
	rows, err := r.db.Query(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("detach service from interventions: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan intervention id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intervention ids: %w", err)
	}
	return ids, nil
}

// DeleteInterventionsOnlyAffecting deletes interventions whose only affected
// service is the given one. Association rows go away via cascade.
func (r *Repository) DeleteInterventionsOnlyAffecting(ctx context.Context, serviceID string) error {
	query := `
		DELETE FROM interventions i
		WHERE EXISTS (
			SELECT 1 FROM intervention_services isv
			WHERE isv.intervention_id = i.id AND isv.service_id = $1
		)
		AND NOT EXISTS (
			SELECT 1 FROM intervention_services isv
			WHERE isv.intervention_id = i.id AND isv.service_id <> $1
		)
	`
	if _, err := r.db.Exec(ctx, query, serviceID); err != nil {
		return fmt.Errorf("delete interventions only affecting service: %w", err)
	}
	return nil
}
