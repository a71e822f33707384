// Package fixtures seeds a demonstration dataset: a few public services and
// a kernel upgrade maintenance window affecting them.
package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vigie-status/vigie/internal/catalog"
	catalogpostgres "github.com/vigie-status/vigie/internal/catalog/postgres"
	"github.com/vigie-status/vigie/internal/domain"
	"github.com/vigie-status/vigie/internal/interventions"
	interventionspostgres "github.com/vigie-status/vigie/internal/interventions/postgres"
)

// Seed inserts the demo dataset. It is a no-op when services already exist,
// so it is safe to run on every start of a demo instance.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	catalogRepo := catalogpostgres.NewRepository(db)
	catalogService := catalog.NewService(catalogRepo, catalog.DeletePolicyBlock)

	existing, err := catalogService.ListServices(ctx)
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("fixtures skipped, services already present", "count", len(existing))
		return nil
	}

	services := []*domain.Service{
		{Name: "Framasphère", URL: "https://diaspora-fr.org"},
		{Name: "Framathunes", URL: "https://kresus.org"},
		{Name: "Framagit", URL: "https://framagit.org"},
	}
	for _, svc := range services {
		if err := catalogService.CreateService(ctx, svc); err != nil {
			return fmt.Errorf("create service %s: %w", svc.Name, err)
		}
	}

	interventionsRepo := interventionspostgres.NewRepository(db)
	interventionsService := interventions.NewService(interventionsRepo, catalogService)

	estimated := int64(15)
	start := time.Now().Add(-5 * time.Minute).Truncate(time.Minute)
	iv := &domain.Intervention{
		Title:                    "Mise à jour du noyau",
		Description:              "Redémarrage des serveurs après mise à jour du noyau.",
		StartAt:                  start,
		EndAt:                    start.Add(15 * time.Minute),
		Severity:                 domain.SeverityFullOutage,
		EstimatedDurationMinutes: &estimated,
		ServiceIDs:               []string{services[0].ID, services[1].ID},
	}
	if err := interventionsService.CreateIntervention(ctx, iv); err != nil {
		return fmt.Errorf("create intervention: %w", err)
	}

	if _, err := interventionsService.AddComment(ctx, iv.ID, "Les serveurs redémarrent un par un."); err != nil {
		return fmt.Errorf("add comment: %w", err)
	}

	slog.Info("fixtures seeded",
		"services", len(services),
		"interventions", 1,
	)
	return nil
}
