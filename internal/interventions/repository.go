package interventions

import (
	"context"

	"github.com/vigie-status/vigie/internal/domain"
)

// Repository defines the interface for intervention storage.
type Repository interface {
	CreateIntervention(ctx context.Context, iv *domain.Intervention) error
	GetIntervention(ctx context.Context, id string) (*domain.Intervention, error)
	ListInterventions(ctx context.Context) ([]domain.Intervention, error)
	UpdateIntervention(ctx context.Context, iv *domain.Intervention) error
	DeleteIntervention(ctx context.Context, id string) error

	CreateComment(ctx context.Context, comment *domain.Comment) error
	ListComments(ctx context.Context, interventionID string) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// ServiceValidator checks that referenced services exist before an
// intervention is persisted.
type ServiceValidator interface {
	ValidateServicesExist(ctx context.Context, serviceIDs []string) (missing []string, err error)
}
