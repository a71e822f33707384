package catalog

import (
	"context"

	"github.com/vigie-status/vigie/internal/domain"
)

// Repository defines the interface for service storage.
type Repository interface {
	CreateService(ctx context.Context, service *domain.Service) error
	GetServiceByID(ctx context.Context, id string) (*domain.Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*domain.Service, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
	UpdateService(ctx context.Context, service *domain.Service) error
	DeleteService(ctx context.Context, id string) error

	// ValidateServicesExist returns the subset of serviceIDs that do not
	// exist in the store.
	ValidateServicesExist(ctx context.Context, serviceIDs []string) ([]string, error)

	// CountInterventionsForService counts interventions still referencing
	// the service, used by the deletion policy.
	CountInterventionsForService(ctx context.Context, serviceID string) (int, error)

	// DetachServiceFromInterventions removes the service from every
	// intervention that references it and returns the affected
	// intervention IDs.
	DetachServiceFromInterventions(ctx context.Context, serviceID string) ([]string, error)

	// DeleteInterventionsOnlyAffecting deletes interventions whose only
	// affected service is the given one and detaches the rest.
	DeleteInterventionsOnlyAffecting(ctx context.Context, serviceID string) error
}
