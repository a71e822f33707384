// Package catalog provides business logic and HTTP handlers for managing
// the monitored services shown on the status page.
package catalog

import (
	"context"
	"fmt"

	"github.com/vigie-status/vigie/internal/domain"
	"github.com/vigie-status/vigie/internal/pkg/slugify"
)

// DeletionPolicy decides what happens to interventions referencing a service
// when that service is deleted.
type DeletionPolicy string

// Deletion policies.
const (
	// DeletePolicyBlock refuses the deletion while interventions still
	// reference the service.
	DeletePolicyBlock DeletionPolicy = "block"
	// DeletePolicyDetach removes the association; interventions keep
	// running for their remaining services and stay as historical records
	// even when left with none.
	DeletePolicyDetach DeletionPolicy = "detach"
	// DeletePolicyCascade deletes interventions affecting only this
	// service and detaches it from the rest.
	DeletePolicyCascade DeletionPolicy = "cascade"
)

// IsValid checks if the deletion policy is known.
func (p DeletionPolicy) IsValid() bool {
	return p == DeletePolicyBlock || p == DeletePolicyDetach || p == DeletePolicyCascade
}

// Service implements catalog business logic.
type Service struct {
	repo         Repository
	deletePolicy DeletionPolicy
}

// NewService creates a new catalog service with the given deletion policy.
func NewService(repo Repository, deletePolicy DeletionPolicy) *Service {
	if !deletePolicy.IsValid() {
		deletePolicy = DeletePolicyBlock
	}
	return &Service{repo: repo, deletePolicy: deletePolicy}
}

// CreateService validates and persists a new monitored service. The slug is
// derived from the name when not provided.
func (s *Service) CreateService(ctx context.Context, service *domain.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}

	if service.Slug == "" {
		service.Slug = slugify.Slug(service.Name)
	}

	if err := s.repo.CreateService(ctx, service); err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

// GetService retrieves a service by ID.
func (s *Service) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return s.repo.GetServiceByID(ctx, id)
}

// GetServiceBySlug retrieves a service by slug.
func (s *Service) GetServiceBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	return s.repo.GetServiceBySlug(ctx, slug)
}

// ListServices retrieves all monitored services.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.repo.ListServices(ctx)
}

// UpdateService validates and persists changes to a service.
func (s *Service) UpdateService(ctx context.Context, service *domain.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}

	if service.Slug == "" {
		service.Slug = slugify.Slug(service.Name)
	}

	if err := s.repo.UpdateService(ctx, service); err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// ValidateServicesExist returns the IDs from the given list that are not
// registered services. Used by the interventions module before persisting
// affected-service associations.
func (s *Service) ValidateServicesExist(ctx context.Context, serviceIDs []string) ([]string, error) {
	return s.repo.ValidateServicesExist(ctx, serviceIDs)
}

// DeleteService removes a service, applying the configured policy toward
// interventions that still reference it.
func (s *Service) DeleteService(ctx context.Context, id string) error {
	if _, err := s.repo.GetServiceByID(ctx, id); err != nil {
		return err
	}

	switch s.deletePolicy {
	case DeletePolicyBlock:
		count, err := s.repo.CountInterventionsForService(ctx, id)
		if err != nil {
			return fmt.Errorf("count interventions: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %d intervention(s)", ErrServiceInUse, count)
		}
	case DeletePolicyDetach:
		if _, err := s.repo.DetachServiceFromInterventions(ctx, id); err != nil {
			return fmt.Errorf("detach service: %w", err)
		}
	case DeletePolicyCascade:
		if err := s.repo.DeleteInterventionsOnlyAffecting(ctx, id); err != nil {
			return fmt.Errorf("cascade delete interventions: %w", err)
		}
		if _, err := s.repo.DetachServiceFromInterventions(ctx, id); err != nil {
			return fmt.Errorf("detach service: %w", err)
		}
	default:
		return ErrUnknownDeletePolicy
	}

	if err := s.repo.DeleteService(ctx, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}
