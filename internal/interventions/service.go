// Package interventions provides business logic and HTTP handlers for
// declaring and editing maintenance interventions.
package interventions

import (
	"context"
	"fmt"
	"sort"

	"github.com/vigie-status/vigie/internal/domain"
)

// Service implements intervention business logic. All invariants are
// enforced here, at write time; the read path never validates.
type Service struct {
	repo     Repository
	services ServiceValidator
}

// NewService creates a new intervention service.
func NewService(repo Repository, services ServiceValidator) *Service {
	return &Service{repo: repo, services: services}
}

// CreateIntervention validates and persists a new intervention. The window
// must be strictly positive and at least one existing service must be
// affected.
func (s *Service) CreateIntervention(ctx context.Context, iv *domain.Intervention) error {
	if err := iv.Validate(); err != nil {
		return err
	}

	if err := s.validateAffectedServices(ctx, iv.ServiceIDs); err != nil {
		return err
	}

	iv.ServiceIDs = dedupe(iv.ServiceIDs)

	if err := s.repo.CreateIntervention(ctx, iv); err != nil {
		return fmt.Errorf("create intervention: %w", err)
	}
	return nil
}

// GetIntervention retrieves an intervention by ID.
func (s *Service) GetIntervention(ctx context.Context, id string) (*domain.Intervention, error) {
	return s.repo.GetIntervention(ctx, id)
}

// ListInterventions retrieves all interventions.
func (s *Service) ListInterventions(ctx context.Context) ([]domain.Intervention, error) {
	return s.repo.ListInterventions(ctx)
}

// UpdateIntervention validates and persists changes to an intervention.
func (s *Service) UpdateIntervention(ctx context.Context, iv *domain.Intervention) error {
	if err := iv.Validate(); err != nil {
		return err
	}

	if err := s.validateAffectedServices(ctx, iv.ServiceIDs); err != nil {
		return err
	}

	iv.ServiceIDs = dedupe(iv.ServiceIDs)

	if err := s.repo.UpdateIntervention(ctx, iv); err != nil {
		return fmt.Errorf("update intervention: %w", err)
	}
	return nil
}

// DeleteIntervention removes an intervention and its comments.
func (s *Service) DeleteIntervention(ctx context.Context, id string) error {
	if _, err := s.repo.GetIntervention(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteIntervention(ctx, id); err != nil {
		return fmt.Errorf("delete intervention: %w", err)
	}
	return nil
}

// AddComment attaches a dated note to an intervention.
func (s *Service) AddComment(ctx context.Context, interventionID, message string) (*domain.Comment, error) {
	if _, err := s.repo.GetIntervention(ctx, interventionID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		InterventionID: interventionID,
		Message:        message,
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns the comment timeline of an intervention, oldest
// first.
func (s *Service) ListComments(ctx context.Context, interventionID string) ([]domain.Comment, error) {
	if _, err := s.repo.GetIntervention(ctx, interventionID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, interventionID)
}

func (s *Service) validateAffectedServices(ctx context.Context, serviceIDs []string) error {
	missing, err := s.services.ValidateServicesExist(ctx, serviceIDs)
	if err != nil {
		return fmt.Errorf("validate services: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrAffectedServiceNotFound, missing[0])
	}
	return nil
}

// dedupe removes duplicate service IDs and returns them sorted, so the
// stored association order is deterministic regardless of request order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
