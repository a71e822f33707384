package statuspage

import (
	"context"

	"github.com/vigie-status/vigie/internal/domain"
)

// Snapshot is an immutable view of the store taken once per request. All
// façade computations for a single request run against the same snapshot, so
// a response stays internally consistent even if an admin mutates the store
// mid-request.
type Snapshot struct {
	Services      []domain.Service
	Interventions []domain.Intervention
}

// ServiceByID returns the service with the given ID from the snapshot.
func (s *Snapshot) ServiceByID(id string) (domain.Service, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return domain.Service{}, false
}

// SnapshotSource loads a self-consistent snapshot of services and
// interventions. Implementations must not return partially written records
// or interventions referencing services absent from the same snapshot.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// CommentLister lists the comments attached to an intervention, oldest first.
type CommentLister interface {
	ListComments(ctx context.Context, interventionID string) ([]domain.Comment, error)
}
