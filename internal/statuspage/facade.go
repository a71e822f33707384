// Package statuspage exposes the read-only query façade consumed by the
// public status page: global status, per-service statuses and the three
// temporal buckets of interventions.
package statuspage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vigie-status/vigie/internal/domain"
	"github.com/vigie-status/vigie/internal/pkg/clock"
	"github.com/vigie-status/vigie/internal/pkg/metrics"
	"github.com/vigie-status/vigie/internal/status"
)

// Façade errors.
var (
	ErrServiceNotFound      = errors.New("service not found")
	ErrInterventionNotFound = errors.New("intervention not found")
)

// Service composes the status engine over a store snapshot. Every query
// reads one snapshot and samples the clock once, then derives everything
// from those two values.
type Service struct {
	source   SnapshotSource
	comments CommentLister
	clock    clock.Clock
}

// NewService creates a new status page façade.
func NewService(source SnapshotSource, comments CommentLister, clk clock.Clock) *Service {
	return &Service{source: source, comments: comments, clock: clk}
}

// ServiceRef identifies an affected service on an intervention view.
type ServiceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	URL  string `json:"url,omitempty"`
}

// InterventionView is an intervention annotated for rendering: resolved
// affected-service names and temporal progress at the query instant.
type InterventionView struct {
	domain.Intervention
	Progress status.Progress `json:"progress"`
	Affected []ServiceRef    `json:"affected_services"`
}

// InterventionDetail extends the view with the operator comment timeline.
type InterventionDetail struct {
	InterventionView
	Comments []domain.Comment `json:"comments"`
}

// ServiceView pairs a service with its computed status.
type ServiceView struct {
	domain.Service
	Status domain.ServiceStatus `json:"status"`
}

// Overview is the full public page payload.
type Overview struct {
	Global      domain.GlobalStatus `json:"global"`
	Services    []ServiceView       `json:"services"`
	Ongoing     []InterventionView  `json:"ongoing"`
	Upcoming    []InterventionView  `json:"upcoming"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// Overview returns the global status, every service with its status, and the
// ongoing and upcoming buckets, all computed at a single instant.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	now := s.clock.Now()

	statuses := status.ComputeAllServiceStatuses(snap.Services, snap.Interventions, now)
	views := make([]ServiceView, 0, len(snap.Services))
	degraded := 0
	for i, svc := range snap.Services {
		if !statuses[i].IsHealthy() {
			degraded++
		}
		views = append(views, ServiceView{Service: svc, Status: statuses[i]})
	}
	metrics.DegradedServices.Set(float64(degraded))

	b := status.Partition(snap.Interventions, now)

	return &Overview{
		Global:      status.ComputeGlobalStatus(snap.Services, snap.Interventions, now),
		Services:    views,
		Ongoing:     s.annotate(snap, b.Ongoing, now),
		Upcoming:    s.annotate(snap, b.Upcoming, now),
		GeneratedAt: now,
	}, nil
}

// GlobalStatus returns the top-line page status at the current instant.
func (s *Service) GlobalStatus(ctx context.Context) (domain.GlobalStatus, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return domain.GlobalStatus{}, fmt.Errorf("load snapshot: %w", err)
	}
	return status.ComputeGlobalStatus(snap.Services, snap.Interventions, s.clock.Now()), nil
}

// ServiceStatus returns the computed status of one service.
func (s *Service) ServiceStatus(ctx context.Context, serviceID string) (*ServiceView, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	svc, ok := snap.ServiceByID(serviceID)
	if !ok {
		return nil, ErrServiceNotFound
	}

	st := status.ComputeServiceStatus(svc, snap.Interventions, s.clock.Now())
	return &ServiceView{Service: svc, Status: st}, nil
}

// OngoingInterventions returns ongoing interventions, soonest to resolve
// first.
func (s *Service) OngoingInterventions(ctx context.Context) ([]InterventionView, error) {
	return s.bucket(ctx, domain.StateOngoing)
}

// UpcomingInterventions returns upcoming interventions, soonest first.
func (s *Service) UpcomingInterventions(ctx context.Context) ([]InterventionView, error) {
	return s.bucket(ctx, domain.StateUpcoming)
}

// PastInterventions returns past interventions, most recently resolved first.
func (s *Service) PastInterventions(ctx context.Context) ([]InterventionView, error) {
	return s.bucket(ctx, domain.StatePast)
}

// Intervention returns one intervention with its comment timeline.
func (s *Service) Intervention(ctx context.Context, id string) (*InterventionDetail, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	now := s.clock.Now()

	for _, iv := range snap.Interventions {
		if iv.ID != id {
			continue
		}
		comments, err := s.comments.ListComments(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list comments: %w", err)
		}
		views := s.annotate(snap, []domain.Intervention{iv}, now)
		return &InterventionDetail{InterventionView: views[0], Comments: comments}, nil
	}

	return nil, ErrInterventionNotFound
}

func (s *Service) bucket(ctx context.Context, state domain.TemporalState) ([]InterventionView, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	now := s.clock.Now()

	b := status.Partition(snap.Interventions, now)
	switch state {
	case domain.StateUpcoming:
		return s.annotate(snap, b.Upcoming, now), nil
	case domain.StatePast:
		return s.annotate(snap, b.Past, now), nil
	default:
		return s.annotate(snap, b.Ongoing, now), nil
	}
}

// annotate joins interventions against the service snapshot. A dangling
// service reference would indicate a store integrity violation; it is
// reported as an unnamed ref rather than a failure since the read path must
// stay total.
func (s *Service) annotate(snap *Snapshot, ivs []domain.Intervention, now time.Time) []InterventionView {
	views := make([]InterventionView, 0, len(ivs))
	for _, iv := range ivs {
		refs := make([]ServiceRef, 0, len(iv.ServiceIDs))
		for _, sid := range iv.ServiceIDs {
			if svc, ok := snap.ServiceByID(sid); ok {
				refs = append(refs, ServiceRef{ID: svc.ID, Name: svc.Name, Slug: svc.Slug, URL: svc.URL})
			} else {
				refs = append(refs, ServiceRef{ID: sid, Name: "deleted service"})
			}
		}
		views = append(views, InterventionView{
			Intervention: iv,
			Progress:     status.ComputeProgress(iv, now),
			Affected:     refs,
		})
	}
	return views
}
