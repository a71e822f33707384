// Package status implements the pure status computation at the heart of the
// status page: temporal classification of interventions, severity conflict
// resolution and per-service/global status derivation.
//
// Every function in this package is a pure function of its inputs. The query
// instant is always an explicit parameter, sampled once per request by the
// caller and threaded through every derived computation, so a single response
// is internally time-consistent.
package status

import (
	"sort"
	"time"

	"github.com/vigie-status/vigie/internal/domain"
)

// Classify returns the temporal state of an intervention at the given
// instant. Both window boundaries are inclusive of the ongoing state:
// an intervention is ongoing from start_at through end_at.
func Classify(iv domain.Intervention, now time.Time) domain.TemporalState {
	if now.Before(iv.StartAt) {
		return domain.StateUpcoming
	}
	if now.After(iv.EndAt) {
		return domain.StatePast
	}
	return domain.StateOngoing
}

// Progress carries the time-based figures the public page shows next to an
// intervention. Only the fields relevant to the state are set; all durations
// are non-negative by construction.
type Progress struct {
	State       domain.TemporalState `json:"state"`
	TimeToStart time.Duration        `json:"time_to_start,omitempty"`
	Elapsed     time.Duration        `json:"elapsed,omitempty"`
	Remaining   time.Duration        `json:"remaining,omitempty"`
}

// ComputeProgress derives the progress figures for an intervention at the
// given instant.
func ComputeProgress(iv domain.Intervention, now time.Time) Progress {
	switch Classify(iv, now) {
	case domain.StateUpcoming:
		return Progress{
			State:       domain.StateUpcoming,
			TimeToStart: iv.StartAt.Sub(now),
		}
	case domain.StatePast:
		return Progress{State: domain.StatePast}
	default:
		return Progress{
			State:     domain.StateOngoing,
			Elapsed:   now.Sub(iv.StartAt),
			Remaining: iv.EndAt.Sub(now),
		}
	}
}

// Buckets holds the three-way partition of a set of interventions.
// The three slices are disjoint and together cover the input exactly.
type Buckets struct {
	Upcoming []domain.Intervention
	Ongoing  []domain.Intervention
	Past     []domain.Intervention
}

// Partition buckets interventions by temporal state at the given instant.
//
// Ordering is a contract the rendering layer depends on:
//   - Upcoming ascending by start_at (soonest first)
//   - Ongoing ascending by end_at (soonest to resolve first)
//   - Past descending by end_at (most recently resolved first)
func Partition(ivs []domain.Intervention, now time.Time) Buckets {
	var b Buckets
	for _, iv := range ivs {
		switch Classify(iv, now) {
		case domain.StateUpcoming:
			b.Upcoming = append(b.Upcoming, iv)
		case domain.StateOngoing:
			b.Ongoing = append(b.Ongoing, iv)
		case domain.StatePast:
			b.Past = append(b.Past, iv)
		}
	}

	sort.SliceStable(b.Upcoming, func(i, j int) bool {
		return b.Upcoming[i].StartAt.Before(b.Upcoming[j].StartAt)
	})
	sort.SliceStable(b.Ongoing, func(i, j int) bool {
		return b.Ongoing[i].EndAt.Before(b.Ongoing[j].EndAt)
	})
	sort.SliceStable(b.Past, func(i, j int) bool {
		return b.Past[i].EndAt.After(b.Past[j].EndAt)
	})

	return b
}
