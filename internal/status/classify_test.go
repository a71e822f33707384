package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigie-status/vigie/internal/domain"
)

func mkIntervention(id string, start, end time.Time, severity domain.Severity, serviceIDs ...string) domain.Intervention {
	return domain.Intervention{
		ID:         id,
		Title:      "intervention " + id,
		StartAt:    start,
		EndAt:      end,
		Severity:   severity,
		ServiceIDs: serviceIDs,
	}
}

func TestClassify(t *testing.T) {
	start := time.Date(2025, 2, 13, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 13, 8, 15, 0, 0, time.UTC)
	iv := mkIntervention("i1", start, end, domain.SeverityFullOutage, "s1")

	tests := []struct {
		name string
		now  time.Time
		want domain.TemporalState
	}{
		{"before window", start.Add(-time.Hour), domain.StateUpcoming},
		{"one nanosecond before start", start.Add(-time.Nanosecond), domain.StateUpcoming},
		{"at start boundary", start, domain.StateOngoing},
		{"inside window", start.Add(5 * time.Minute), domain.StateOngoing},
		{"at end boundary", end, domain.StateOngoing},
		{"one nanosecond after end", end.Add(time.Nanosecond), domain.StatePast},
		{"long after window", end.Add(24 * time.Hour), domain.StatePast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(iv, tt.now))
		})
	}
}

func TestComputeProgress(t *testing.T) {
	start := time.Date(2025, 2, 13, 8, 0, 0, 0, time.UTC)
	end := start.Add(15 * time.Minute)
	iv := mkIntervention("i1", start, end, domain.SeverityPartialOutage, "s1")

	t.Run("upcoming exposes time to start", func(t *testing.T) {
		p := ComputeProgress(iv, start.Add(-10*time.Minute))
		assert.Equal(t, domain.StateUpcoming, p.State)
		assert.Equal(t, 10*time.Minute, p.TimeToStart)
	})

	t.Run("ongoing exposes elapsed and remaining", func(t *testing.T) {
		p := ComputeProgress(iv, start.Add(5*time.Minute))
		assert.Equal(t, domain.StateOngoing, p.State)
		assert.Equal(t, 5*time.Minute, p.Elapsed)
		assert.Equal(t, 10*time.Minute, p.Remaining)
	})

	t.Run("boundaries keep durations non-negative", func(t *testing.T) {
		atStart := ComputeProgress(iv, start)
		assert.Equal(t, time.Duration(0), atStart.Elapsed)
		assert.Equal(t, 15*time.Minute, atStart.Remaining)

		atEnd := ComputeProgress(iv, end)
		assert.Equal(t, 15*time.Minute, atEnd.Elapsed)
		assert.Equal(t, time.Duration(0), atEnd.Remaining)
	})

	t.Run("past exposes no durations", func(t *testing.T) {
		p := ComputeProgress(iv, end.Add(time.Hour))
		assert.Equal(t, domain.StatePast, p.State)
		assert.Zero(t, p.TimeToStart)
		assert.Zero(t, p.Elapsed)
		assert.Zero(t, p.Remaining)
	})
}

func TestPartition_DisjointAndExhaustive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ivs := []domain.Intervention{
		mkIntervention("past-1", now.Add(-3*time.Hour), now.Add(-2*time.Hour), domain.SeverityPartialOutage, "s1"),
		mkIntervention("ongoing-1", now.Add(-time.Hour), now.Add(time.Hour), domain.SeverityFullOutage, "s1"),
		mkIntervention("upcoming-1", now.Add(time.Hour), now.Add(2*time.Hour), domain.SeverityPerformanceIssue, "s2"),
		mkIntervention("ongoing-2", now.Add(-10*time.Minute), now.Add(10*time.Minute), domain.SeverityPerformanceIssue, "s2"),
		mkIntervention("past-2", now.Add(-48*time.Hour), now.Add(-47*time.Hour), domain.SeverityFullOutage, "s2"),
		mkIntervention("upcoming-2", now.Add(30*time.Minute), now.Add(90*time.Minute), domain.SeverityPartialOutage, "s1"),
	}

	b := Partition(ivs, now)

	require.Len(t, b.Upcoming, 2)
	require.Len(t, b.Ongoing, 2)
	require.Len(t, b.Past, 2)

	seen := make(map[string]int)
	for _, bucket := range [][]domain.Intervention{b.Upcoming, b.Ongoing, b.Past} {
		for _, iv := range bucket {
			seen[iv.ID]++
		}
	}
	assert.Len(t, seen, len(ivs), "every intervention lands in exactly one bucket")
	for id, count := range seen {
		assert.Equal(t, 1, count, "intervention %s appears once", id)
	}
}

func TestPartition_OrderingContracts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ivs := []domain.Intervention{
		mkIntervention("up-later", now.Add(5*time.Hour), now.Add(6*time.Hour), domain.SeverityPartialOutage, "s1"),
		mkIntervention("up-soon", now.Add(time.Hour), now.Add(2*time.Hour), domain.SeverityPartialOutage, "s1"),
		mkIntervention("on-long", now.Add(-time.Hour), now.Add(4*time.Hour), domain.SeverityFullOutage, "s1"),
		mkIntervention("on-short", now.Add(-time.Hour), now.Add(time.Hour), domain.SeverityFullOutage, "s1"),
		mkIntervention("past-old", now.Add(-10*time.Hour), now.Add(-9*time.Hour), domain.SeverityPerformanceIssue, "s1"),
		mkIntervention("past-recent", now.Add(-3*time.Hour), now.Add(-2*time.Hour), domain.SeverityPerformanceIssue, "s1"),
	}

	b := Partition(ivs, now)

	require.Len(t, b.Upcoming, 2)
	assert.Equal(t, "up-soon", b.Upcoming[0].ID, "upcoming sorted soonest first")
	for i := 1; i < len(b.Upcoming); i++ {
		assert.False(t, b.Upcoming[i].StartAt.Before(b.Upcoming[i-1].StartAt),
			"upcoming non-decreasing by start_at")
	}

	require.Len(t, b.Ongoing, 2)
	assert.Equal(t, "on-short", b.Ongoing[0].ID, "ongoing sorted soonest-to-resolve first")

	require.Len(t, b.Past, 2)
	assert.Equal(t, "past-recent", b.Past[0].ID, "past sorted most recently resolved first")
	for i := 1; i < len(b.Past); i++ {
		assert.False(t, b.Past[i].EndAt.After(b.Past[i-1].EndAt),
			"past non-increasing by end_at")
	}
}

func TestPartition_Empty(t *testing.T) {
	b := Partition(nil, time.Now())
	assert.Empty(t, b.Upcoming)
	assert.Empty(t, b.Ongoing)
	assert.Empty(t, b.Past)
}
