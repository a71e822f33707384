package domain

import "time"

// Severity represents the degradation level of an intervention.
// Severities form a total order; conflict resolution always escalates to the
// worst level, never averages.
type Severity string

// Severity levels, ordered from least to most severe.
const (
	SeverityPerformanceIssue Severity = "performance_issue"
	SeverityPartialOutage    Severity = "partial_outage"
	SeverityFullOutage       Severity = "full_outage"
)

// severityRanks maps each severity to its position in the total order.
var severityRanks = map[Severity]int{
	SeverityPerformanceIssue: 1,
	SeverityPartialOutage:    2,
	SeverityFullOutage:       3,
}

// IsValid checks if the severity is a known level.
func (s Severity) IsValid() bool {
	_, ok := severityRanks[s]
	return ok
}

// Rank returns the position of the severity in the total order.
// Unknown severities rank below every valid level.
func (s Severity) Rank() int {
	return severityRanks[s]
}

// WorseThan reports whether s is strictly more severe than other.
func (s Severity) WorseThan(other Severity) bool {
	return s.Rank() > other.Rank()
}

// TemporalState classifies an intervention relative to a query instant.
// It is always derived from the window and the instant, never persisted.
type TemporalState string

// Temporal states.
const (
	StateUpcoming TemporalState = "upcoming"
	StateOngoing  TemporalState = "ongoing"
	StatePast     TemporalState = "past"
)

// Intervention represents a planned or ongoing maintenance/outage event
// affecting one or more services over a fixed time window.
type Intervention struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Severity    Severity  `json:"severity"`
	// EstimatedDurationMinutes is an advisory figure shown to visitors; the
	// window alone drives classification.
	EstimatedDurationMinutes *int64    `json:"estimated_duration_minutes,omitempty"`
	ServiceIDs               []string  `json:"service_ids"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// Validate checks the intervention invariants: non-empty title, a strictly
// positive window, a known severity and at least one affected service.
func (i *Intervention) Validate() error {
	if i.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !i.EndAt.After(i.StartAt) {
		return &ValidationError{Field: "end_at", Reason: "must be after start_at"}
	}
	if !i.Severity.IsValid() {
		return &ValidationError{Field: "severity", Reason: "unknown severity level"}
	}
	if len(i.ServiceIDs) == 0 {
		return &ValidationError{Field: "service_ids", Reason: "must affect at least one service"}
	}
	return nil
}

// Affects reports whether the intervention touches the given service.
func (i *Intervention) Affects(serviceID string) bool {
	for _, id := range i.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Comment is a dated note an operator attaches to an intervention while it
// unfolds, shown on the public intervention view.
type Comment struct {
	ID             string    `json:"id"`
	InterventionID string    `json:"intervention_id"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// Validate checks the comment invariants.
func (c *Comment) Validate() error {
	if c.Message == "" {
		return &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	return nil
}
