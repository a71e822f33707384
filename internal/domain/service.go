package domain

import (
	"net/url"
	"time"
)

// Service represents a monitored service shown on the public status page.
type Service struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the service invariants. The URL is checked for shape only,
// never for reachability.
func (s *Service) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if s.URL != "" {
		u, err := url.Parse(s.URL)
		if err != nil || !u.IsAbs() {
			return &ValidationError{Field: "url", Reason: "must be an absolute URL"}
		}
	}
	return nil
}

// Health represents the computed health of a service or of the whole page.
type Health string

// Health values.
const (
	HealthOperational Health = "operational"
	HealthDegraded    Health = "degraded"
)

// ServiceStatus is the derived status of a single service at a query instant.
// Severity is set only when Health is degraded; Contributing lists every
// ongoing intervention affecting the service, not just the worst one.
type ServiceStatus struct {
	ServiceID    string         `json:"service_id"`
	Health       Health         `json:"health"`
	Severity     Severity       `json:"severity,omitempty"`
	Contributing []Intervention `json:"contributing,omitempty"`
}

// IsHealthy reports whether no ongoing intervention affects the service.
func (s ServiceStatus) IsHealthy() bool {
	return s.Health == HealthOperational
}

// GlobalStatus is the top-line indicator: the worst service status across all
// monitored services. With zero services registered the page is operational.
type GlobalStatus struct {
	Health   Health   `json:"health"`
	Severity Severity `json:"severity,omitempty"`
}
