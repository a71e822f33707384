package status

import (
	"time"

	"github.com/vigie-status/vigie/internal/domain"
)

// ComputeServiceStatus derives the status of a single service at the given
// instant from the full intervention list. Interventions are classified
// first; only ongoing ones feed severity resolution.
func ComputeServiceStatus(svc domain.Service, ivs []domain.Intervention, now time.Time) domain.ServiceStatus {
	b := Partition(ivs, now)
	return serviceStatusFromOngoing(svc.ID, b.Ongoing)
}

// serviceStatusFromOngoing resolves a service status from an already
// partitioned ongoing bucket, avoiding re-partitioning per service.
func serviceStatusFromOngoing(serviceID string, ongoing []domain.Intervention) domain.ServiceStatus {
	severity, contributing, degraded := ResolveServiceSeverity(serviceID, ongoing)
	if !degraded {
		return domain.ServiceStatus{
			ServiceID: serviceID,
			Health:    domain.HealthOperational,
		}
	}
	return domain.ServiceStatus{
		ServiceID:    serviceID,
		Health:       domain.HealthDegraded,
		Severity:     severity,
		Contributing: contributing,
	}
}

// ComputeAllServiceStatuses derives the status of every service at the given
// instant, partitioning the intervention list once. The result preserves the
// order of the input services.
func ComputeAllServiceStatuses(svcs []domain.Service, ivs []domain.Intervention, now time.Time) []domain.ServiceStatus {
	b := Partition(ivs, now)
	statuses := make([]domain.ServiceStatus, 0, len(svcs))
	for _, svc := range svcs {
		statuses = append(statuses, serviceStatusFromOngoing(svc.ID, b.Ongoing))
	}
	return statuses
}

// ComputeGlobalStatus derives the top-line page status: the worst severity
// across all services. Zero registered services means an operational page,
// not an error.
func ComputeGlobalStatus(svcs []domain.Service, ivs []domain.Intervention, now time.Time) domain.GlobalStatus {
	global := domain.GlobalStatus{Health: domain.HealthOperational}
	for _, st := range ComputeAllServiceStatuses(svcs, ivs, now) {
		if st.IsHealthy() {
			continue
		}
		if global.Health == domain.HealthOperational || st.Severity.WorseThan(global.Severity) {
			global.Health = domain.HealthDegraded
			global.Severity = st.Severity
		}
	}
	return global
}
