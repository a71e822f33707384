package status

import "github.com/vigie-status/vigie/internal/domain"

// ResolveServiceSeverity resolves the severity of a service from the ongoing
// interventions affecting it. The returned severity is the worst level among
// the matches; Contributing keeps every matching intervention so the view can
// enumerate all of them, not just a single winner. ok is false when no
// ongoing intervention touches the service.
//
// Severity escalates and never averages: one full outage dominates any number
// of concurrent performance issues on the same service.
func ResolveServiceSeverity(serviceID string, ongoing []domain.Intervention) (worst domain.Severity, contributing []domain.Intervention, ok bool) {
	for _, iv := range ongoing {
		if !iv.Affects(serviceID) {
			continue
		}
		contributing = append(contributing, iv)
		if !ok || iv.Severity.WorseThan(worst) {
			worst = iv.Severity
			ok = true
		}
	}
	return worst, contributing, ok
}
