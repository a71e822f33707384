// Package clock provides an injectable time source so status computations
// can be tested against fixed instants.
package clock

import "time"

// Clock supplies the current instant. The status engine samples it once per
// request and threads the value through every derived computation.
type Clock interface {
	Now() time.Time
}

// System is the wall-clock implementation used in production.
type System struct{}

// Now returns the current wall-clock time.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed is a clock pinned to a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time {
	return f.Instant
}
