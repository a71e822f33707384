package domain

import "fmt"

// ValidationError reports a violated invariant on a record at create/edit
// time. It never originates from the read path, which is total for
// well-formed inputs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}
