package interventions

import "errors"

// Intervention errors.
var (
	ErrInterventionNotFound    = errors.New("intervention not found")
	ErrCommentNotFound         = errors.New("comment not found")
	ErrAffectedServiceNotFound = errors.New("affected service not found")
)
