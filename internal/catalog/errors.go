package catalog

import "errors"

// Catalog errors.
var (
	ErrServiceNotFound     = errors.New("service not found")
	ErrSlugExists          = errors.New("a service with this slug already exists")
	ErrServiceInUse        = errors.New("service is referenced by interventions")
	ErrUnknownDeletePolicy = errors.New("unknown deletion policy")
)
