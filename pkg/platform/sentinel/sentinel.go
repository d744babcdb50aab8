package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Caches and upstream clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	// ErrConflict means another caller currently holds the resource.
	ErrConflict = errors.New("conflict")
)
