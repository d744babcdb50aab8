// Package namesource defines the port through which the name cache obtains
// fresh name lists. Implementations live in subpackages.
package namesource

import (
	"context"
	"errors"

	"genpi/internal/pi/models"
)

// ErrFetchFailed wraps every reason a list could not be obtained: transport
// errors, non-success statuses, and markup that does not have the expected
// shape.
var ErrFetchFailed = errors.New("name source fetch failed")

//go:generate mockgen -source=source.go -destination=mocks/source_mock.go -package=mocks Source

// Source returns a non-empty, ordered list of names for a sex.
type Source interface {
	Fetch(ctx context.Context, sex models.Sex) ([]models.Name, error)
}
