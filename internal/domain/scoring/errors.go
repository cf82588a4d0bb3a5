package scoring

import (
	"errors"

	"github.com/okian/advisor/internal/domain/filter"
)

// Sentinel kinds for scoring errors.
var (
	ErrUnknownModel        = errors.New("no such scoring model")
	ErrMalformedIdentifier = errors.New("malformed scoring model identifier")
	ErrInvalidDocument     = errors.New("invalid reference document")
)

// IsConfigurationError reports whether err comes from a bad deployment or bad
// reference data rather than from the seeker's data or the store.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownModel) ||
		errors.Is(err, ErrMalformedIdentifier) ||
		errors.Is(err, ErrInvalidDocument) ||
		errors.Is(err, filter.ErrInvalidFilter)
}
