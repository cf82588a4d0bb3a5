package filter

import "errors"

// ErrInvalidFilter marks an expression that cannot be parsed. It points at
// bad reference data, never at the seeker's profile.
var ErrInvalidFilter = errors.New("invalid filter expression")
