package reference

import "errors"

// ErrNotFound is returned when a key is absent from a collection. A document
// that exists but holds an empty list is not ErrNotFound.
var ErrNotFound = errors.New("reference document not found")
