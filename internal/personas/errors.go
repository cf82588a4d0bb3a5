package personas

import "errors"

// Sentinel kinds for persona errors.
var (
	ErrInvalidPersonas = errors.New("invalid personas file")
	ErrProbeFailed     = errors.New("probe failed")
)
