package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrInvalidFixture = errors.New("invalid fixture file")
	ErrOpenStore      = errors.New("open store")
)
