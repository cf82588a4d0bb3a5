package model

import "errors"

// Sentinel kinds for model decoding errors.
var (
	ErrUnknownValue = errors.New("unknown enum value")
)
