package model

import "errors"

var (
	// ErrNotFound is returned when no assessment matches the given identifier.
	ErrNotFound = errors.New("assessment not found")
	// ErrInvalidID is returned before touching the store when an identifier is malformed.
	ErrInvalidID = errors.New("invalid assessment ID format")
	// ErrValidation is returned when a submission is missing required fields.
	ErrValidation = errors.New("invalid assessment submission")
	// ErrStorageUnavailable is returned after the retry budget for the backing store is exhausted.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
