package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation indicates missing or malformed input. Wrap it with
	// fmt.Errorf("%w: detail") so handlers can surface the detail.
	ErrValidation = errors.New("validation")
)
