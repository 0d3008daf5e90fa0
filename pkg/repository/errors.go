package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the identifier.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when an insert hits an existing identifier.
	ErrConflict = errors.New("record already exists")
)
