package store

import "errors"

var (
	// ErrNotFound is returned when an identifier does not resolve to a record.
	ErrNotFound = errors.New("store: record not found")

	// ErrDuplicate is returned when a write would break a unique index.
	ErrDuplicate = errors.New("store: duplicate value for unique field")
)
