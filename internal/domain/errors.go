package domain

import "errors"

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned by repositories when a unique index or a
	// conditional write rejects the change.
	ErrConflict = errors.New("resource conflict")
)
