package repository

import "errors"

var (
	// ErrNotFound means the id or uniqueness key matched no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness key (username, email, system or object
	// name) already exists. Storage-level unique violations are translated
	// to this error and never leaked raw.
	ErrConflict = errors.New("already exists")
)
