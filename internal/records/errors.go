package records

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist in
	// its collection.
	ErrNotFound = errors.New("records: not found")
)
