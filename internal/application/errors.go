package application

import "errors"

var (
	// ErrNotFound is returned when the targeted record does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrInvalidCredentials is returned when no stored credential pair
	// matches a login attempt.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrDuplicateEmail is returned when registration targets an email that
	// is already taken.
	ErrDuplicateEmail = errors.New("application: email already registered")
	// ErrInvalidRole is returned when dashboard statistics are requested
	// for an unrecognized role.
	ErrInvalidRole = errors.New("application: invalid role")
	// ErrInvalidActorID is returned when an actor id cannot be coerced to
	// an integer.
	ErrInvalidActorID = errors.New("application: invalid actor id")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
