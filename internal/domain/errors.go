package domain

import "errors"

// Sentinel error kinds for the registries. Handlers map these to HTTP
// status codes; services wrap them with fmt.Errorf("...: %w", ...) to add
// entity detail.
var (
	// ErrNotFound means a referenced aircraft or flight id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a serial number collides with an existing aircraft.
	ErrConflict = errors.New("already exists")

	// ErrPreconditionFailed means a delete is blocked by an existing
	// reference (an aircraft still assigned to flights).
	ErrPreconditionFailed = errors.New("precondition failed")
)

// ValidationError reports malformed or inconsistent input: a missing field,
// a bad ICAO code, an unparseable timestamp, or an invalid temporal order.
// The request is rejected before any state changes.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds a ValidationError with the given message.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
