package calendar

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed or semantically invalid calendar configuration:
// a bad period, or an unrecognized order, offset or label format.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("calendar: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// OverflowError reports a page number outside [1, Last] when cycling is disabled.
// Callers usually treat it as recoverable, e.g. by redirecting to Last.
type OverflowError struct {
	Page int
	Last int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("calendar: page %d out of range [1, %d]", e.Page, e.Last)
}

// InternalError reports misuse of the construction contract: an unsupported unit at the
// factory, or a Calendar that was not built by New.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return "calendar: " + e.Reason
}

// IsOverflow reports whether err is, or wraps, an *OverflowError.
func IsOverflow(err error) bool {
	var oe *OverflowError
	return errors.As(err, &oe)
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
