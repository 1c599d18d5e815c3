package domain

import "errors"

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmptySchedule      = errors.New("event has no sessions")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrDuplicateEventCode = errors.New("event code already in use")
)
