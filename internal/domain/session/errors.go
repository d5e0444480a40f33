package session

import "errors"

var (
	ErrSessionNotFound = errors.New("charging session not found")
	// ErrAlreadyCharging is raised when an insert loses the race against
	// the partial unique index on open sessions.
	ErrAlreadyCharging = errors.New("equipment already has an open charging session")
	ErrSessionClosed   = errors.New("charging session already closed")
)
