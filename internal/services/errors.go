package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized marks a credential the first-party service rejected.
	// The UI should prompt re-authentication rather than retry.
	ErrUnauthorized = errors.New("credential rejected")

	// ErrToggleInFlight marks a re-entrant toggle on an identifier whose
	// previous mutation has not settled yet.
	ErrToggleInFlight = errors.New("bookmark mutation already in flight")
)

// RemoteError carries the first-party service's verbatim error message,
// surfaced unchanged for conflict and validation failures.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("account service error: status %d", e.StatusCode)
}
