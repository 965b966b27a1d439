package live

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionLimit is returned when the hub is at its session limit.
	ErrSessionLimit = errors.New("live: session limit reached")

	// ErrHubClosed is returned when registering on a hub that is shutting down.
	ErrHubClosed = errors.New("live: hub closed")

	// ErrSessionClosed is returned when sending on a closed session.
	ErrSessionClosed = errors.New("live: session closed")

	// ErrHandshake is returned when the client does not open with hello.
	ErrHandshake = errors.New("live: invalid handshake")

	// ErrSendQueueFull is returned when a slow client falls too far behind.
	ErrSendQueueFull = errors.New("live: send queue full")
)

// SessionError wraps an error with session context.
type SessionError struct {
	SessionID string
	Op        string
	Err       error
}

// Error returns the error message with session context.
func (e *SessionError) Error() string {
	return fmt.Sprintf("live: session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}
