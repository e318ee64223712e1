package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider failures.
var (
	// ErrRateLimited is returned when the service refuses new messages.
	ErrRateLimited = errors.New("rate limited")

	// ErrTokenNotFound is returned when the auth response carries no session token.
	ErrTokenNotFound = errors.New("session token not found in auth response")

	// ErrEgressBlocked is returned for requests outside the host allowlist.
	ErrEgressBlocked = errors.New("egress blocked")
)

// TransportError reports a failed exchange with the service: a network
// failure, a timeout, or a non-success HTTP status.
type TransportError struct {
	Op     string
	Status int
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		if e.Cause != nil {
			return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.Status, e.Cause)
		}
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// RemoteError is an error object the service returned inside a stream frame.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Status
	}
	return 0
}
