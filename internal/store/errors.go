package store

import (
	"errors"
	"fmt"
)

// The client-side error taxonomy. Every fetch failure is caught at the
// store boundary and converted into snapshot state; none of these
// propagate past it.
var (
	// ErrAuthRequired marks a locked board: the server answered 401
	// with the requires_password flag. Recoverable via SubmitPassword,
	// not a generic failure.
	ErrAuthRequired = errors.New("board requires password")

	// ErrNotFound marks a missing board or action. Terminal: render an
	// empty/error state, no retry.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPassword marks a rejected password verification. The
	// caller re-prompts; there is no lockout.
	ErrInvalidPassword = errors.New("invalid password")
)

// NetworkError wraps a transport failure or an unexpected status code.
// Recoverable via manual retry.
type NetworkError struct {
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network failure: %v", e.Err)
	}
	return fmt.Sprintf("network failure: unexpected status %d", e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }
