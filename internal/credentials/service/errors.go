package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken is returned inside a *PersistenceError when the store
	// rejects a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")
)

// ValidationError reports request input that was rejected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PersistenceError wraps a store failure with the operation that hit it. Op
// is safe to show to clients; Err is not.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
