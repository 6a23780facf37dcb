package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a local precondition failure that never reaches
	// the workflow engine.
	ErrValidation = errors.New("validation failed")
	// ErrRemote marks a non-2xx or transport failure from the engine.
	ErrRemote = errors.New("remote call failed")
	// ErrUnauthorized means the bearer token was rejected. Handling it
	// (discarding the token, redirecting) is the caller's job.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrTemporary    = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
