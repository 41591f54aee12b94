package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential means the reasoning engine has no usable API key.
	// It is a configuration failure and is never masked by a fallback reply.
	ErrMissingCredential = errors.New("reasoning engine credential is not configured")

	// ErrEngineUnavailable covers transport failures, non-2xx statuses and
	// unparseable bodies from the reasoning engine.
	ErrEngineUnavailable = errors.New("reasoning engine unavailable")

	// ErrNotFound is returned when a goal id does not reference a live row.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks requests rejected before touching any store.
	ErrInvalidInput = errors.New("invalid input")
)

// EngineError describes one failed call to the reasoning engine.
type EngineError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *EngineError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("reasoning engine http %d: %s", e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("reasoning engine: %v", e.Err)
	default:
		return ErrEngineUnavailable.Error()
	}
}

func (e *EngineError) Unwrap() error { return e.Err }

func (e *EngineError) Is(target error) bool { return target == ErrEngineUnavailable }

// Invalid wraps ErrInvalidInput with a message for the caller.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
