package core

import (
	"errors"
	"fmt"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// ErrSamplingExhausted is wrapped by the invariant raised when a rejection sampler
// runs out of attempts.
var ErrSamplingExhausted = errors.New("rejection sampling exceeded attempt limit")

// InvariantError reports a broken internal invariant. It is raised with panic,
// never returned.
type InvariantError struct {
	Op  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

func newSamplingInvariant(op string) *InvariantError {
	return &InvariantError{
		Op:  op,
		Err: fmt.Errorf("%w (%d attempts)", ErrSamplingExhausted, MaxRejectionAttempts),
	}
}
