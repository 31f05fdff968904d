package cloud

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest indicates quantum numbers or a point count outside
	// the engine's domain. Reaching the engine with one is a caller bug.
	ErrInvalidRequest = errors.New("cloud: invalid request")

	// ErrCanceled indicates generation was interrupted by its context.
	ErrCanceled = errors.New("cloud: generation canceled by context")
)

// RequestError wraps ErrInvalidRequest with the offending request.
type RequestError struct {
	Request Request
	Reason  string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s (n=%d, l=%d, m=%d, points=%d)",
		ErrInvalidRequest, e.Reason, e.Request.N, e.Request.L, e.Request.M, e.Request.NumPoints)
}

func (e *RequestError) Unwrap() error {
	return ErrInvalidRequest
}
