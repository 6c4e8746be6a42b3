package llm

import (
	"errors"
	"fmt"
)

// ErrBackend is matched by every *Error.
var ErrBackend = errors.New("backend error")

// Error is the uniform failure every adapter returns for transport,
// authentication or vendor-side problems. It carries the vendor's error text
// only; the vendor error value itself never leaves the adapter.
type Error struct {
	Backend string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Backend, e.Message)
}

// Is makes errors.Is(err, ErrBackend) work.
func (e *Error) Is(target error) bool { return target == ErrBackend }

// NewError converts err into an *Error for backend.
func NewError(backend string, err error) *Error {
	return &Error{Backend: backend, Message: err.Error()}
}
