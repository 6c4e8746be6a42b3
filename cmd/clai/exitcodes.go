package main

import (
	"fmt"

	"github.com/smetj/clai/internal/verdict"
)

// Exit codes for the clai CLI. Boolean mode uses the binary scheme; 2 is
// never returned.
const (
	ExitOK        = 0                     // Success, or a true verdict.
	ExitFailure   = 1                     // A false verdict, or any runtime error.
	ExitMalformed = verdict.ExitMalformed // The structured response failed validation.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. An empty message exits silently.
func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}
