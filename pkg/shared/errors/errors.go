package errors

import (
	"fmt"
)

// CommandError carries the process exit code for a failed command.
type CommandError struct {
	ExitCode int
	Err      error
}

// Error implements the error interface, returning the message of the wrapped error.
func (e *CommandError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the wrapped error for errors.Is / errors.As checks.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps an error with the exit code the process should finish with.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode: code,
		Err:      err,
	}
}

// NewCommandErrorf formats a new command error with the given exit code.
func NewCommandErrorf(code int, format string, args ...interface{}) *CommandError {
	return &CommandError{
		ExitCode: code,
		Err:      fmt.Errorf(format, args...),
	}
}
