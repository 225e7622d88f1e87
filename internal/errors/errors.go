package errors

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
)

// CommandError is an error that terminates a command with a specific exit code.
type CommandError struct {
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with an exit code and a short description of the failed step.
func NewCommandError(step string, err error, code int) *CommandError {
	return &CommandError{
		ExitCode: code,
		Err:      fmt.Errorf("%s: %w", step, err),
	}
}

// ExitCode returns the exit code carried by err, ExitError for any other error and ExitOK for nil.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return ExitError
}
