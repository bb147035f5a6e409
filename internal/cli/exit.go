package cli

import (
	"errors"
	"fmt"
)

// Exit codes follow sysexits(3).
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 64
	ExitDataErr = 65
)

// ExitError carries a process exit code. The command has already reported
// the failure, so the caller exits without printing Err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int { return e.Code }

// Exit wraps err with code. A nil err still yields an ExitError.
func Exit(code int, err error) error { return &ExitError{Code: code, Err: err} }

// CodeOf maps an error returned by Execute to an exit code.
func CodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	if errors.Is(err, ErrUsage) {
		return ExitUsage
	}
	return ExitFailure
}
