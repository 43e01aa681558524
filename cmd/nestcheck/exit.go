package main

import "errors"

// Process exit codes.
const (
	exitOK      = 0
	exitProblem = 1 // structural problem found
	exitFailure = 2 // usage, configuration or file access error
)

// exitError carries a process exit code. A nil err means the output has
// already been written and nothing more should be printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// exitCode maps an error returned by a command to a process exit code.
// Errors cobra raises itself (unknown flags, wrong argument count) are
// usage errors.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}
