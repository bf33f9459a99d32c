package main

import (
	"errors"

	"github.com/zero-day-ai/orggraph"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK           = 0
	exitValidation   = 2
	exitUsage        = 3
	exitPrecondition = 4
	exitExecution    = 5
	exitConfig       = 6
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// exitCode prefers an explicit code, then the kind of an orggraph.Error.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	var oe *orggraph.Error
	if errors.As(err, &oe) {
		switch oe.Kind {
		case orggraph.KindValidation:
			return exitValidation
		case orggraph.KindPrecondition:
			return exitPrecondition
		case orggraph.KindExecution:
			return exitExecution
		case orggraph.KindConfiguration:
			return exitConfig
		}
	}
	return 1
}
