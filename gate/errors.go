package gate

import (
	"errors"
	"fmt"

	"github.com/zero-day-ai/orggraph/graph"
)

var (
	// ErrDatabaseNotEmpty rejects a run against a store that already holds
	// nodes. Nothing has been applied when it is returned.
	ErrDatabaseNotEmpty = errors.New("database is not empty")

	// ErrExecutionFailed indicates that the store rejected an operation
	// mid-run. Use errors.As with *ExecutionError to find which one.
	ErrExecutionFailed = errors.New("execution failed")
)

// ExecutionError reports the operation that aborted a run.
type ExecutionError struct {
	// Index is the zero-based position of the operation in the plan.
	Index int

	// Operation is the operation the store rejected.
	Operation graph.Operation

	// Err is the store's error.
	Err error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%v: operation %d (%s): %v", ErrExecutionFailed, e.Index, e.Operation, e.Err)
}

// Unwrap returns the store's error.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Is matches ErrExecutionFailed.
func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecutionFailed
}
