package orggraph

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/zero-day-ai/orggraph/gate"
	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/records"
	"github.com/zero-day-ai/orggraph/workbook"
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents malformed input: a bad workbook cell, a
	// record missing a key field or a missing sheet in strict mode.
	KindValidation = "validation"

	// KindPrecondition represents a run refused before anything was
	// applied, such as a non-empty database.
	KindPrecondition = "precondition"

	// KindExecution represents errors raised by the store or the
	// filesystem while a run was in progress.
	KindExecution = "execution"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindInternal represents planner defects, such as an upsert missing
	// its natural key.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// Error supports unwrapping, so errors.Is(err, gate.ErrDatabaseNotEmpty)
// and friends keep working through it.
//
// Example usage:
//
//	var oerr *orggraph.Error
//	if errors.As(err, &oerr) && oerr.Kind == orggraph.KindPrecondition {
//		// nothing was written
//	}
type Error struct {
	// Op is the operation that failed (e.g., "Seeder.SeedFile").
	Op string

	// Kind categorizes the error (e.g., KindValidation, KindExecution).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional),
	// such as the workbook path or the failed operation index.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("orggraph: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("orggraph: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("orggraph: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches an *Error target with the same Kind (and Op, when the target
// sets one), and otherwise delegates to the underlying error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of e with ctx merged into its context.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

// NewPreconditionError creates a new Error with KindPrecondition.
func NewPreconditionError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindPrecondition, Err: err}
}

// NewExecutionError creates a new Error with KindExecution.
func NewExecutionError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindExecution, Err: err}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInternal, Err: err}
}

// classify wraps a non-nil err in an Error whose kind follows from the
// sentinel it carries.
func classify(op string, err error) *Error {
	var execErr *gate.ExecutionError
	switch {
	case errors.Is(err, gate.ErrDatabaseNotEmpty):
		return NewPreconditionError(op, err)
	case errors.As(err, &execErr):
		return NewExecutionError(op, err).WithContext(map[string]any{"index": execErr.Index})
	case errors.Is(err, records.ErrMalformedRecord), errors.Is(err, workbook.ErrSheetMissing):
		return NewValidationError(op, err)
	case errors.Is(err, graph.ErrIncompleteKey),
		errors.Is(err, graph.ErrLabelNotRegistered),
		errors.Is(err, graph.ErrInvalidOperation):
		return NewInternalError(op, err)
	default:
		return NewExecutionError(op, err)
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// If logger is nil, slog.Default() is used.
//
// Example usage:
//
//	defer orggraph.CloseWithLog(client, logger, "redis client")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
