package graph

import "errors"

// Sentinel errors for graph operations.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidOperation indicates that an operation is structurally incomplete:
	//   - a node op without labels
	//   - a merge without a key
	//   - a link without a type or with an endpoint lacking a label or key
	//
	// Example:
	//	if err := op.Validate(); errors.Is(err, graph.ErrInvalidOperation) {
	//	    log.Errorf("refusing to apply operation: %v", err)
	//	}
	ErrInvalidOperation = errors.New("invalid graph operation")

	// ErrLabelNotRegistered indicates that a merge targets a primary label with
	// no natural key in the KeyRegistry.
	ErrLabelNotRegistered = errors.New("label not registered")

	// ErrIncompleteKey indicates that a merge's match pattern does not carry
	// every identifying property of its label, or carries extra ones. Either
	// case breaks merge-by-natural-key idempotency.
	//
	// Example:
	//	if err := registry.ValidateNode(op); errors.Is(err, graph.ErrIncompleteKey) {
	//	    log.Errorf("upsert would not be idempotent: %v", err)
	//	}
	ErrIncompleteKey = errors.New("incomplete natural key")
)
