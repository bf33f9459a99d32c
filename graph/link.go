package graph

import "fmt"

// Endpoint locates one side of a link by label and natural-key properties.
// The key may be partial (for example a unit matched by name only); every
// node carrying the label and all key values matches.
type Endpoint struct {
	Labels []string `json:"labels"`
	Key    Props    `json:"key"`
}

// NewEndpoint starts an endpoint pattern for the given labels.
func NewEndpoint(labels ...string) Endpoint {
	return Endpoint{Labels: labels}
}

// WithKey adds a lookup property and returns the endpoint for chaining.
func (e Endpoint) WithKey(key string, value any) Endpoint {
	e.Key = e.Key.Clone().With(key, value)
	return e
}

// PrimaryLabel returns the first label, or "" when there are none.
func (e Endpoint) PrimaryLabel() string {
	if len(e.Labels) == 0 {
		return ""
	}
	return e.Labels[0]
}

// LinkOp connects every node matching From to every node matching To with a
// relationship of Type. Properties are written once, when the relationship is
// first created.
type LinkOp struct {
	// Type is the relationship type (e.g., "BELONGS_TO_UNIT").
	Type string `json:"type"`

	// From is the source endpoint pattern.
	From Endpoint `json:"from"`

	// To is the target endpoint pattern.
	To Endpoint `json:"to"`

	// Distinct requires the matched source and target to be different nodes.
	Distinct bool `json:"distinct,omitempty"`

	// Properties holds relationship properties written on creation.
	Properties Props `json:"properties,omitempty"`
}

// NewLink creates a link of relType from one endpoint to another.
func NewLink(relType string, from, to Endpoint) *LinkOp {
	return &LinkOp{
		Type: relType,
		From: from,
		To:   to,
	}
}

// WithProperty adds a relationship property and returns the link for chaining.
func (l *LinkOp) WithProperty(key string, value any) *LinkOp {
	l.Properties = l.Properties.With(key, value)
	return l
}

// WithProperties appends props and returns the link for chaining.
func (l *LinkOp) WithProperties(props Props) *LinkOp {
	for _, p := range props {
		l.Properties = l.Properties.With(p.Key, p.Value)
	}
	return l
}

// WithDistinct guards against linking a node to itself.
func (l *LinkOp) WithDistinct() *LinkOp {
	l.Distinct = true
	return l
}

// Operation wraps the link op.
func (l *LinkOp) Operation() Operation {
	return Operation{Kind: OpLink, Link: l}
}

// Validate checks that the link has a type and both endpoints are usable.
func (l *LinkOp) Validate() error {
	if l.Type == "" {
		return fmt.Errorf("%w: link type cannot be empty", ErrInvalidOperation)
	}
	if err := l.From.validate("from"); err != nil {
		return err
	}
	return l.To.validate("to")
}

func (e Endpoint) validate(side string) error {
	if e.PrimaryLabel() == "" {
		return fmt.Errorf("%w: link %s endpoint requires a label", ErrInvalidOperation, side)
	}
	if len(e.Key) == 0 {
		return fmt.Errorf("%w: link %s endpoint requires a key", ErrInvalidOperation, side)
	}
	return nil
}
