package graph

import "fmt"

// OpKind identifies the kind of a graph mutation.
type OpKind string

const (
	// OpMerge upserts a node by its natural key.
	OpMerge OpKind = "merge"

	// OpCreate inserts a new node unconditionally.
	OpCreate OpKind = "create"

	// OpLink matches two nodes by natural key and links them.
	OpLink OpKind = "link"
)

// NodeOp describes a node upsert or creation.
//
// For OpMerge, Key is the match pattern. OnCreate applies only when the node
// is first created, OnMatch only when an existing node matched, and Set in
// both cases. For OpCreate, Key and Set together form the new node's
// properties and the branch-specific lists are unused.
type NodeOp struct {
	// Kind is OpMerge or OpCreate.
	Kind OpKind `json:"kind"`

	// Labels are the node labels. The first label is the primary label used
	// for natural-key lookup in a KeyRegistry.
	Labels []string `json:"labels"`

	// Key holds the identifying properties.
	Key Props `json:"key,omitempty"`

	// OnCreate holds properties written only on creation.
	OnCreate Props `json:"on_create,omitempty"`

	// OnMatch holds properties written only when an existing node matched.
	OnMatch Props `json:"on_match,omitempty"`

	// Set holds properties written in every case.
	Set Props `json:"set,omitempty"`
}

// NewMerge starts a node upsert with the given labels.
func NewMerge(labels ...string) *NodeOp {
	return &NodeOp{Kind: OpMerge, Labels: labels}
}

// NewCreate starts an unconditional node creation with the given labels.
func NewCreate(labels ...string) *NodeOp {
	return &NodeOp{Kind: OpCreate, Labels: labels}
}

// WithKey adds an identifying property and returns the op for chaining.
func (n *NodeOp) WithKey(key string, value any) *NodeOp {
	n.Key = n.Key.With(key, value)
	return n
}

// OnCreateSet adds a create-only property and returns the op for chaining.
func (n *NodeOp) OnCreateSet(key string, value any) *NodeOp {
	n.OnCreate = n.OnCreate.With(key, value)
	return n
}

// OnMatchSet adds a match-only property and returns the op for chaining.
func (n *NodeOp) OnMatchSet(key string, value any) *NodeOp {
	n.OnMatch = n.OnMatch.With(key, value)
	return n
}

// SetProperty adds an always-written property and returns the op for chaining.
func (n *NodeOp) SetProperty(key string, value any) *NodeOp {
	n.Set = n.Set.With(key, value)
	return n
}

// PrimaryLabel returns the first label, or "" when there are none.
func (n *NodeOp) PrimaryLabel() string {
	if len(n.Labels) == 0 {
		return ""
	}
	return n.Labels[0]
}

// Operation wraps the node op.
func (n *NodeOp) Operation() Operation {
	return Operation{Kind: n.Kind, Node: n}
}

// Validate checks that the op is structurally complete.
func (n *NodeOp) Validate() error {
	if n.Kind != OpMerge && n.Kind != OpCreate {
		return fmt.Errorf("%w: unknown node op kind %q", ErrInvalidOperation, n.Kind)
	}
	if len(n.Labels) == 0 {
		return fmt.Errorf("%w: node op requires at least one label", ErrInvalidOperation)
	}
	for _, l := range n.Labels {
		if l == "" {
			return fmt.Errorf("%w: node op has an empty label", ErrInvalidOperation)
		}
	}
	if n.Kind == OpMerge && len(n.Key) == 0 {
		return fmt.Errorf("%w: merge on %s requires a key", ErrInvalidOperation, n.PrimaryLabel())
	}
	if n.Kind == OpCreate && len(n.Key)+len(n.Set) == 0 {
		return fmt.Errorf("%w: create of %s requires properties", ErrInvalidOperation, n.PrimaryLabel())
	}
	return nil
}

// Operation is one graph mutation. Exactly one of Node or Link is set,
// matching Kind.
type Operation struct {
	Kind OpKind  `json:"kind"`
	Node *NodeOp `json:"node,omitempty"`
	Link *LinkOp `json:"link,omitempty"`
}

// IsLink reports whether the operation links two nodes.
func (o Operation) IsLink() bool {
	return o.Kind == OpLink && o.Link != nil
}

// Validate checks that the operation is structurally complete.
func (o Operation) Validate() error {
	switch o.Kind {
	case OpMerge, OpCreate:
		if o.Node == nil {
			return fmt.Errorf("%w: %s operation without node", ErrInvalidOperation, o.Kind)
		}
		if o.Node.Kind != o.Kind {
			return fmt.Errorf("%w: operation kind %s does not match node kind %s", ErrInvalidOperation, o.Kind, o.Node.Kind)
		}
		return o.Node.Validate()
	case OpLink:
		if o.Link == nil {
			return fmt.Errorf("%w: link operation without link", ErrInvalidOperation)
		}
		return o.Link.Validate()
	default:
		return fmt.Errorf("%w: unknown operation kind %q", ErrInvalidOperation, o.Kind)
	}
}

// String returns a short human-readable description.
func (o Operation) String() string {
	switch {
	case o.Node != nil:
		return fmt.Sprintf("%s %v %s", o.Kind, o.Node.Labels, describeProps(o.Node.Key))
	case o.Link != nil:
		return fmt.Sprintf("link %s%s -[%s]-> %s%s",
			o.Link.From.PrimaryLabel(), describeProps(o.Link.From.Key),
			o.Link.Type,
			o.Link.To.PrimaryLabel(), describeProps(o.Link.To.Key))
	default:
		return string(o.Kind)
	}
}

func describeProps(p Props) string {
	if len(p) == 0 {
		return "{}"
	}
	s := "{"
	for i, prop := range p {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %v", prop.Key, prop.Value)
	}
	return s + "}"
}
