package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/zero-day-ai/orggraph/graph"
)

// Node is a stored node.
type Node struct {
	ID     int64
	Labels []string
	Props  map[string]any
}

// HasLabels reports whether the node carries every label in labels.
func (n *Node) HasLabels(labels ...string) bool {
	for _, l := range labels {
		if !slices.Contains(n.Labels, l) {
			return false
		}
	}
	return true
}

// Relationship is a stored directed relationship.
type Relationship struct {
	ID    int64
	Type  string
	From  int64
	To    int64
	Props map[string]any
}

// FailureFunc decides whether the call-th Apply (zero-based) fails.
// Returning nil lets the operation through.
type FailureFunc func(call int, op graph.Operation) error

// Store is an in-memory graph.
type Store struct {
	mu     sync.Mutex
	nodes  []*Node
	rels   []*Relationship
	nextID int64
	calls  int
	fail   FailureFunc
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// InjectFailure installs fn to simulate store errors. Pass nil to remove it.
func (s *Store) InjectFailure(fn FailureFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fn
}

// IsEmpty reports whether the store holds no nodes.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes) == 0, nil
}

// Apply executes one operation.
func (s *Store) Apply(ctx context.Context, op graph.Operation) (graph.Summary, error) {
	if err := ctx.Err(); err != nil {
		return graph.Summary{}, err
	}
	if err := op.Validate(); err != nil {
		return graph.Summary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	call := s.calls
	s.calls++
	if s.fail != nil {
		if err := s.fail(call, op); err != nil {
			return graph.Summary{}, err
		}
	}

	switch op.Kind {
	case graph.OpMerge:
		return s.merge(op.Node), nil
	case graph.OpCreate:
		return s.create(op.Node), nil
	default:
		return s.link(op.Link), nil
	}
}

// Close is a no-op; it satisfies the same lifecycle as real stores.
func (s *Store) Close(context.Context) error {
	return nil
}

// NodeCount returns the number of nodes carrying all of labels. With no
// labels it counts every node.
func (s *Store) NodeCount(labels ...string) int {
	return len(s.Nodes(labels...))
}

// Nodes returns copies of the nodes carrying all of labels, in creation order.
func (s *Store) Nodes(labels ...string) []Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Node
	for _, n := range s.nodes {
		if n.HasLabels(labels...) {
			out = append(out, Node{ID: n.ID, Labels: slices.Clone(n.Labels), Props: cloneMap(n.Props)})
		}
	}
	return out
}

// RelationshipCount returns the number of relationships of relType, or of
// every type when relType is "".
func (s *Store) RelationshipCount(relType string) int {
	return len(s.Relationships(relType))
}

// Relationships returns copies of the relationships of relType, or of every
// type when relType is "".
func (s *Store) Relationships(relType string) []Relationship {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Relationship
	for _, r := range s.rels {
		if relType == "" || r.Type == relType {
			out = append(out, Relationship{ID: r.ID, Type: r.Type, From: r.From, To: r.To, Props: cloneMap(r.Props)})
		}
	}
	return out
}

// Node returns a copy of the node with the given internal id.
func (s *Store) Node(nodeID int64) (Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.nodes {
		if n.ID == nodeID {
			return Node{ID: n.ID, Labels: slices.Clone(n.Labels), Props: cloneMap(n.Props)}, true
		}
	}
	return Node{}, false
}

func (s *Store) merge(op *graph.NodeOp) graph.Summary {
	matched := s.match(op.Labels, op.Key)
	if len(matched) == 0 {
		n := s.newNode(op.Labels, op.Key)
		set := applyProps(n.Props, op.OnCreate) + applyProps(n.Props, op.Set)
		return graph.Summary{NodesCreated: 1, PropertiesSet: len(op.Key) + set}
	}

	var sum graph.Summary
	for _, n := range matched {
		sum.PropertiesSet += applyProps(n.Props, op.OnMatch) + applyProps(n.Props, op.Set)
	}
	return sum
}

func (s *Store) create(op *graph.NodeOp) graph.Summary {
	n := s.newNode(op.Labels, op.Key)
	set := applyProps(n.Props, op.Set)
	return graph.Summary{NodesCreated: 1, PropertiesSet: len(op.Key) + set}
}

func (s *Store) link(op *graph.LinkOp) graph.Summary {
	var sum graph.Summary
	for _, a := range s.match(op.From.Labels, op.From.Key) {
		for _, b := range s.match(op.To.Labels, op.To.Key) {
			if op.Distinct && a.ID == b.ID {
				continue
			}
			if s.hasRelationship(op.Type, a.ID, b.ID) {
				continue
			}
			s.nextID++
			r := &Relationship{ID: s.nextID, Type: op.Type, From: a.ID, To: b.ID, Props: map[string]any{}}
			sum.PropertiesSet += applyProps(r.Props, op.Properties)
			s.rels = append(s.rels, r)
			sum.RelationshipsCreated++
		}
	}
	return sum
}

func (s *Store) newNode(labels []string, key graph.Props) *Node {
	s.nextID++
	n := &Node{ID: s.nextID, Labels: slices.Clone(labels), Props: key.Map()}
	s.nodes = append(s.nodes, n)
	return n
}

func (s *Store) match(labels []string, key graph.Props) []*Node {
	var out []*Node
	for _, n := range s.nodes {
		if !n.HasLabels(labels...) {
			continue
		}
		if propsMatch(n.Props, key) {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) hasRelationship(relType string, from, to int64) bool {
	for _, r := range s.rels {
		if r.Type == relType && r.From == from && r.To == to {
			return true
		}
	}
	return false
}

func propsMatch(have map[string]any, want graph.Props) bool {
	for _, p := range want {
		v, ok := have[p.Key]
		if !ok || !valuesEqual(v, p.Value) {
			return false
		}
	}
	return true
}

func applyProps(dst map[string]any, props graph.Props) int {
	for _, p := range props {
		dst[p.Key] = p.Value
	}
	return len(props)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
