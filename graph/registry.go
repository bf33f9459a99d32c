package graph

import (
	"fmt"
	"sort"
	"sync"
)

// KeyRegistry maps each primary node label to its identifying properties -
// the natural key a merge must match on and that links use to find the node.
//
// Identifying properties are the minimum set of properties that:
//   - Uniquely identify a node with that label
//   - Must be present before the node is merged or created
//   - Form the MERGE pattern, so nothing else (a freshly generated id, a
//     timestamp) may appear in it
//
// For example:
//   - a Unit is identified by "name" and "UnitType"
//   - an Employee is identified by "EmployeeID"
//   - an Assignment is identified by its generated "AssignmentID"
type KeyRegistry interface {
	// IdentifyingProperties returns the natural-key property names for label.
	// Returns ErrLabelNotRegistered if the label is unknown.
	IdentifyingProperties(label string) ([]string, error)

	// IsRegistered reports whether label has a natural key.
	IsRegistered(label string) bool

	// ValidateNode checks a node op against its primary label's key:
	// merges must key on exactly the identifying properties, creations must
	// carry all of them.
	ValidateNode(op *NodeOp) error

	// Labels returns all registered labels, sorted.
	Labels() []string
}

// DefaultKeyRegistry is the in-memory KeyRegistry for the organizational
// graph. It is safe for concurrent use.
type DefaultKeyRegistry struct {
	mu   sync.RWMutex
	keys map[string][]string
}

// NewDefaultKeyRegistry returns a registry pre-populated with the
// organizational taxonomy:
//   - Unit: [name, UnitType]
//   - BusinessUnit, Department: [name]
//   - Project: [ProjectID]
//   - Employee: [EmployeeID]
//   - Role: [RoleType]
//   - Skill: [SkillID, SkillName]
//   - Assignment: [AssignmentID]
func NewDefaultKeyRegistry() *DefaultKeyRegistry {
	r := &DefaultKeyRegistry{keys: make(map[string][]string)}

	r.Register(LabelUnit, "name", "UnitType")
	r.Register(LabelBusinessUnit, "name")
	r.Register(LabelDepartment, "name")
	r.Register(LabelProject, "ProjectID")
	r.Register(LabelEmployee, "EmployeeID")
	r.Register(LabelRole, "RoleType")
	r.Register(LabelSkill, "SkillID", "SkillName")
	r.Register(LabelAssignment, "AssignmentID")

	return r
}

// Register sets the identifying properties for label, replacing any
// previous entry.
func (r *DefaultKeyRegistry) Register(label string, properties ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	props := make([]string, len(properties))
	copy(props, properties)
	r.keys[label] = props
}

// IdentifyingProperties returns a copy of the natural-key properties for label.
func (r *DefaultKeyRegistry) IdentifyingProperties(label string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	props, ok := r.keys[label]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLabelNotRegistered, label)
	}
	out := make([]string, len(props))
	copy(out, props)
	return out, nil
}

// IsRegistered reports whether label has a natural key.
func (r *DefaultKeyRegistry) IsRegistered(label string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keys[label]
	return ok
}

// ValidateNode checks op against the natural key of its primary label.
func (r *DefaultKeyRegistry) ValidateNode(op *NodeOp) error {
	if err := op.Validate(); err != nil {
		return err
	}
	label := op.PrimaryLabel()
	want, err := r.IdentifyingProperties(label)
	if err != nil {
		return err
	}

	switch op.Kind {
	case OpMerge:
		missing := missingProps(want, op.Key)
		extra := extraProps(want, op.Key)
		if len(missing) > 0 || len(extra) > 0 {
			return fmt.Errorf("%w for %s: missing %v, unexpected %v", ErrIncompleteKey, label, missing, extra)
		}
	case OpCreate:
		all := append(op.Key.Clone(), op.Set...)
		if missing := missingProps(want, all); len(missing) > 0 {
			return fmt.Errorf("%w for %s: missing %v", ErrIncompleteKey, label, missing)
		}
	}
	return nil
}

// Labels returns the registered labels, sorted.
func (r *DefaultKeyRegistry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	labels := make([]string, 0, len(r.keys))
	for l := range r.keys {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

func missingProps(want []string, have Props) []string {
	var missing []string
	for _, k := range want {
		// Empty strings are legitimate key values (a blank role token).
		if v, ok := have.Get(k); !ok || v == nil {
			missing = append(missing, k)
		}
	}
	return missing
}

func extraProps(want []string, have Props) []string {
	allowed := make(map[string]struct{}, len(want))
	for _, k := range want {
		allowed[k] = struct{}{}
	}
	var extra []string
	for _, p := range have {
		if _, ok := allowed[p.Key]; !ok {
			extra = append(extra, p.Key)
		}
	}
	return extra
}
