package planner

import (
	"fmt"
	"log/slog"

	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/graph/id"
	"github.com/zero-day-ai/orggraph/records"
)

// Option configures a Planner.
type Option func(*Planner)

// WithIDGenerator sets the source of generated "_id" and AssignmentID values.
// Defaults to id.UUIDGenerator.
func WithIDGenerator(g id.Generator) Option {
	return func(p *Planner) {
		p.ids = g
	}
}

// WithClock sets the source of bookkeeping timestamps.
// Defaults to id.SystemClock.
func WithClock(c id.Clock) Option {
	return func(p *Planner) {
		p.clock = c
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// WithKeyRegistry sets the registry every emitted node operation is checked
// against. Defaults to graph.NewDefaultKeyRegistry().
func WithKeyRegistry(r graph.KeyRegistry) Option {
	return func(p *Planner) {
		p.registry = r
	}
}

// Planner turns a records.Dataset into a Plan.
type Planner struct {
	ids      id.Generator
	clock    id.Clock
	logger   *slog.Logger
	registry graph.KeyRegistry
}

// New creates a planner with the given options.
func New(opts ...Option) *Planner {
	p := &Planner{
		ids:      id.UUIDGenerator{},
		clock:    id.SystemClock{},
		logger:   slog.Default(),
		registry: graph.NewDefaultKeyRegistry(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan compiles ds into a sequenced plan.
//
// A dataset with any malformed record is rejected as a whole with an error
// wrapping records.ErrMalformedRecord; no operations are returned.
func (p *Planner) Plan(ds *records.Dataset) (*Plan, error) {
	if ds == nil {
		ds = &records.Dataset{}
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("planning: %w", err)
	}

	stages := map[Stage][]graph.Operation{
		StageUnits:         p.unitOps(ds.Units),
		StageUnitHierarchy: p.hierarchyLinks(ds.Units),
		StageEmployees:     p.employeeOps(ds.Employees),
		StageRoles:         p.jobTitleRoleOps(ds.Employees),
		StageEmployeeLinks: p.employeeLinks(ds.Employees),
		StageProjects:      p.projectOps(ds.Projects),
		StageProjectLinks:  p.projectManagerLinks(ds.Projects),
		StageSkills:        p.skillOps(ds.Skills),
		StageSkillLinks:    p.skillLinks(ds.EmployeeSkills, ds.ProjectSkills),
		StageAssignments:   p.assignmentOps(ds.Assignments),
	}

	plan := sequence(stages)
	if err := p.check(plan); err != nil {
		return nil, err
	}

	stats := plan.Stats()
	p.logger.Debug("plan built",
		"operations", plan.Len(),
		"merges", stats.Merges,
		"creates", stats.Creates,
		"links", stats.Links,
	)
	return plan, nil
}

// check verifies every node operation against the key registry. A failure
// here is a planner defect, not bad input.
func (p *Planner) check(plan *Plan) error {
	for i, op := range plan.Operations() {
		if op.Node != nil {
			if err := p.registry.ValidateNode(op.Node); err != nil {
				return fmt.Errorf("planning: operation %d (%s): %w", i, op, err)
			}
			continue
		}
		if err := op.Validate(); err != nil {
			return fmt.Errorf("planning: operation %d (%s): %w", i, op, err)
		}
	}
	return nil
}

// timestamp returns the current bookkeeping timestamp.
func (p *Planner) timestamp() string {
	return id.Timestamp(p.clock)
}

// stamp adds the create-only bookkeeping block and the touch-on-match
// refresh to a merge.
func (p *Planner) stamp(n *graph.NodeOp) *graph.NodeOp {
	ts := p.timestamp()
	return n.
		OnCreateSet(graph.PropID, p.ids.NewID()).
		OnCreateSet(graph.PropCreatedAt, ts).
		OnCreateSet(graph.PropLastModified, ts).
		OnCreateSet(graph.PropIsDeleted, false).
		OnCreateSet(graph.PropStatus, graph.StatusActive).
		OnMatchSet(graph.PropLastModified, ts)
}

// linkProps returns the bookkeeping properties written on a new relationship.
func (p *Planner) linkProps() graph.Props {
	ts := p.timestamp()
	return graph.Props{
		{Key: graph.PropID, Value: p.ids.NewID()},
		{Key: graph.PropCreatedAt, Value: ts},
		{Key: graph.PropLastModified, Value: ts},
		{Key: graph.PropIsDeleted, Value: false},
		{Key: graph.PropStatus, Value: graph.StatusActive},
	}
}

// link builds a link operation carrying fresh bookkeeping properties.
func (p *Planner) link(relType string, from, to graph.Endpoint) *graph.LinkOp {
	return graph.NewLink(relType, from, to).WithProperties(p.linkProps())
}

func employeeRef(employeeID int64) graph.Endpoint {
	return graph.NewEndpoint(graph.LabelEmployee).WithKey("EmployeeID", employeeID)
}

func projectRef(projectID int64) graph.Endpoint {
	return graph.NewEndpoint(graph.LabelProject).WithKey("ProjectID", projectID)
}

func roleRef(roleType string) graph.Endpoint {
	return graph.NewEndpoint(graph.LabelRole).WithKey("RoleType", roleType)
}

func skillRef(skillID int64) graph.Endpoint {
	return graph.NewEndpoint(graph.LabelSkill).WithKey("SkillID", skillID)
}

func assignmentRef(assignmentID string) graph.Endpoint {
	return graph.NewEndpoint(graph.LabelAssignment).WithKey("AssignmentID", assignmentID)
}
