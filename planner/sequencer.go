package planner

import (
	"fmt"

	"github.com/zero-day-ai/orggraph/graph"
)

// Stage is one step of the plan. Stages are applied in the order of their
// values.
type Stage int

const (
	StageUnits Stage = iota
	StageUnitHierarchy
	StageEmployees
	StageRoles
	StageEmployeeLinks
	StageProjects
	StageProjectLinks
	StageSkills
	StageSkillLinks
	StageAssignments
)

// stageOrder is the dependency order of the stages. A link stage always
// follows the node stages its endpoints come from.
var stageOrder = []Stage{
	StageUnits,
	StageUnitHierarchy,
	StageEmployees,
	StageRoles,
	StageEmployeeLinks,
	StageProjects,
	StageProjectLinks,
	StageSkills,
	StageSkillLinks,
	StageAssignments,
}

var stageNames = map[Stage]string{
	StageUnits:         "units",
	StageUnitHierarchy: "unit_hierarchy",
	StageEmployees:     "employees",
	StageRoles:         "roles",
	StageEmployeeLinks: "employee_links",
	StageProjects:      "projects",
	StageProjectLinks:  "project_links",
	StageSkills:        "skills",
	StageSkillLinks:    "skill_links",
	StageAssignments:   "assignments",
}

// String returns the stage name.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Stages returns every stage in application order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// Stats counts the operations of a plan by kind.
type Stats struct {
	Merges  int `json:"merges"`
	Creates int `json:"creates"`
	Links   int `json:"links"`
}

// Total returns the number of operations.
func (s Stats) Total() int {
	return s.Merges + s.Creates + s.Links
}

// Plan is the sequenced output of a planning run.
type Plan struct {
	stages map[Stage][]graph.Operation
	ops    []graph.Operation
}

// sequence concatenates per-stage operations in stageOrder.
func sequence(stages map[Stage][]graph.Operation) *Plan {
	total := 0
	for _, ops := range stages {
		total += len(ops)
	}
	all := make([]graph.Operation, 0, total)
	for _, s := range stageOrder {
		all = append(all, stages[s]...)
	}
	return &Plan{stages: stages, ops: all}
}

// Operations returns the operations in application order.
func (p *Plan) Operations() []graph.Operation {
	return p.ops
}

// Stage returns the operations of one stage.
func (p *Plan) Stage(s Stage) []graph.Operation {
	return p.stages[s]
}

// Len returns the number of operations.
func (p *Plan) Len() int {
	return len(p.ops)
}

// Stats counts the plan's operations by kind.
func (p *Plan) Stats() Stats {
	var s Stats
	for _, op := range p.ops {
		switch op.Kind {
		case graph.OpMerge:
			s.Merges++
		case graph.OpCreate:
			s.Creates++
		case graph.OpLink:
			s.Links++
		}
	}
	return s
}
