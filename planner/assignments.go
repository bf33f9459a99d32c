package planner

import (
	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/graph/id"
	"github.com/zero-day-ai/orggraph/records"
)

// assignmentOps creates one Assignment per mapping row, followed by its
// links. Each project-specific role is merged right before the link that
// needs it, since the role may appear in no job title.
func (p *Planner) assignmentOps(mappings []records.AssignmentMapping) []graph.Operation {
	var ops []graph.Operation
	for _, m := range mappings {
		assignmentID := p.ids.NewID()
		ts := p.timestamp()

		n := graph.NewCreate(graph.LabelAssignment).
			WithKey("AssignmentID", assignmentID).
			SetProperty(graph.PropID, assignmentID).
			SetProperty("TimeAlloted", m.TimeAlloted).
			SetProperty(graph.PropCreatedAt, ts).
			SetProperty(graph.PropLastModified, ts).
			SetProperty(graph.PropIsDeleted, false).
			SetProperty(graph.PropStatus, graph.StatusActive)
		if m.StartDate != nil {
			n.SetProperty("StartDate", id.FormatDate(*m.StartDate))
		}
		if m.EndDate != nil {
			n.SetProperty("EndDate", id.FormatDate(*m.EndDate))
		}
		ops = append(ops, n.Operation())

		self := assignmentRef(assignmentID)
		ops = append(ops,
			p.link(graph.RelAssigned, employeeRef(m.EmployeeID), self).Operation(),
			p.link(graph.RelAssignedToUnit, self, projectRef(m.ProjectID)).Operation(),
		)

		if m.ReportingToEmployeeID != nil && *m.ReportingToEmployeeID != 0 {
			ops = append(ops, p.link(graph.RelReportsTo, self, employeeRef(*m.ReportingToEmployeeID)).Operation())
		}

		for _, role := range SplitAndTrim(m.ProjectSpecificRole) {
			ops = append(ops,
				p.roleOp(role),
				p.link(graph.RelHasRole, self, roleRef(role)).Operation(),
			)
		}
	}
	return ops
}
