package planner

import (
	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/records"
)

// hierarchyLinks links each unit to its parent. The parent is matched by
// name alone, so a parent name shared by several unit types links to all of
// them. A unit naming itself as parent gets no link.
func (p *Planner) hierarchyLinks(units []records.Unit) []graph.Operation {
	var ops []graph.Operation
	for _, u := range units {
		if !u.HasParent() || *u.ParentUnitName == u.UnitName {
			continue
		}
		child := graph.NewEndpoint(graph.LabelUnit).
			WithKey("name", u.UnitName).
			WithKey("UnitType", u.UnitType)
		parent := graph.NewEndpoint(graph.LabelUnit).WithKey("name", *u.ParentUnitName)
		ops = append(ops, p.link(graph.RelBelongsToUnit, child, parent).WithDistinct().Operation())
	}
	return ops
}

// employeeLinks emits, per employee, the unit memberships, the job-title
// roles and both manager links. Manager links are emitted even when the
// manager id names no loaded employee.
func (p *Planner) employeeLinks(employees []records.Employee) []graph.Operation {
	var ops []graph.Operation
	for _, e := range employees {
		self := employeeRef(e.EmployeeID)

		if e.BusinessUnit != "" {
			bu := graph.NewEndpoint(graph.LabelBusinessUnit).WithKey("name", e.BusinessUnit)
			ops = append(ops, p.link(graph.RelBelongsToUnit, self, bu).Operation())
		}
		if e.Department != "" {
			dept := graph.NewEndpoint(graph.LabelDepartment).WithKey("name", e.Department)
			ops = append(ops, p.link(graph.RelBelongsToUnit, self, dept).Operation())
		}

		for _, title := range SplitAndTrim(e.JobTitle) {
			ops = append(ops, p.link(graph.RelHasRole, self, roleRef(title)).Operation())
		}

		ops = append(ops,
			p.link(graph.RelManagedByTalent, self, employeeRef(e.TalentManager)).Operation(),
			p.link(graph.RelManagedByFunctional, self, employeeRef(e.FunctionalManager)).Operation(),
		)
	}
	return ops
}

func (p *Planner) projectManagerLinks(projects []records.Project) []graph.Operation {
	ops := make([]graph.Operation, 0, len(projects))
	for _, pr := range projects {
		ops = append(ops, p.link(graph.RelManagedByProjectManager,
			projectRef(pr.ProjectID), employeeRef(pr.ProjectManagerID)).Operation())
	}
	return ops
}

// skillLinks emits HAS_SKILL for every employee mapping, then USES_SKILL for
// every project mapping. Skills are matched by SkillID alone.
func (p *Planner) skillLinks(employeeSkills []records.EmployeeSkill, projectSkills []records.ProjectSkill) []graph.Operation {
	ops := make([]graph.Operation, 0, len(employeeSkills)+len(projectSkills))
	for _, m := range employeeSkills {
		ops = append(ops, p.link(graph.RelHasSkill, employeeRef(m.EmployeeID), skillRef(m.SkillID)).Operation())
	}
	for _, m := range projectSkills {
		ops = append(ops, p.link(graph.RelUsesSkill, projectRef(m.ProjectID), skillRef(m.SkillID)).Operation())
	}
	return ops
}
