package planner

import (
	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/graph/id"
	"github.com/zero-day-ai/orggraph/records"
)

func (p *Planner) unitOps(units []records.Unit) []graph.Operation {
	ops := make([]graph.Operation, 0, len(units))
	for _, u := range units {
		n := graph.NewMerge(UnitLabels(u.UnitType)...).
			WithKey("name", u.UnitName).
			WithKey("UnitType", u.UnitType)
		ops = append(ops, p.stamp(n).Operation())
	}
	return ops
}

func (p *Planner) employeeOps(employees []records.Employee) []graph.Operation {
	ops := make([]graph.Operation, 0, len(employees))
	for _, e := range employees {
		n := graph.NewMerge(graph.LabelEmployee).
			WithKey("EmployeeID", e.EmployeeID).
			SetProperty("Name", e.EmployeeName).
			SetProperty("BusinessUnit", e.BusinessUnit).
			SetProperty("Department", e.Department).
			SetProperty("JobTitle", e.JobTitle)
		if e.YearOfJoining != 0 {
			n.SetProperty("YearOfJoining", e.YearOfJoining)
		}
		if e.YearOfBirth != 0 {
			n.SetProperty("YearOfBirth", e.YearOfBirth)
		}
		ops = append(ops, p.stamp(n).Operation())
	}
	return ops
}

// jobTitleRoleOps merges one Role per distinct job-title token, in the order
// tokens are first seen.
func (p *Planner) jobTitleRoleOps(employees []records.Employee) []graph.Operation {
	var ops []graph.Operation
	seen := make(map[string]struct{})
	for _, e := range employees {
		for _, title := range SplitAndTrim(e.JobTitle) {
			if _, ok := seen[title]; ok {
				continue
			}
			seen[title] = struct{}{}
			ops = append(ops, p.roleOp(title))
		}
	}
	return ops
}

func (p *Planner) roleOp(roleType string) graph.Operation {
	return p.stamp(graph.NewMerge(graph.LabelRole).WithKey("RoleType", roleType)).Operation()
}

func (p *Planner) projectOps(projects []records.Project) []graph.Operation {
	ops := make([]graph.Operation, 0, len(projects))
	for _, pr := range projects {
		n := graph.NewMerge(graph.LabelProject, graph.LabelUnit).
			WithKey("ProjectID", pr.ProjectID).
			SetProperty("name", pr.ProjectName).
			SetProperty("ProjectName", pr.ProjectName).
			SetProperty("ProjectManagerID", pr.ProjectManagerID).
			SetProperty("ProductManagerID", pr.ProductManagerID).
			SetProperty("TechnicalLeadID", pr.TechnicalLeadID)
		// Absent dates are left off rather than written as null.
		if pr.StartDate != nil {
			n.SetProperty("StartDate", id.FormatDate(*pr.StartDate))
		}
		if pr.EndDate != nil {
			n.SetProperty("EndDate", id.FormatDate(*pr.EndDate))
		}
		ops = append(ops, p.stamp(n).Operation())
	}
	return ops
}

func (p *Planner) skillOps(skills []records.Skill) []graph.Operation {
	ops := make([]graph.Operation, 0, len(skills))
	for _, s := range skills {
		n := graph.NewMerge(graph.LabelSkill).
			WithKey("SkillID", s.SkillID).
			WithKey("SkillName", s.SkillName)
		ops = append(ops, p.stamp(n).Operation())
	}
	return ops
}
