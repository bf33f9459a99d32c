package records

import "time"

// Unit is an organizational unit: a business unit, a department, a project
// or any other grouping.
type Unit struct {
	UnitName       string  `json:"unit_name"`
	ParentUnitName *string `json:"parent_unit_name,omitempty"`
	UnitType       string  `json:"unit_type"`
}

// HasParent reports whether the unit names a non-empty parent.
func (u Unit) HasParent() bool {
	return u.ParentUnitName != nil && *u.ParentUnitName != ""
}

// Employee is one row of the employee table.
type Employee struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	BusinessUnit string `json:"business_unit"`
	Department   string `json:"department"`

	// TalentManager and FunctionalManager are EmployeeIDs. They are linked
	// even when no such employee is loaded.
	TalentManager     int64 `json:"talent_manager"`
	FunctionalManager int64 `json:"functional_manager"`

	// JobTitle is a comma-separated list of role names.
	JobTitle string `json:"job_title"`

	YearOfJoining int `json:"year_of_joining,omitempty"`
	YearOfBirth   int `json:"year_of_birth,omitempty"`
}

// Project is one row of the project table. A project is also a unit.
type Project struct {
	ProjectID        int64      `json:"project_id"`
	ProjectName      string     `json:"project_name"`
	ProjectManagerID int64      `json:"project_manager_id"`
	ProductManagerID int64      `json:"product_manager_id"`
	TechnicalLeadID  int64      `json:"technical_lead_id"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
}

// AssignmentMapping is one employee-to-project engagement. Rows are never
// deduplicated: two identical rows describe two engagements.
type AssignmentMapping struct {
	EmployeeID            int64  `json:"employee_id"`
	ProjectID             int64  `json:"project_id"`
	ReportingToEmployeeID *int64 `json:"reporting_to_employee_id,omitempty"`

	// ProjectSpecificRole is a comma-separated list of role names.
	ProjectSpecificRole string `json:"project_specific_role"`

	TimeAlloted float64    `json:"time_alloted"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// Skill is one row of the skills table.
type Skill struct {
	SkillID   int64  `json:"skill_id"`
	SkillName string `json:"skill_name"`
}

// EmployeeSkill links an employee to a skill.
type EmployeeSkill struct {
	EmployeeID int64 `json:"employee_id"`
	SkillID    int64 `json:"skill_id"`
}

// ProjectSkill links a project to a skill it uses.
type ProjectSkill struct {
	ProjectID int64 `json:"project_id"`
	SkillID   int64 `json:"skill_id"`
}

// Dataset is the full input of one planning run.
type Dataset struct {
	Units          []Unit              `json:"units"`
	Employees      []Employee          `json:"employees"`
	Projects       []Project           `json:"projects"`
	Skills         []Skill             `json:"skills"`
	EmployeeSkills []EmployeeSkill     `json:"employee_skills"`
	ProjectSkills  []ProjectSkill      `json:"project_skills"`
	Assignments    []AssignmentMapping `json:"assignments"`
}

// Counts summarizes how many records of each kind a dataset holds.
type Counts struct {
	Units          int `json:"units"`
	Employees      int `json:"employees"`
	Projects       int `json:"projects"`
	Skills         int `json:"skills"`
	EmployeeSkills int `json:"employee_skills"`
	ProjectSkills  int `json:"project_skills"`
	Assignments    int `json:"assignments"`
}

// Counts returns the record counts of d.
func (d *Dataset) Counts() Counts {
	return Counts{
		Units:          len(d.Units),
		Employees:      len(d.Employees),
		Projects:       len(d.Projects),
		Skills:         len(d.Skills),
		EmployeeSkills: len(d.EmployeeSkills),
		ProjectSkills:  len(d.ProjectSkills),
		Assignments:    len(d.Assignments),
	}
}

// StringPtr returns a pointer to s. Handy for ParentUnitName literals.
func StringPtr(s string) *string {
	return &s
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
