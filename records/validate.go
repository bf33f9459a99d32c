package records

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord indicates a record missing one of its own key fields.
//
// Example:
//
//	if err := ds.Validate(); errors.Is(err, records.ErrMalformedRecord) {
//	    return fmt.Errorf("refusing to plan: %w", err)
//	}
var ErrMalformedRecord = errors.New("malformed record")

// RecordError locates a malformed record within its collection.
type RecordError struct {
	// Collection names the record kind, e.g. "employees".
	Collection string

	// Index is the zero-based position within the collection.
	Index int

	// Field is the missing or invalid field.
	Field string
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("%s[%d]: missing %s", e.Collection, e.Index, e.Field)
}

// Unwrap lets errors.Is match ErrMalformedRecord.
func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}

// Validate checks every record for its key fields and returns all problems
// joined together, or nil.
func (d *Dataset) Validate() error {
	var errs []error
	add := func(collection string, i int, field string) {
		errs = append(errs, &RecordError{Collection: collection, Index: i, Field: field})
	}

	for i, u := range d.Units {
		if u.UnitName == "" {
			add("units", i, "UnitName")
		}
		if u.UnitType == "" {
			add("units", i, "UnitType")
		}
	}
	for i, e := range d.Employees {
		if e.EmployeeID == 0 {
			add("employees", i, "EmployeeID")
		}
	}
	for i, p := range d.Projects {
		if p.ProjectID == 0 {
			add("projects", i, "ProjectID")
		}
	}
	for i, s := range d.Skills {
		if s.SkillID == 0 {
			add("skills", i, "SkillID")
		}
	}
	for i, m := range d.EmployeeSkills {
		if m.EmployeeID == 0 {
			add("employee_skills", i, "EmployeeID")
		}
		if m.SkillID == 0 {
			add("employee_skills", i, "SkillID")
		}
	}
	for i, m := range d.ProjectSkills {
		if m.ProjectID == 0 {
			add("project_skills", i, "ProjectID")
		}
		if m.SkillID == 0 {
			add("project_skills", i, "SkillID")
		}
	}
	for i, a := range d.Assignments {
		if a.EmployeeID == 0 {
			add("assignments", i, "EmployeeID")
		}
		if a.ProjectID == 0 {
			add("assignments", i, "ProjectID")
		}
	}

	return errors.Join(errs...)
}
