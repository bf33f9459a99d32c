// Package records defines the typed organizational records the planner
// consumes: units, employees, projects, skills, the two skill link tables and
// the employee-to-project assignment mappings.
//
// Records arrive already typed (see package workbook for the spreadsheet
// loader). Optional fields are pointers; a nil pointer means the cell was
// absent. Integer identifiers use 0 to mean "not provided", which is
// malformed for key fields:
//
//	ds := &records.Dataset{
//	    Units:     []records.Unit{{UnitName: "Eng", UnitType: "Department"}},
//	    Employees: []records.Employee{{EmployeeID: 1, Department: "Eng", JobTitle: "Engineer"}},
//	}
//	if err := ds.Validate(); err != nil {
//	    // errors.Is(err, records.ErrMalformedRecord)
//	}
//
// Validation only checks that each record carries its own key fields. It
// never checks that referenced records exist: a manager ID pointing at no
// employee is legal input.
package records
