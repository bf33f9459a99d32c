// Package workbook loads organizational records from an .xlsx workbook.
//
// Each record kind lives on its own sheet, found by name. The first row of
// every sheet is a header and is skipped; columns are positional:
//
//	Employee Table               EmployeeID, EmployeeName, BusinessUnit, Department,
//	                             TalentManager, FunctionalManager, JobTitle,
//	                             YearOfJoining, YearOfBirth
//	Project Table                ProjectID, ProjectName, ProjectManagerID,
//	                             ProductManagerID, TechnicalLeadID, StartDate, EndDate
//	Units                        UnitName, ParentUnitName, UnitType
//	Employee To Project Mapping  EmployeeID, ProjectID, ReportingToEmployeeID,
//	                             ProjectSpecificRole, TimeAlloted, StartDate, EndDate
//	Skills                       SkillID, SkillName
//	Employee To Skill Mapping    EmployeeID, SkillID
//	Skills to Project Mapping    ProjectID, SkillID
//
// A missing sheet yields an empty collection unless WithStrict is given.
// Blank rows are skipped. Dates may be Excel serial numbers or text in
// ISO 8601 or US (01/02/2006) form.
package workbook
