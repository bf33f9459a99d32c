package graph

// Node labels of the organizational graph.
const (
	LabelUnit         = "Unit"
	LabelBusinessUnit = "BusinessUnit"
	LabelDepartment   = "Department"
	LabelProject      = "Project"
	LabelEmployee     = "Employee"
	LabelRole         = "Role"
	LabelSkill        = "Skill"
	LabelAssignment   = "Assignment"
)

// Relationship types of the organizational graph.
const (
	// RelBelongsToUnit links an employee to a unit, or a unit to its parent.
	RelBelongsToUnit = "BELONGS_TO_UNIT"

	// RelHasRole links an employee or an assignment to a role.
	RelHasRole = "HAS_ROLE"

	RelManagedByTalent         = "MANAGED_BY_TALENT"
	RelManagedByFunctional     = "MANAGED_BY_FUNCTIONAL"
	RelManagedByProjectManager = "MANAGED_BY_PROJECT_MANAGER"

	// RelAssigned links an employee to one of their assignments.
	RelAssigned = "ASSIGNED"

	// RelAssignedToUnit links an assignment to the project it engages.
	RelAssignedToUnit = "ASSIGNED_TO_UNIT"

	// RelReportsTo links an assignment to the employee reported to.
	RelReportsTo = "REPORTS_TO"

	RelHasSkill  = "HAS_SKILL"
	RelUsesSkill = "USES_SKILL"
)

// Bookkeeping properties written on every node and relationship.
const (
	PropID           = "_id"
	PropCreatedAt    = "_created_at"
	PropLastModified = "_last_modified"
	PropIsDeleted    = "isDeleted"
	PropStatus       = "status"

	StatusActive = "active"
)
