package planner

import (
	"strings"

	"github.com/zero-day-ai/orggraph/graph"
)

// ResolveLabel maps a raw UnitType to its type-specific label, matching
// case-insensitively. Unknown types resolve to "".
func ResolveLabel(unitType string) string {
	switch strings.ToLower(unitType) {
	case "businessunit":
		return graph.LabelBusinessUnit
	case "department":
		return graph.LabelDepartment
	case "project":
		return graph.LabelProject
	default:
		return ""
	}
}

// UnitLabels returns the labels of a unit node: the base Unit label plus the
// resolved type label, if any.
func UnitLabels(unitType string) []string {
	if l := ResolveLabel(unitType); l != "" {
		return []string{graph.LabelUnit, l}
	}
	return []string{graph.LabelUnit}
}
