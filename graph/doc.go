// Package graph defines the structured graph-mutation operations produced by
// the organizational record compiler.
//
// An Operation is a self-contained unit of work against a property-graph
// store: either a node upsert (MERGE by natural key), an unconditional node
// creation (CREATE), or a link between two nodes located by natural-key
// lookup. Operations carry no query text. Renderers such as the cypher
// subpackage turn them into a concrete query language, and stores apply them.
//
// # Building Operations
//
// Node and link operations use the same chaining style:
//
//	unit := graph.NewMerge(graph.LabelUnit, graph.LabelDepartment).
//		WithKey("name", "Engineering").
//		WithKey("UnitType", "Department").
//		OnCreateSet(graph.PropStatus, graph.StatusActive).
//		OnMatchSet(graph.PropLastModified, now)
//
//	link := graph.NewLink(graph.RelBelongsToUnit,
//		graph.NewEndpoint(graph.LabelEmployee).WithKey("EmployeeID", int64(7)),
//		graph.NewEndpoint(graph.LabelDepartment).WithKey("name", "Engineering"),
//	)
//
// Both convert to an Operation with Operation().
//
// # Link Semantics
//
// Links never reference internal store identifiers. When an endpoint lookup
// matches no node the store creates no relationship and reports no error; a
// Summary with RelationshipsCreated == 0 is how callers observe the omission.
//
// # Key Registry
//
// KeyRegistry records which properties form the natural key of each node
// label. It is used to reject upserts whose match pattern does not carry the
// full identifying key before anything is sent to a store.
package graph
