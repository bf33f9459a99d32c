// Package cypher renders graph operations as parameterized Cypher statements.
//
// Values never appear in statement text: every property value becomes a
// positional parameter ($p0, $p1, ...) in the returned Statement's Params.
// Labels, relationship types and property names cannot be parameterized in
// Cypher, so they are checked against a strict identifier pattern and
// rejected with ErrUnsafeIdentifier otherwise.
//
// A merge renders as:
//
//	MERGE (n:Unit:Department {name: $p0, UnitType: $p1})
//	ON CREATE SET n._id = $p2, n._created_at = $p3
//	ON MATCH SET n._last_modified = $p4
//
// A link renders as a pair of MATCH clauses followed by a relationship MERGE
// whose properties are written only on creation, so applying the same link
// twice does not duplicate the relationship:
//
//	MATCH (a:Employee {EmployeeID: $p0})
//	MATCH (b:Role {RoleType: $p1})
//	MERGE (a)-[r:HAS_ROLE]->(b)
//	ON CREATE SET r._id = $p2
package cypher
