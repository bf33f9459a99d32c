// Package memory provides an in-memory property-graph store that applies
// graph operations with the same match semantics as a Cypher database:
//
//   - merge matches every node carrying all of the op's labels and key
//     values, creating one when nothing matches
//   - create always adds a node
//   - link matches both endpoints, then merges one relationship of the given
//     type per matched pair; an endpoint matching nothing yields no
//     relationship and no error
//
// It backs the planner and gate tests and the CLI's dry-run mode. It is safe
// for concurrent use.
package memory
