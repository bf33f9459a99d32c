// Package planner compiles organizational records into an ordered list of
// graph operations.
//
// The planner is a pure transformation: it performs no I/O and holds no
// resources. Each record kind is handled by its own stage, and the stages are
// concatenated in a fixed dependency order (see Stage) so that every link
// operation follows the operations that produce its endpoints:
//
//	units → unit hierarchy → employees → roles → employee links →
//	projects → project links → skills → skill links → assignments
//
// # Idempotency
//
// Units, employees, roles, skills and projects are merged on their natural
// keys, and links are merged between matched endpoints, so applying the same
// plan twice leaves those counts unchanged. Assignments are created
// unconditionally: every mapping row is a distinct engagement, and applying
// a plan twice doubles the Assignment nodes.
//
// # Determinism
//
// Generated ids and timestamps come from an injected id.Generator and
// id.Clock:
//
//	p := planner.New(
//	    planner.WithIDGenerator(id.NewSequence("id")),
//	    planner.WithClock(id.FixedClock{T: fixed}),
//	)
//	plan, err := p.Plan(ds)
//
// # Dangling References
//
// The planner never checks that a link's endpoints exist. A manager id that
// names no employee still yields a well-formed link operation; the store
// simply creates no relationship for it.
package planner
