// Package orggraph compiles tabular organizational records into a property
// graph.
//
// Input arrives as a workbook of seven sheets (units, employees, projects,
// skills and the mappings between them). The records are validated, planned
// into an ordered list of idempotent graph operations and applied to a
// graph store that must start out empty.
//
// # Architecture
//
//   - records: typed input rows and their validation
//   - workbook: reads the sheets into a records.Dataset
//   - planner: turns a dataset into a staged, ordered plan
//   - graph: the operation model and natural-key registry
//   - graph/cypher: renders operations as parameterized Cypher
//   - gate: the emptiness check, sequential apply and artifact disposal
//   - store/neo4j, store/memory: gate.Store implementations
//   - queue, worker: Redis-backed asynchronous seeding
//
// # Getting Started
//
//	store, err := neo4j.Open(ctx, neo4j.Config{URI: "neo4j://localhost:7687", Username: "neo4j", Password: pw})
//	if err != nil {
//		return err
//	}
//	defer store.Close(ctx)
//
//	seeder, err := orggraph.NewSeeder(store, orggraph.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	report, err := seeder.SeedFile(ctx, "org.xlsx")
//	if errors.Is(err, gate.ErrDatabaseNotEmpty) {
//		// nothing was written
//	}
//
// # Error Handling
//
// Seeder methods return *Error values whose Kind tells the caller whether
// the input was bad (KindValidation), the run was refused (KindPrecondition)
// or the store failed mid-run (KindExecution). The package sentinels stay
// reachable through errors.Is.
package orggraph
