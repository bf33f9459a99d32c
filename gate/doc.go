// Package gate applies a plan to a graph store under the seeding contract:
//
//  1. The store must be empty. A non-empty store rejects the run with
//     ErrDatabaseNotEmpty before anything is compiled or applied.
//  2. Operations are applied one at a time, in order, with no surrounding
//     transaction. The first failure aborts the run; everything applied
//     before it stays applied.
//  3. The source artifact (the uploaded workbook) is removed when the run
//     ends, whatever the outcome.
//
// Every run returns a Report, including failed ones, so callers can see how
// far a run got:
//
//	g, err := gate.New(store, gate.WithLogger(logger))
//	report, err := g.Run(ctx, path, func(ctx context.Context) ([]graph.Operation, error) {
//	    ds, err := workbook.Load(path)
//	    ...
//	})
//	var execErr *gate.ExecutionError
//	if errors.As(err, &execErr) {
//	    log.Printf("operation %d failed after %d applied", execErr.Index, report.Applied)
//	}
//
// # Link Omission
//
// A link whose endpoint matches nothing is not an error. The report counts
// links attempted and relationships actually created, and LinksOmitted is
// the difference.
package gate
