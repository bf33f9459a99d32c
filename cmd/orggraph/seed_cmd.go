package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/zero-day-ai/orggraph"
	"github.com/zero-day-ai/orggraph/config"
	"github.com/zero-day-ai/orggraph/store/neo4j"
)

type seedOptions struct {
	JSON   bool
	Strict bool
}

func newSeedCmd(a *app) *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:   "seed <file.xlsx>",
		Short: "Seed an empty Neo4j database from a workbook; the workbook is deleted afterwards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx, a)
			if err != nil {
				discardArtifact(a, args[0])
				return err
			}
			defer func() {
				if err := store.Close(context.WithoutCancel(ctx)); err != nil {
					a.logger.Warn("failed to close neo4j store", "error", err)
				}
			}()

			seeder, err := newSeeder(a, store, opts.Strict)
			if err != nil {
				discardArtifact(a, args[0])
				return err
			}

			report, seedErr := seeder.SeedFile(ctx, args[0])
			out := cmd.OutOrStdout()
			if opts.JSON {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else {
				printReport(out, report)
			}
			return seedErr
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the run report as JSON")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when an expected sheet is missing")
	return cmd
}

func openStore(ctx context.Context, a *app) (*neo4j.Store, error) {
	store, err := neo4j.Open(ctx, neo4jConfig(a.cfg.Neo4j), neo4j.WithLogger(a.logger))
	if err != nil {
		return nil, withCode(exitExecution, err)
	}
	return store, nil
}

func neo4jConfig(c *config.Neo4jConfig) neo4j.Config {
	return neo4j.Config{
		URI:      c.GetURI(),
		Username: c.GetUsername(),
		Password: c.GetPassword(),
		Database: c.GetDatabase(),
	}
}

// newSeeder wires the global OpenTelemetry providers, which stay no-ops
// unless the process installs real ones.
func newSeeder(a *app, store *neo4j.Store, strict bool) (*orggraph.Seeder, error) {
	return orggraph.NewSeeder(store,
		orggraph.WithLogger(a.logger),
		orggraph.WithTracer(otel.Tracer("github.com/zero-day-ai/orggraph")),
		orggraph.WithMeter(otel.Meter("github.com/zero-day-ai/orggraph")),
		orggraph.WithStrictWorkbook(strict || a.cfg.Workbook.IsStrict()),
	)
}

// discardArtifact removes a workbook that never reached the gate. An
// already missing file counts as removed.
func discardArtifact(a *app, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		a.logger.Warn("failed to remove source artifact", "path", path, "error", err)
	}
}
