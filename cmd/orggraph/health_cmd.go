package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/orggraph"
	"github.com/zero-day-ai/orggraph/health"
)

func newHealthCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check Neo4j, Redis and the upload directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			checks := map[string]health.Result{
				"upload_dir": health.DirWritableCheck(a.cfg.Worker.GetUploadDir()),
			}

			if store, err := openStore(ctx, a); err != nil {
				checks["neo4j"] = health.NewUnhealthy("neo4j: unreachable", map[string]any{"error": err.Error()})
			} else {
				checks["neo4j"] = health.StoreCheck(ctx, "neo4j", store)
				if err := store.Close(context.WithoutCancel(ctx)); err != nil {
					a.logger.Warn("failed to close neo4j store", "error", err)
				}
			}

			if client, err := newQueueClient(a); err != nil {
				checks["redis"] = health.NewUnhealthy("redis: unreachable", map[string]any{"error": err.Error()})
			} else {
				checks["redis"] = health.PingCheck(ctx, "redis", client.Ping)
				orggraph.CloseWithLog(client, a.logger, "redis client")
			}

			names := []string{"neo4j", "redis", "upload_dir"}
			results := make([]health.Result, 0, len(names))
			for _, n := range names {
				results = append(results, checks[n])
			}
			overall := health.Combine(results...)

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, map[string]any{"overall": overall, "checks": checks}); err != nil {
					return err
				}
			} else {
				for _, n := range names {
					fmt.Fprintf(out, "%-10s %-9s %s\n", n, checks[n].Status, checks[n].Message)
				}
				fmt.Fprintf(out, "%-10s %-9s %s\n", "overall", overall.Status, overall.Message)
			}

			if overall.IsUnhealthy() {
				return withCode(exitExecution, errors.New(overall.Message))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall time limit for the checks")
	return cmd
}
