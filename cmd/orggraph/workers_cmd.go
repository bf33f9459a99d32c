package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/orggraph"
)

func newWorkersCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "workers",
		Short: "List live seeding workers and the queue depth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, err := newQueueClient(a)
			if err != nil {
				return err
			}
			defer orggraph.CloseWithLog(client, a.logger, "redis client")

			workers, err := client.ListWorkers(ctx)
			if err != nil {
				return withCode(exitExecution, err)
			}
			pending, err := client.Len(ctx, a.cfg.Redis.GetQueue())
			if err != nil {
				return withCode(exitExecution, err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, map[string]any{"workers": workers, "pending": pending})
			}
			fmt.Fprintf(out, "pending jobs: %d\n", pending)
			for _, w := range workers {
				started := time.UnixMilli(w.StartedAt).UTC().Format(time.RFC3339)
				fmt.Fprintf(out, "%s\t%s\t%s\tstarted %s\n", w.ID, w.Hostname, w.Queue, started)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
