package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/orggraph"
	"github.com/zero-day-ai/orggraph/worker"
)

func newWorkerCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume queued seed jobs until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			store, err := openStore(ctx, a)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(context.WithoutCancel(ctx)); err != nil {
					a.logger.Warn("failed to close neo4j store", "error", err)
				}
			}()

			seeder, err := newSeeder(a, store, strict)
			if err != nil {
				return err
			}

			client, err := newQueueClient(a)
			if err != nil {
				return err
			}
			defer orggraph.CloseWithLog(client, a.logger, "redis client")

			return worker.Run(ctx, client, seeder, worker.Options{
				Queue:             a.cfg.Redis.GetQueue(),
				HeartbeatInterval: a.cfg.Worker.GetHeartbeatInterval(),
				ShutdownTimeout:   a.cfg.Worker.GetShutdownTimeout(),
				Logger:            a.logger,
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail every job whose workbook misses an expected sheet")
	return cmd
}
