// Package worker runs the seeding loop that consumes jobs from the Redis
// queue.
//
// # Architecture
//
// Seeding is split into a producer and a consumer:
//   - The CLI or an upload handler (producer) copies a workbook to shared
//     storage and pushes a queue.SeedJob
//   - A worker (consumer) pops the job, hands it to a Processor and
//     publishes a queue.Outcome on the job's result channel
//
// Jobs are processed one at a time. The seeding gate refuses to write into
// a non-empty graph, so a second concurrent job against the same database
// could only ever be rejected.
//
// # Usage
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
//	defer stop()
//
//	err := worker.Run(ctx, client, seeder, worker.Options{
//	    Queue:           queue.DefaultQueue,
//	    ShutdownTimeout: 30 * time.Second,
//	})
//
// # Graceful Shutdown
//
// When ctx is cancelled the worker stops popping. A job already in progress
// keeps running for up to ShutdownTimeout before its context is cancelled
// too; its outcome is still published. The worker then deregisters itself.
package worker
