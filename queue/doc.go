// Package queue provides the Redis-backed job queue that feeds seeding
// workers.
//
// Uploaded workbooks are not seeded inline. A producer pushes a SeedJob
// naming the workbook path, a worker pops it, runs the seeding gate and
// publishes an Outcome on the job's result channel.
//
// # Redis Key Schema
//
//   - orggraph:seed:queue - List of pending jobs (LPUSH/BRPOP)
//   - orggraph:results:<jobID> - Pub/Sub channel carrying the job's Outcome
//   - orggraph:workers - Set of registered worker ids
//   - orggraph:worker:<id>:meta - Hash of worker metadata
//   - orggraph:worker:<id>:health - String with a TTL, refreshed by heartbeats
//
// # Usage
//
// Submitting a job and waiting for its outcome:
//
//	client, err := queue.NewRedisClient(queue.RedisOptions{URL: "redis://localhost:6379"})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	job := queue.NewSeedJob("/var/uploads/org.xlsx")
//	outcomes, err := client.Subscribe(ctx, job.JobID)
//	if err != nil {
//		return err
//	}
//	if err := client.Push(ctx, queue.DefaultQueue, job); err != nil {
//		return err
//	}
//	outcome := <-outcomes
//
// Subscribe before pushing: pub/sub does not buffer, so an outcome published
// before the subscription exists is lost.
package queue
