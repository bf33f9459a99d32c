// Package health provides the dependency checks behind `orggraph health`.
//
// Seeding needs three things: a reachable graph database that is still
// empty, a reachable job queue, and a writable upload directory. Each check
// returns a Result, and Combine folds several results into one.
//
// # Usage Example
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	overall := health.Combine(
//	    health.StoreCheck(ctx, "neo4j", store),
//	    health.PingCheck(ctx, "redis", client.Ping),
//	    health.DirWritableCheck("./uploads"),
//	)
//	if overall.IsUnhealthy() {
//	    log.Printf("Health check failed: %s", overall.Message)
//	}
//
// # Health Status Priority
//
// When combining health checks with Combine(), the result follows this priority:
//
//   - Unhealthy: If any check is unhealthy, the combined result is unhealthy
//   - Degraded: If any check is degraded (and none unhealthy), the result is degraded
//   - Healthy: If all checks are healthy, the result is healthy
//
// A graph that already holds nodes is degraded rather than unhealthy: the
// database works, but every seeding run will be rejected.
package health
