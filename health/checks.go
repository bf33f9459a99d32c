package health

import (
	"context"
	"fmt"
	"os"
)

// EmptinessChecker is the part of a graph store StoreCheck needs.
type EmptinessChecker interface {
	IsEmpty(ctx context.Context) (bool, error)
}

// StoreCheck reports whether the graph store answers and is still empty.
//
// Example:
//
//	status := health.StoreCheck(ctx, "neo4j", store)
//	if status.IsDegraded() {
//	    log.Println("database already seeded")
//	}
func StoreCheck(ctx context.Context, name string, store EmptinessChecker) Result {
	if store == nil {
		return NewUnhealthy(fmt.Sprintf("%s: no store configured", name), nil)
	}

	empty, err := store.IsEmpty(ctx)
	if err != nil {
		return NewUnhealthy(
			fmt.Sprintf("%s: query failed", name),
			map[string]any{"error": err.Error()},
		)
	}
	if !empty {
		return NewDegraded(
			fmt.Sprintf("%s: database is not empty, seeding will be rejected", name),
			map[string]any{"empty": false},
		)
	}
	return NewHealthy(fmt.Sprintf("%s: reachable and empty", name))
}

// PingCheck runs ping and reports the dependency as healthy if it succeeds.
func PingCheck(ctx context.Context, name string, ping func(context.Context) error) Result {
	if ping == nil {
		return NewUnhealthy(fmt.Sprintf("%s: no ping function", name), nil)
	}
	if err := ping(ctx); err != nil {
		return NewUnhealthy(
			fmt.Sprintf("%s: unreachable", name),
			map[string]any{"error": err.Error()},
		)
	}
	return NewHealthy(fmt.Sprintf("%s: reachable", name))
}

// DirWritableCheck verifies that dir exists and accepts new files, by
// creating and removing a temporary one.
func DirWritableCheck(dir string) Result {
	if dir == "" {
		return NewUnhealthy("directory path cannot be empty", nil)
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// Enqueue creates it on first use
			return NewDegraded(
				fmt.Sprintf("directory '%s' does not exist yet", dir),
				map[string]any{"path": dir},
			)
		}
		return NewUnhealthy(
			fmt.Sprintf("failed to stat directory '%s'", dir),
			map[string]any{"path": dir, "error": err.Error()},
		)
	}
	if !info.IsDir() {
		return NewUnhealthy(
			fmt.Sprintf("'%s' is not a directory", dir),
			map[string]any{"path": dir},
		)
	}

	f, err := os.CreateTemp(dir, ".orggraph-health-*")
	if err != nil {
		return NewUnhealthy(
			fmt.Sprintf("directory '%s' is not writable", dir),
			map[string]any{"path": dir, "error": err.Error()},
		)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	return NewHealthy(fmt.Sprintf("directory '%s' is writable", dir))
}

// Combine aggregates multiple checks into a single result.
// The result follows this priority:
//   - If any check is unhealthy, the result is unhealthy
//   - If any check is degraded (and none unhealthy), the result is degraded
//   - If all checks are healthy, the result is healthy
func Combine(checks ...Result) Result {
	if len(checks) == 0 {
		return NewHealthy("no checks provided")
	}

	var unhealthy, degraded []string
	var healthyCount int

	for _, check := range checks {
		msg := check.Message
		if msg == "" {
			msg = "unnamed check"
		}
		switch check.Status {
		case StatusUnhealthy:
			unhealthy = append(unhealthy, msg)
		case StatusDegraded:
			degraded = append(degraded, msg)
		case StatusHealthy:
			healthyCount++
		}
	}

	if len(unhealthy) > 0 {
		return NewUnhealthy(
			fmt.Sprintf("%d check(s) failed", len(unhealthy)),
			map[string]any{
				"total":            len(checks),
				"unhealthy":        len(unhealthy),
				"degraded":         len(degraded),
				"healthy":          healthyCount,
				"unhealthy_checks": unhealthy,
				"degraded_checks":  degraded,
			},
		)
	}

	if len(degraded) > 0 {
		return NewDegraded(
			fmt.Sprintf("%d check(s) degraded", len(degraded)),
			map[string]any{
				"total":           len(checks),
				"degraded":        len(degraded),
				"healthy":         healthyCount,
				"degraded_checks": degraded,
			},
		)
	}

	return NewHealthy(fmt.Sprintf("all %d check(s) passed", len(checks)))
}
