package worker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/zero-day-ai/orggraph/gate"
	"github.com/zero-day-ai/orggraph/queue"
)

// Processor seeds the graph for one job.
type Processor interface {
	Process(ctx context.Context, job queue.SeedJob) (*gate.Report, error)
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, job queue.SeedJob) (*gate.Report, error)

// Process calls f(ctx, job).
func (f ProcessorFunc) Process(ctx context.Context, job queue.SeedJob) (*gate.Report, error) {
	return f(ctx, job)
}

// Options configures the worker behavior.
type Options struct {
	// Queue is the list jobs are popped from. Default: queue.DefaultQueue
	Queue string

	// WorkerID identifies this worker in the registry. If empty, one is
	// generated from the hostname, PID and a random suffix.
	WorkerID string

	// HeartbeatInterval is the time between health heartbeats. Default: 10s
	HeartbeatInterval time.Duration

	// ShutdownTimeout is how long an in-flight job may keep running after
	// shutdown starts. Default: 30s
	ShutdownTimeout time.Duration

	// Logger is the structured logger for worker operations.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Queue == "" {
		o.Queue = queue.DefaultQueue
	}
	if o.WorkerID == "" {
		o.WorkerID = generateWorkerID()
	}
	if o.HeartbeatInterval <= 0 {
		o.HeartbeatInterval = 10 * time.Second
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = 30 * time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Run registers the worker, then pops and processes jobs until ctx is
// cancelled. Each job's outcome is published whatever its status.
//
// Run returns nil after a clean shutdown, or an error if the worker could
// not register.
func Run(ctx context.Context, client queue.Client, p Processor, opts Options) error {
	if client == nil {
		return errors.New("worker: queue client is required")
	}
	if p == nil {
		return errors.New("worker: processor is required")
	}
	opts = opts.withDefaults()

	logger := opts.Logger.With(
		"component", "worker",
		"worker_id", opts.WorkerID,
	)

	hostname, _ := os.Hostname()
	meta := queue.WorkerMeta{
		ID:        opts.WorkerID,
		Hostname:  hostname,
		Queue:     opts.Queue,
		StartedAt: time.Now().UnixMilli(),
	}
	if err := client.RegisterWorker(ctx, meta); err != nil {
		logger.Error("failed to register worker", "error", err)
		return fmt.Errorf("failed to register worker: %w", err)
	}

	// Use a fresh context for cleanup since ctx is cancelled by then
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.DeregisterWorker(cleanupCtx, opts.WorkerID); err != nil {
			logger.Error("failed to deregister worker", "error", err)
		}
	}()

	heartbeatCtx, stopHeartbeat := context.WithCancel(ctx)
	defer stopHeartbeat()
	go runHeartbeat(heartbeatCtx, client, opts.WorkerID, opts.HeartbeatInterval, logger)

	logger.Info("worker started", "queue", opts.Queue)
	loop(ctx, client, p, opts, logger)
	logger.Info("worker shutdown complete")
	return nil
}

// runHeartbeat refreshes the worker's health key until ctx is cancelled.
func runHeartbeat(ctx context.Context, client queue.Client, workerID string, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Heartbeat(ctx, workerID); err != nil {
				// Transient; the next tick retries
				logger.Debug("heartbeat failed", "error", err)
			}
		}
	}
}

func loop(ctx context.Context, client queue.Client, p Processor, opts Options, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := client.Pop(ctx, opts.Queue)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("failed to pop seed job", "error", err)
			// Back off so a dead connection does not spin
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		if job == nil {
			continue
		}

		if err := job.IsValid(); err != nil {
			logger.Error("discarding invalid seed job", "job_id", job.JobID, "error", err)
			outcome := reject(*job, err, opts, logger)
			if job.JobID != "" {
				publish(ctx, client, outcome, logger)
			}
			continue
		}

		publish(ctx, client, process(ctx, p, *job, opts, logger), logger)
	}
}

// publish sends an outcome even during shutdown, since the job it reports
// on has already finished.
func publish(ctx context.Context, client queue.Client, outcome queue.Outcome, logger *slog.Logger) {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := client.Publish(publishCtx, outcome); err != nil {
		logger.Error("failed to publish outcome", "job_id", outcome.JobID, "error", err)
	}
}

// reject builds the failed outcome for a job that cannot be processed and
// removes its uploaded workbook, if any.
func reject(job queue.SeedJob, cause error, opts Options, logger *slog.Logger) queue.Outcome {
	now := time.Now().UnixMilli()
	outcome := queue.Outcome{
		JobID:       job.JobID,
		Status:      queue.StatusFailed,
		FailedIndex: -1,
		Error:       fmt.Sprintf("invalid seed job: %v", cause),
		WorkerID:    opts.WorkerID,
		StartedAt:   now,
		CompletedAt: now,
	}
	if job.Path == "" {
		return outcome
	}
	err := os.Remove(job.Path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		outcome.ArtifactRemoved = true
	} else {
		logger.Warn("failed to remove source artifact", "job_id", job.JobID, "path", job.Path, "error", err)
	}
	return outcome
}

// process runs one job. The job's context outlives ctx by at most
// ShutdownTimeout.
func process(ctx context.Context, p Processor, job queue.SeedJob, opts Options, logger *slog.Logger) queue.Outcome {
	logger = logger.With("job_id", job.JobID)
	logger.Info("received seed job", "path", job.Path, "age", job.Age())

	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	stop := context.AfterFunc(ctx, func() {
		time.AfterFunc(opts.ShutdownTimeout, cancel)
	})
	defer stop()

	outcome := queue.Outcome{
		JobID:       job.JobID,
		FailedIndex: -1,
		WorkerID:    opts.WorkerID,
		StartedAt:   time.Now().UnixMilli(),
	}

	report, err := p.Process(jobCtx, job)
	outcome.CompletedAt = time.Now().UnixMilli()
	if report != nil {
		outcome.Planned = report.Planned
		outcome.Applied = report.Applied
		outcome.LinksAttempted = report.LinksAttempted
		outcome.LinksCreated = report.LinksCreated
		outcome.ArtifactRemoved = report.ArtifactRemoved
	}

	var execErr *gate.ExecutionError
	switch {
	case err == nil:
		outcome.Status = queue.StatusSucceeded
		logger.Info("seed job completed",
			"applied", outcome.Applied,
			"links_created", outcome.LinksCreated,
			"duration_ms", outcome.CompletedAt-outcome.StartedAt,
		)
		return outcome
	case errors.Is(err, gate.ErrDatabaseNotEmpty):
		outcome.Status = queue.StatusRejected
	default:
		outcome.Status = queue.StatusFailed
		if errors.As(err, &execErr) {
			outcome.FailedIndex = execErr.Index
		}
	}
	outcome.Error = err.Error()
	logger.Error("seed job failed", "status", outcome.Status, "error", err)
	return outcome
}

// generateWorkerID creates a unique identifier for this worker instance.
// Uses hostname + PID + UUID for uniqueness.
func generateWorkerID() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s-%d-%s", hostname, os.Getpid(), uuid.New().String()[:8])
}
