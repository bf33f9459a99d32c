package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/orggraph"
	"github.com/zero-day-ai/orggraph/queue"
)

type enqueueOptions struct {
	Wait    bool
	Timeout time.Duration
	Strict  bool
	JSON    bool
}

func newEnqueueCmd(a *app) *cobra.Command {
	var opts enqueueOptions

	cmd := &cobra.Command{
		Use:   "enqueue <file.xlsx>",
		Short: "Copy a workbook to the upload directory and queue it for a worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newQueueClient(a)
			if err != nil {
				return err
			}
			defer orggraph.CloseWithLog(client, a.logger, "redis client")

			job := queue.NewSeedJob("")
			job.Strict = opts.Strict
			job.Path, err = stageUpload(args[0], a.cfg.Worker.GetUploadDir(), job.JobID)
			if err != nil {
				return withCode(exitUsage, err)
			}

			var outcomes <-chan queue.Outcome
			waitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
			if opts.Wait {
				// Subscribe first: an outcome published before the
				// subscription exists is lost.
				outcomes, err = client.Subscribe(waitCtx, job.JobID)
				if err != nil {
					return withCode(exitExecution, err)
				}
			}

			queueName := a.cfg.Redis.GetQueue()
			if err := client.Push(ctx, queueName, job); err != nil {
				_ = os.Remove(job.Path)
				return withCode(exitExecution, err)
			}
			a.logger.Info("seed job queued", "job_id", job.JobID, "path", job.Path, "queue", queueName)

			out := cmd.OutOrStdout()
			if !opts.Wait {
				fmt.Fprintln(out, job.JobID)
				return nil
			}

			select {
			case outcome, ok := <-outcomes:
				if !ok {
					return withCode(exitExecution, fmt.Errorf("timed out waiting for job %s", job.JobID))
				}
				return reportOutcome(out, outcome, opts.JSON)
			case <-waitCtx.Done():
				return withCode(exitExecution, fmt.Errorf("timed out waiting for job %s", job.JobID))
			}
		},
	}

	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "wait for a worker to report the outcome")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 10*time.Minute, "how long --wait waits")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when an expected sheet is missing")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the outcome as JSON")
	return cmd
}

func newQueueClient(a *app) (*queue.RedisClient, error) {
	client, err := queue.NewRedisClient(queue.RedisOptions{
		URL:          a.cfg.Redis.GetURL(),
		BlockTimeout: a.cfg.Worker.GetBlockTimeout(),
	})
	if err != nil {
		return nil, withCode(exitExecution, err)
	}
	return client, nil
}

// stageUpload copies src into dir under a name derived from jobID and
// returns the absolute path of the copy.
func stageUpload(src, dir, jobID string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	dst, err := filepath.Abs(filepath.Join(dir, jobID+filepath.Ext(src)))
	if err != nil {
		return "", err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to copy workbook: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to copy workbook: %w", err)
	}
	return dst, nil
}

func reportOutcome(w io.Writer, o queue.Outcome, asJSON bool) error {
	if asJSON {
		if err := writeJSON(w, o); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "job:              %s\n", o.JobID)
		fmt.Fprintf(w, "status:           %s\n", o.Status)
		fmt.Fprintf(w, "worker:           %s\n", o.WorkerID)
		fmt.Fprintf(w, "applied:          %d/%d\n", o.Applied, o.Planned)
		fmt.Fprintf(w, "links created:    %d/%d\n", o.LinksCreated, o.LinksAttempted)
		fmt.Fprintf(w, "artifact removed: %t\n", o.ArtifactRemoved)
		fmt.Fprintf(w, "duration:         %s\n", o.Duration())
	}

	switch o.Status {
	case queue.StatusSucceeded:
		return nil
	case queue.StatusRejected:
		return withCode(exitPrecondition, errors.New(o.Error))
	default:
		return withCode(exitExecution, errors.New(o.Error))
	}
}
