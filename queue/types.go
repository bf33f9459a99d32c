package queue

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultQueue is the list seeding jobs are pushed to.
const DefaultQueue = "orggraph:seed:queue"

// Outcome statuses.
const (
	StatusSucceeded = "succeeded"
	StatusRejected  = "rejected"
	StatusFailed    = "failed"
)

// SeedJob asks a worker to seed the graph from one workbook.
type SeedJob struct {
	// JobID is a UUID correlating the job with its Outcome.
	JobID string `json:"job_id"`

	// Path is the workbook location on storage shared with the workers.
	// The worker removes the file when the job ends.
	Path string `json:"path"`

	// Strict rejects workbooks missing any expected sheet.
	Strict bool `json:"strict,omitempty"`

	// SubmittedAt is the Unix timestamp in milliseconds when the job was pushed.
	SubmittedAt int64 `json:"submitted_at"`
}

// NewSeedJob creates a job for path with a fresh id.
func NewSeedJob(path string) SeedJob {
	return SeedJob{
		JobID:       uuid.NewString(),
		Path:        path,
		SubmittedAt: time.Now().UnixMilli(),
	}
}

// IsValid checks that the job can be processed.
func (j *SeedJob) IsValid() error {
	if j.JobID == "" {
		return fmt.Errorf("job_id is required")
	}
	if j.Path == "" {
		return fmt.Errorf("path is required")
	}
	if j.SubmittedAt <= 0 {
		return fmt.Errorf("submitted_at must be positive, got %d", j.SubmittedAt)
	}
	return nil
}

// Age returns the time since the job was submitted.
func (j *SeedJob) Age() time.Duration {
	if j.SubmittedAt <= 0 {
		return 0
	}
	return time.Duration(time.Now().UnixMilli()-j.SubmittedAt) * time.Millisecond
}

// Outcome reports how a SeedJob ended.
type Outcome struct {
	JobID string `json:"job_id"`

	// Status is StatusSucceeded, StatusRejected (database not empty) or
	// StatusFailed.
	Status string `json:"status"`

	Planned        int `json:"planned"`
	Applied        int `json:"applied"`
	LinksAttempted int `json:"links_attempted"`
	LinksCreated   int `json:"links_created"`

	// FailedIndex is the position of the operation that aborted the run,
	// or -1.
	FailedIndex int `json:"failed_index"`

	ArtifactRemoved bool `json:"artifact_removed"`

	// Error is the failure message. Empty on success.
	Error string `json:"error,omitempty"`

	WorkerID    string `json:"worker_id"`
	StartedAt   int64  `json:"started_at"`
	CompletedAt int64  `json:"completed_at"`
}

// Succeeded reports whether the job seeded the graph.
func (o *Outcome) Succeeded() bool {
	return o.Status == StatusSucceeded
}

// Duration returns the time the worker spent on the job.
func (o *Outcome) Duration() time.Duration {
	if o.StartedAt <= 0 || o.CompletedAt <= 0 {
		return 0
	}
	return time.Duration(o.CompletedAt-o.StartedAt) * time.Millisecond
}

// ResultChannel returns the pub/sub channel for a job's outcome.
func ResultChannel(jobID string) string {
	return formatKeyName("orggraph", "results", jobID)
}

// WorkerMeta describes a running worker.
type WorkerMeta struct {
	ID        string `json:"id"`
	Hostname  string `json:"hostname"`
	Queue     string `json:"queue"`
	StartedAt int64  `json:"started_at"`
}
