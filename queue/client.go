package queue

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client defines the interface for interacting with the Redis job queue.
type Client interface {
	// Push adds a job to the end of a queue (LPUSH).
	Push(ctx context.Context, queue string, job SeedJob) error

	// Pop removes and returns the oldest job (BRPOP). It blocks for at most
	// the client's block timeout and returns (nil, nil) when nothing arrived.
	Pop(ctx context.Context, queue string) (*SeedJob, error)

	// Len returns the number of pending jobs.
	Len(ctx context.Context, queue string) (int64, error)

	// Publish sends an outcome to its job's result channel.
	Publish(ctx context.Context, outcome Outcome) error

	// Subscribe returns a channel receiving outcomes for jobID until ctx is
	// cancelled.
	Subscribe(ctx context.Context, jobID string) (<-chan Outcome, error)

	// RegisterWorker records worker metadata and adds it to the worker set.
	RegisterWorker(ctx context.Context, meta WorkerMeta) error

	// DeregisterWorker removes a worker and its keys.
	DeregisterWorker(ctx context.Context, workerID string) error

	// ListWorkers returns registered workers whose heartbeat is current.
	ListWorkers(ctx context.Context) ([]WorkerMeta, error)

	// Heartbeat refreshes a worker's health key.
	Heartbeat(ctx context.Context, workerID string) error

	// Close closes the Redis connection.
	Close() error
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration

	// BlockTimeout bounds each blocking Pop so callers regain control to
	// check for shutdown. Default: 2s
	BlockTimeout time.Duration

	// HealthTTL is how long a heartbeat keeps a worker listed. Default: 30s
	HealthTTL time.Duration
}

// RedisClient implements the Client interface using go-redis/v9.
type RedisClient struct {
	client       *redis.Client
	blockTimeout time.Duration
	healthTTL    time.Duration
}

// NewRedisClient creates a new Redis queue client with the given options.
func NewRedisClient(opts RedisOptions) (*RedisClient, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.BlockTimeout <= 0 {
		opts.BlockTimeout = 2 * time.Second
	}
	if opts.HealthTTL <= 0 {
		opts.HealthTTL = 30 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client:       client,
		blockTimeout: opts.BlockTimeout,
		healthTTL:    opts.HealthTTL,
	}, nil
}

// Push adds a job to the end of a queue.
func (c *RedisClient) Push(ctx context.Context, queue string, job SeedJob) error {
	if err := job.IsValid(); err != nil {
		return fmt.Errorf("invalid seed job: %w", err)
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal seed job: %w", err)
	}

	if err := c.client.LPush(ctx, queue, data).Err(); err != nil {
		return fmt.Errorf("failed to push to queue %s: %w", queue, err)
	}
	return nil
}

// Pop removes and returns the oldest job from a queue.
func (c *RedisClient) Pop(ctx context.Context, queue string) (*SeedJob, error) {
	// BRPOP returns [queue_name, value], or redis.Nil on timeout
	result, err := c.client.BRPop(ctx, c.blockTimeout, queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop from queue %s: %w", queue, err)
	}

	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP result length: %d", len(result))
	}

	var job SeedJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed job: %w", err)
	}
	return &job, nil
}

// Len returns the number of pending jobs.
func (c *RedisClient) Len(ctx context.Context, queue string) (int64, error) {
	n, err := c.client.LLen(ctx, queue).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get length of queue %s: %w", queue, err)
	}
	return n, nil
}

// Publish sends an outcome to its job's result channel.
func (c *RedisClient) Publish(ctx context.Context, outcome Outcome) error {
	if outcome.JobID == "" {
		return fmt.Errorf("outcome job_id is required")
	}

	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	channel := ResultChannel(outcome.JobID)
	if err := c.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", channel, err)
	}
	return nil
}

// Subscribe creates a subscription to a job's result channel.
func (c *RedisClient) Subscribe(ctx context.Context, jobID string) (<-chan Outcome, error) {
	channel := ResultChannel(jobID)
	pubsub := c.client.Subscribe(ctx, channel)

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	outcomes := make(chan Outcome)

	go func() {
		defer close(outcomes)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var outcome Outcome
				if err := json.Unmarshal([]byte(msg.Payload), &outcome); err != nil {
					// Skip malformed payloads
					continue
				}

				select {
				case outcomes <- outcome:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return outcomes, nil
}

// RegisterWorker writes worker metadata and adds the worker to the set.
func (c *RedisClient) RegisterWorker(ctx context.Context, meta WorkerMeta) error {
	if meta.ID == "" {
		return fmt.Errorf("worker id is required")
	}

	// All values must be strings for HSET
	fields := []interface{}{
		"id", meta.ID,
		"hostname", meta.Hostname,
		"queue", meta.Queue,
		"started_at", strconv.FormatInt(meta.StartedAt, 10),
	}
	if err := c.client.HSet(ctx, workerKey(meta.ID, "meta"), fields...).Err(); err != nil {
		return fmt.Errorf("failed to set worker metadata: %w", err)
	}

	if err := c.client.SAdd(ctx, workersKey, meta.ID).Err(); err != nil {
		return fmt.Errorf("failed to add worker to set: %w", err)
	}

	return c.Heartbeat(ctx, meta.ID)
}

// DeregisterWorker removes a worker from the set and deletes its keys.
func (c *RedisClient) DeregisterWorker(ctx context.Context, workerID string) error {
	if err := c.client.SRem(ctx, workersKey, workerID).Err(); err != nil {
		return fmt.Errorf("failed to remove worker %s: %w", workerID, err)
	}
	if err := c.client.Del(ctx, workerKey(workerID, "meta"), workerKey(workerID, "health")).Err(); err != nil {
		return fmt.Errorf("failed to delete keys of worker %s: %w", workerID, err)
	}
	return nil
}

// ListWorkers returns registered workers with a live heartbeat.
func (c *RedisClient) ListWorkers(ctx context.Context) ([]WorkerMeta, error) {
	ids, err := c.client.SMembers(ctx, workersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get workers: %w", err)
	}

	workers := make([]WorkerMeta, 0, len(ids))
	for _, id := range ids {
		alive, err := c.client.Exists(ctx, workerKey(id, "health")).Result()
		if err != nil || alive == 0 {
			// Crashed workers linger in the set until their next start
			continue
		}

		fields, err := c.client.HGetAll(ctx, workerKey(id, "meta")).Result()
		if err != nil || len(fields) == 0 {
			continue
		}

		meta := WorkerMeta{
			ID:       fields["id"],
			Hostname: fields["hostname"],
			Queue:    fields["queue"],
		}
		if startedAt, err := strconv.ParseInt(fields["started_at"], 10, 64); err == nil {
			meta.StartedAt = startedAt
		}
		workers = append(workers, meta)
	}
	return workers, nil
}

// Heartbeat refreshes the worker's health key.
func (c *RedisClient) Heartbeat(ctx context.Context, workerID string) error {
	if err := c.client.Set(ctx, workerKey(workerID, "health"), "ok", c.healthTTL).Err(); err != nil {
		return fmt.Errorf("failed to set heartbeat for worker %s: %w", workerID, err)
	}
	return nil
}

// Ping checks that Redis answers.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisClient) Close() error {
	return c.client.Close()
}

const workersKey = "orggraph:workers"

func workerKey(workerID, suffix string) string {
	return formatKeyName("orggraph", "worker", workerID, suffix)
}

// formatKeyName joins key parts with ':'.
func formatKeyName(parts ...string) string {
	return strings.Join(parts, ":")
}
