package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestClient creates a miniredis instance and returns a connected RedisClient.
func setupTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		BlockTimeout:   100 * time.Millisecond,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, mr
}

func TestNewRedisClient(t *testing.T) {
	t.Run("successful connection", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := NewRedisClient(RedisOptions{
			URL: fmt.Sprintf("redis://%s", mr.Addr()),
		})
		require.NoError(t, err)
		require.NotNil(t, client)
		defer client.Close()

		assert.Equal(t, 2*time.Second, client.blockTimeout)
		assert.Equal(t, 30*time.Second, client.healthTTL)
	})

	t.Run("connection failure", func(t *testing.T) {
		_, err := NewRedisClient(RedisOptions{
			URL:            "redis://localhost:99999",
			ConnectTimeout: 100 * time.Millisecond,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewRedisClient(RedisOptions{
			URL: "invalid://url",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse Redis URL")
	})
}

func TestPing(t *testing.T) {
	client, mr := setupTestClient(t)

	require.NoError(t, client.Ping(context.Background()))

	mr.Close()
	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping Redis")
}

func TestPushPop(t *testing.T) {
	client, mr := setupTestClient(t)
	ctx := context.Background()

	t.Run("push and pop in FIFO order", func(t *testing.T) {
		first := NewSeedJob("/uploads/a.xlsx")
		second := NewSeedJob("/uploads/b.xlsx")
		second.Strict = true

		require.NoError(t, client.Push(ctx, DefaultQueue, first))
		require.NoError(t, client.Push(ctx, DefaultQueue, second))

		n, err := client.Len(ctx, DefaultQueue)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		got, err := client.Pop(ctx, DefaultQueue)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, first, *got)

		got, err = client.Pop(ctx, DefaultQueue)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, second.JobID, got.JobID)
		assert.True(t, got.Strict)
	})

	t.Run("pop on empty queue times out", func(t *testing.T) {
		got, err := client.Pop(ctx, "orggraph:empty")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("push rejects invalid job", func(t *testing.T) {
		err := client.Push(ctx, DefaultQueue, SeedJob{JobID: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid seed job")
	})

	t.Run("pop rejects malformed payload", func(t *testing.T) {
		_, err := mr.Lpush("orggraph:broken", "{not json")
		require.NoError(t, err)

		_, err = client.Pop(ctx, "orggraph:broken")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal seed job")
	})

	t.Run("wire format", func(t *testing.T) {
		job := SeedJob{JobID: "job-1", Path: "/p.xlsx", SubmittedAt: 42}
		require.NoError(t, client.Push(ctx, "orggraph:wire", job))

		raw, err := mr.List("orggraph:wire")
		require.NoError(t, err)
		require.Len(t, raw, 1)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw[0]), &decoded))
		assert.Equal(t, "job-1", decoded["job_id"])
		assert.Equal(t, "/p.xlsx", decoded["path"])
		assert.NotContains(t, decoded, "strict")
	})
}

func TestPublishSubscribe(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	outcomes, err := client.Subscribe(ctx, "job-7")
	require.NoError(t, err)

	want := Outcome{
		JobID:           "job-7",
		Status:          StatusSucceeded,
		Planned:         12,
		Applied:         12,
		LinksAttempted:  5,
		LinksCreated:    4,
		FailedIndex:     -1,
		ArtifactRemoved: true,
		WorkerID:        "w1",
		StartedAt:       1000,
		CompletedAt:     1500,
	}
	// A different job's outcome must not be delivered.
	require.NoError(t, client.Publish(ctx, Outcome{JobID: "job-8", Status: StatusFailed}))
	require.NoError(t, client.Publish(ctx, want))

	select {
	case got := <-outcomes:
		assert.Equal(t, want, got)
	case <-ctx.Done():
		t.Fatal("timed out waiting for outcome")
	}

	t.Run("publish requires job id", func(t *testing.T) {
		err := client.Publish(ctx, Outcome{Status: StatusFailed})
		require.Error(t, err)
	})
}

func TestSubscribe_ClosesOnCancel(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())

	outcomes, err := client.Subscribe(ctx, "job-1")
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-outcomes:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWorkerRegistry(t *testing.T) {
	client, mr := setupTestClient(t)
	ctx := context.Background()

	meta := WorkerMeta{ID: "host-1-abcd", Hostname: "host", Queue: DefaultQueue, StartedAt: 1234}
	require.NoError(t, client.RegisterWorker(ctx, meta))

	assert.True(t, mr.Exists("orggraph:worker:host-1-abcd:health"))
	members, err := mr.Members(workersKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"host-1-abcd"}, members)

	workers, err := client.ListWorkers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []WorkerMeta{meta}, workers)

	t.Run("stale heartbeat hides worker", func(t *testing.T) {
		mr.FastForward(31 * time.Second)

		workers, err := client.ListWorkers(ctx)
		require.NoError(t, err)
		assert.Empty(t, workers)

		require.NoError(t, client.Heartbeat(ctx, meta.ID))
		workers, err = client.ListWorkers(ctx)
		require.NoError(t, err)
		assert.Len(t, workers, 1)
	})

	t.Run("deregister", func(t *testing.T) {
		require.NoError(t, client.DeregisterWorker(ctx, meta.ID))

		assert.False(t, mr.Exists("orggraph:worker:host-1-abcd:meta"))
		assert.False(t, mr.Exists("orggraph:worker:host-1-abcd:health"))
		workers, err := client.ListWorkers(ctx)
		require.NoError(t, err)
		assert.Empty(t, workers)
	})

	t.Run("register requires id", func(t *testing.T) {
		require.Error(t, client.RegisterWorker(ctx, WorkerMeta{}))
	})
}
