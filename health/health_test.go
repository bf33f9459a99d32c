package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/store/memory"
)

type failingStore struct{}

func (failingStore) IsEmpty(context.Context) (bool, error) {
	return false, errors.New("connection refused")
}

func TestStoreCheck(t *testing.T) {
	ctx := context.Background()

	seeded := memory.New()
	op := graph.NewMerge(graph.LabelRole).WithKey("RoleType", "Engineer").Operation()
	if _, err := seeded.Apply(ctx, op); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	tests := []struct {
		name  string
		store EmptinessChecker
		want  string
	}{
		{"empty store", memory.New(), StatusHealthy},
		{"seeded store", seeded, StatusDegraded},
		{"failing store", failingStore{}, StatusUnhealthy},
		{"nil store", nil, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StoreCheck(ctx, "neo4j", tt.store)
			if got.Status != tt.want {
				t.Errorf("status = %s (%s), want %s", got.Status, got.Message, tt.want)
			}
			if got.Message == "" {
				t.Error("expected non-empty message")
			}
		})
	}
}

func TestPingCheck(t *testing.T) {
	ctx := context.Background()

	if got := PingCheck(ctx, "redis", func(context.Context) error { return nil }); !got.IsHealthy() {
		t.Errorf("expected healthy, got %s", got.Status)
	}

	got := PingCheck(ctx, "redis", func(context.Context) error { return errors.New("dial tcp: refused") })
	if !got.IsUnhealthy() {
		t.Errorf("expected unhealthy, got %s", got.Status)
	}
	if got.Details["error"] != "dial tcp: refused" {
		t.Errorf("error detail = %v", got.Details["error"])
	}

	if got := PingCheck(ctx, "redis", nil); !got.IsUnhealthy() {
		t.Errorf("expected unhealthy for nil ping, got %s", got.Status)
	}
}

func TestDirWritableCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"writable directory", dir, StatusHealthy},
		{"missing directory", filepath.Join(dir, "uploads"), StatusDegraded},
		{"regular file", file, StatusUnhealthy},
		{"empty path", "", StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirWritableCheck(tt.path); got.Status != tt.want {
				t.Errorf("status = %s (%s), want %s", got.Status, got.Message, tt.want)
			}
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("probe file left behind: %d entries", len(entries))
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name   string
		checks []Result
		want   string
	}{
		{"no checks", nil, StatusHealthy},
		{"all healthy", []Result{NewHealthy("a"), NewHealthy("b")}, StatusHealthy},
		{"one degraded", []Result{NewHealthy("a"), NewDegraded("b", nil)}, StatusDegraded},
		{"unhealthy wins", []Result{NewDegraded("a", nil), NewUnhealthy("b", nil)}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.checks...); got.Status != tt.want {
				t.Errorf("status = %s, want %s", got.Status, tt.want)
			}
		})
	}

	got := Combine(NewUnhealthy("", nil), NewDegraded("slow", nil), NewHealthy("ok"))
	if got.Details["unhealthy_checks"].([]string)[0] != "unnamed check" {
		t.Errorf("unexpected details: %+v", got.Details)
	}
	if got.Details["healthy"] != 1 {
		t.Errorf("healthy count = %v", got.Details["healthy"])
	}
}
