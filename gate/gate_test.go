package gate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/store/memory"
)

// stubStore records calls and returns canned answers.
type stubStore struct {
	empty    bool
	emptyErr error
	applied  []graph.Operation
}

func (s *stubStore) IsEmpty(context.Context) (bool, error) {
	return s.empty, s.emptyErr
}

func (s *stubStore) Apply(_ context.Context, op graph.Operation) (graph.Summary, error) {
	s.applied = append(s.applied, op)
	return graph.Summary{}, nil
}

func sampleOps() []graph.Operation {
	emp := func(v int64) graph.Endpoint {
		return graph.NewEndpoint(graph.LabelEmployee).WithKey("EmployeeID", v)
	}
	return []graph.Operation{
		graph.NewMerge(graph.LabelEmployee).WithKey("EmployeeID", int64(1)).Operation(),
		graph.NewMerge(graph.LabelEmployee).WithKey("EmployeeID", int64(2)).Operation(),
		graph.NewLink(graph.RelManagedByTalent, emp(2), emp(1)).Operation(),
		graph.NewLink(graph.RelManagedByTalent, emp(1), emp(99)).Operation(),
	}
}

func writeArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
	return path
}

func compileOps(ops []graph.Operation) CompileFunc {
	return func(context.Context) ([]graph.Operation, error) {
		return ops, nil
	}
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestRun_Success(t *testing.T) {
	store := memory.New()
	g, err := New(store)
	require.NoError(t, err)

	path := writeArtifact(t)
	report, err := g.Run(context.Background(), path, compileOps(sampleOps()))
	require.NoError(t, err)

	assert.Equal(t, 4, report.Planned)
	assert.Equal(t, 4, report.Applied)
	assert.Equal(t, 2, report.NodesCreated)
	assert.Equal(t, 2, report.LinksAttempted)
	assert.Equal(t, 1, report.LinksCreated)
	assert.Equal(t, 1, report.LinksOmitted())
	assert.True(t, report.ArtifactRemoved)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
	assert.Equal(t, 1, store.RelationshipCount(graph.RelManagedByTalent))
}

func TestRun_RejectsNonEmptyDatabase(t *testing.T) {
	store := &stubStore{empty: false}
	g, err := New(store)
	require.NoError(t, err)

	compiled := false
	path := writeArtifact(t)
	report, err := g.Run(context.Background(), path, func(context.Context) ([]graph.Operation, error) {
		compiled = true
		return sampleOps(), nil
	})

	require.ErrorIs(t, err, ErrDatabaseNotEmpty)
	assert.False(t, errors.Is(err, ErrExecutionFailed))
	assert.False(t, compiled, "compile must not run when the precondition fails")
	assert.Empty(t, store.applied)
	assert.Zero(t, report.Applied)
	assert.True(t, report.ArtifactRemoved)
}

func TestRun_EmptinessCheckError(t *testing.T) {
	boom := errors.New("connection refused")
	g, err := New(&stubStore{emptyErr: boom})
	require.NoError(t, err)

	report, err := g.Run(context.Background(), "", compileOps(sampleOps()))
	require.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrDatabaseNotEmpty))
	assert.NotNil(t, report)
}

func TestRun_CompileError(t *testing.T) {
	g, err := New(&stubStore{empty: true})
	require.NoError(t, err)

	bad := errors.New("sheet unreadable")
	path := writeArtifact(t)
	report, err := g.Run(context.Background(), path, func(context.Context) ([]graph.Operation, error) {
		return nil, bad
	})

	require.ErrorIs(t, err, bad)
	assert.True(t, report.ArtifactRemoved, "artifact is removed even when compiling fails")
}

func TestRun_AbortsOnFirstExecutionError(t *testing.T) {
	store := memory.New()
	storeErr := errors.New("constraint violation")
	store.InjectFailure(func(call int, _ graph.Operation) error {
		if call == 1 {
			return storeErr
		}
		return nil
	})

	g, err := New(store)
	require.NoError(t, err)

	ops := sampleOps()
	path := writeArtifact(t)
	report, err := g.Run(context.Background(), path, compileOps(ops))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutionFailed)
	assert.ErrorIs(t, err, storeErr)

	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 1, execErr.Index)
	assert.Equal(t, ops[1], execErr.Operation)

	// The first operation stays applied; nothing after the failure runs.
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, 1, store.NodeCount())
	assert.Zero(t, store.RelationshipCount(""))
	assert.True(t, report.ArtifactRemoved)
}

func TestRun_MissingArtifactCountsAsRemoved(t *testing.T) {
	g, err := New(memory.New())
	require.NoError(t, err)

	report, err := g.Run(context.Background(), filepath.Join(t.TempDir(), "gone.xlsx"), compileOps(nil))
	require.NoError(t, err)
	assert.True(t, report.ArtifactRemoved)
}

func TestRun_RemovalFailureIsReported(t *testing.T) {
	g, err := New(memory.New(), WithRemover(func(string) error {
		return errors.New("permission denied")
	}))
	require.NoError(t, err)

	report, err := g.Run(context.Background(), "locked.xlsx", compileOps(sampleOps()))
	require.NoError(t, err)
	assert.False(t, report.ArtifactRemoved)
	assert.Equal(t, 4, report.Applied)
}

func TestExecute(t *testing.T) {
	store := memory.New()
	g, err := New(store)
	require.NoError(t, err)

	report, err := g.Execute(context.Background(), sampleOps())
	require.NoError(t, err)
	assert.Equal(t, 4, report.Applied)
	assert.False(t, report.ArtifactRemoved)

	// A second run is refused: the store is no longer empty.
	_, err = g.Execute(context.Background(), sampleOps())
	assert.ErrorIs(t, err, ErrDatabaseNotEmpty)
}

func TestRun_Tracing(t *testing.T) {
	tests := []struct {
		name       string
		store      Store
		wantStatus codes.Code
		wantEvent  string
	}{
		{"success", memory.New(), codes.Ok, ""},
		{"rejected", &stubStore{empty: false}, codes.Error, "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

			g, err := New(tt.store,
				WithTracer(tp.Tracer("test")),
				WithMeter(metricnoop.NewMeterProvider().Meter("test")),
			)
			require.NoError(t, err)

			_, _ = g.Execute(context.Background(), sampleOps())

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, "orggraph.gate.run", spans[0].Name())
			assert.Equal(t, tt.wantStatus, spans[0].Status().Code)

			if tt.wantEvent != "" {
				require.NotEmpty(t, spans[0].Events())
				assert.Equal(t, tt.wantEvent, spans[0].Events()[0].Name)
			}
		})
	}
}

func TestExecutionError_Message(t *testing.T) {
	op := graph.NewMerge(graph.LabelRole).WithKey("RoleType", "Engineer").Operation()
	err := &ExecutionError{Index: 3, Operation: op, Err: errors.New("timeout")}

	assert.Equal(t, "execution failed: operation 3 (merge [Role] {RoleType: Engineer}): timeout", err.Error())
}

func TestReport_LinksOmittedFloorsAtZero(t *testing.T) {
	r := &Report{LinksAttempted: 1, LinksCreated: 3}
	assert.Zero(t, r.LinksOmitted())
}
