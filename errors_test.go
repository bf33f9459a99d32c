package orggraph

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/orggraph/gate"
	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/records"
	"github.com/zero-day-ai/orggraph/workbook"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without underlying error",
			err:  &Error{Op: "Seeder.Seed", Kind: KindInternal},
			want: "orggraph: Seeder.Seed: internal",
		},
		{
			name: "with underlying error",
			err:  &Error{Op: "Seeder.Seed", Kind: KindPrecondition, Err: gate.ErrDatabaseNotEmpty},
			want: "orggraph: Seeder.Seed (precondition): database is not empty",
		},
		{
			name: "with context",
			err: &Error{
				Op:      "Seeder.SeedFile",
				Kind:    KindValidation,
				Err:     errors.New("bad cell"),
				Context: map[string]any{"path": "org.xlsx"},
			},
			want: "orggraph: Seeder.SeedFile (validation): bad cell [context: map[path:org.xlsx]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Is(t *testing.T) {
	err := NewPreconditionError("Seeder.SeedFile", gate.ErrDatabaseNotEmpty)

	assert.True(t, errors.Is(err, gate.ErrDatabaseNotEmpty))
	assert.True(t, errors.Is(err, &Error{Kind: KindPrecondition}))
	assert.True(t, errors.Is(err, &Error{Op: "Seeder.SeedFile", Kind: KindPrecondition}))
	assert.False(t, errors.Is(err, &Error{Op: "Seeder.Seed", Kind: KindPrecondition}))
	assert.False(t, errors.Is(err, &Error{Kind: KindExecution}))
	assert.False(t, err.Is(nil))

	wrapped := fmt.Errorf("job failed: %w", err)
	var oerr *Error
	require.True(t, errors.As(wrapped, &oerr))
	assert.Equal(t, KindPrecondition, oerr.Kind)
}

func TestError_WithContext(t *testing.T) {
	orig := NewExecutionError("op", errors.New("boom")).WithContext(map[string]any{"a": 1})
	next := orig.WithContext(map[string]any{"b": 2})

	assert.Equal(t, map[string]any{"a": 1}, orig.Context)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, next.Context)
}

func TestClassify(t *testing.T) {
	execErr := &gate.ExecutionError{Index: 3, Err: errors.New("timeout")}

	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"not empty", gate.ErrDatabaseNotEmpty, KindPrecondition},
		{"execution", execErr, KindExecution},
		{"malformed record", &records.RecordError{Collection: "Employees", Index: 0, Field: "EmployeeID"}, KindValidation},
		{"missing sheet", fmt.Errorf("%w: Units", workbook.ErrSheetMissing), KindValidation},
		{"planner defect", fmt.Errorf("planning: %w", graph.ErrIncompleteKey), KindInternal},
		{"unknown", errors.New("open org.xlsx: permission denied"), KindExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("op", tt.err)
			assert.Equal(t, tt.kind, got.Kind)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	t.Run("execution index in context", func(t *testing.T) {
		assert.Equal(t, 3, classify("op", execErr).Context["index"])
	})
}

type mockCloser struct {
	closeErr   error
	closeCalls int
}

func (m *mockCloser) Close() error {
	m.closeCalls++
	return m.closeErr
}

func TestCloseWithLog(t *testing.T) {
	t.Run("nil closer", func(t *testing.T) {
		var logBuf bytes.Buffer
		CloseWithLog(nil, slog.New(slog.NewTextHandler(&logBuf, nil)), "resource")
		assert.Empty(t, logBuf.String())
	})

	t.Run("successful close", func(t *testing.T) {
		closer := &mockCloser{}
		var logBuf bytes.Buffer
		CloseWithLog(closer, slog.New(slog.NewTextHandler(&logBuf, nil)), "resource")
		assert.Equal(t, 1, closer.closeCalls)
		assert.Empty(t, logBuf.String())
	})

	t.Run("close error", func(t *testing.T) {
		closer := &mockCloser{closeErr: errors.New("resource busy")}
		var logBuf bytes.Buffer
		CloseWithLog(closer, slog.New(slog.NewTextHandler(&logBuf, nil)), "redis client")

		out := logBuf.String()
		assert.True(t, strings.Contains(out, "failed to close resource"))
		assert.Contains(t, out, "redis client")
		assert.Contains(t, out, "resource busy")
	})

	t.Run("nil logger", func(t *testing.T) {
		closer := &mockCloser{closeErr: errors.New("x")}
		assert.NotPanics(t, func() { CloseWithLog(closer, nil, "resource") })
	})
}
