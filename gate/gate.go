package gate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/orggraph/graph"
)

// Store is the graph store contract the gate drives.
type Store interface {
	// IsEmpty reports whether the store holds no nodes. It must have no
	// side effects.
	IsEmpty(ctx context.Context) (bool, error)

	// Apply executes one operation and reports what it changed. A link
	// whose endpoints match nothing returns a zero Summary and no error.
	Apply(ctx context.Context, op graph.Operation) (graph.Summary, error)
}

// CompileFunc produces the operations of a run. It is only called once the
// store has passed the emptiness check.
type CompileFunc func(ctx context.Context) ([]graph.Operation, error)

// Report describes a finished or aborted run.
type Report struct {
	// Planned is the number of operations compiled for the run.
	Planned int `json:"planned"`

	// Applied is the number of operations the store accepted.
	Applied int `json:"applied"`

	// LinksAttempted counts applied link operations.
	LinksAttempted int `json:"links_attempted"`

	// LinksCreated counts relationships the store reported as created.
	LinksCreated int `json:"links_created"`

	NodesCreated  int `json:"nodes_created"`
	PropertiesSet int `json:"properties_set"`

	// ArtifactRemoved is true once the source artifact is gone.
	ArtifactRemoved bool `json:"artifact_removed"`

	Duration time.Duration `json:"duration"`
}

// LinksOmitted returns how many applied links created no relationship.
// Links that match several endpoint pairs can create more than one, so the
// result is floored at zero.
func (r *Report) LinksOmitted() int {
	if n := r.LinksAttempted - r.LinksCreated; n > 0 {
		return n
	}
	return 0
}

// Gate runs plans against a Store.
type Gate struct {
	store  Store
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
	remove func(string) error

	applied        metric.Int64Counter
	linksAttempted metric.Int64Counter
	linksCreated   metric.Int64Counter
}

// New creates a gate over store.
func New(store Store, opts ...Option) (*Gate, error) {
	if store == nil {
		return nil, errors.New("gate: store is required")
	}
	g := &Gate{
		store:  store,
		logger: slog.Default(),
		tracer: tracenoop.NewTracerProvider().Tracer("orggraph/gate"),
		meter:  metricnoop.NewMeterProvider().Meter("orggraph/gate"),
		remove: os.Remove,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "gate")

	if err := g.initMetrics(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gate) initMetrics() error {
	var err error
	g.applied, err = g.meter.Int64Counter(
		"orggraph.operations.applied",
		metric.WithDescription("Graph operations applied by the store"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("create applied counter: %w", err)
	}

	g.linksAttempted, err = g.meter.Int64Counter(
		"orggraph.links.attempted",
		metric.WithDescription("Link operations applied"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("create links attempted counter: %w", err)
	}

	g.linksCreated, err = g.meter.Int64Counter(
		"orggraph.links.created",
		metric.WithDescription("Relationships created by link operations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("create links created counter: %w", err)
	}
	return nil
}

// Run checks that the store is empty, compiles the operations and applies
// them in order. artifact, when non-empty, is removed before Run returns
// regardless of the outcome.
//
// The returned report is never nil.
func (g *Gate) Run(ctx context.Context, artifact string, compile CompileFunc) (report *Report, err error) {
	start := time.Now()
	report = &Report{}

	ctx, span := g.tracer.Start(ctx, "orggraph.gate.run")
	defer span.End()
	if artifact != "" {
		span.SetAttributes(attribute.String("orggraph.artifact", artifact))
	}

	defer func() {
		if artifact != "" {
			report.ArtifactRemoved = g.removeArtifact(artifact)
		}
		report.Duration = time.Since(start)
		g.finish(ctx, span, report, err)
	}()

	empty, err := g.store.IsEmpty(ctx)
	if err != nil {
		return report, fmt.Errorf("checking database emptiness: %w", err)
	}
	if !empty {
		span.AddEvent("rejected", trace.WithAttributes(attribute.String("reason", "database not empty")))
		return report, ErrDatabaseNotEmpty
	}

	ops, err := compile(ctx)
	if err != nil {
		return report, fmt.Errorf("compiling operations: %w", err)
	}
	report.Planned = len(ops)
	g.logger.Info("applying operations", "operations", len(ops))

	return report, g.apply(ctx, ops, report)
}

// Execute runs ops with no source artifact.
func (g *Gate) Execute(ctx context.Context, ops []graph.Operation) (*Report, error) {
	return g.Run(ctx, "", func(context.Context) ([]graph.Operation, error) {
		return ops, nil
	})
}

func (g *Gate) apply(ctx context.Context, ops []graph.Operation, report *Report) error {
	for i, op := range ops {
		sum, err := g.store.Apply(ctx, op)
		if err != nil {
			return &ExecutionError{Index: i, Operation: op, Err: err}
		}
		report.Applied++
		report.NodesCreated += sum.NodesCreated
		report.PropertiesSet += sum.PropertiesSet
		if op.IsLink() {
			report.LinksAttempted++
			report.LinksCreated += sum.RelationshipsCreated
			if sum.RelationshipsCreated == 0 {
				g.logger.Debug("link matched no endpoints", "index", i, "operation", op.String())
			}
		}
	}
	return nil
}

func (g *Gate) removeArtifact(path string) bool {
	err := g.remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	g.logger.Warn("failed to remove source artifact", "path", path, "error", err)
	return false
}

func (g *Gate) finish(ctx context.Context, span trace.Span, report *Report, err error) {
	span.SetAttributes(
		attribute.Int("orggraph.operations.planned", report.Planned),
		attribute.Int("orggraph.operations.applied", report.Applied),
		attribute.Int("orggraph.links.attempted", report.LinksAttempted),
		attribute.Int("orggraph.links.created", report.LinksCreated),
	)

	g.applied.Add(ctx, int64(report.Applied))
	g.linksAttempted.Add(ctx, int64(report.LinksAttempted))
	g.linksCreated.Add(ctx, int64(report.LinksCreated))

	var execErr *ExecutionError
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
		g.logger.Info("run complete",
			"applied", report.Applied,
			"links_attempted", report.LinksAttempted,
			"links_created", report.LinksCreated,
			"links_omitted", report.LinksOmitted(),
			"duration", report.Duration,
		)
	case errors.Is(err, ErrDatabaseNotEmpty):
		span.SetStatus(codes.Error, err.Error())
		g.logger.Warn("run rejected", "error", err)
	case errors.As(err, &execErr):
		span.RecordError(err, trace.WithAttributes(attribute.Int("orggraph.operation.index", execErr.Index)))
		span.SetStatus(codes.Error, err.Error())
		g.logger.Error("run aborted",
			"index", execErr.Index,
			"operation", execErr.Operation.String(),
			"applied", report.Applied,
			"error", execErr.Err,
		)
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.logger.Error("run failed", "error", err)
	}
}
