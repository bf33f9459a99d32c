package orggraph

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/orggraph/graph/id"
)

// Option configures a Seeder.
type Option func(*seederConfig)

type seederConfig struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	ids     id.Generator
	clock   id.Clock
	strict  bool
	remover func(string) error
}

// WithLogger sets the logger shared by the workbook loader, the planner and
// the gate. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *seederConfig) {
		c.logger = logger
	}
}

// WithTracer sets the tracer for gate runs.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *seederConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets the meter for gate run counters.
func WithMeter(meter metric.Meter) Option {
	return func(c *seederConfig) {
		c.meter = meter
	}
}

// WithIDGenerator sets the source of generated identifiers.
func WithIDGenerator(g id.Generator) Option {
	return func(c *seederConfig) {
		c.ids = g
	}
}

// WithClock sets the source of bookkeeping timestamps.
func WithClock(clock id.Clock) Option {
	return func(c *seederConfig) {
		c.clock = clock
	}
}

// WithStrictWorkbook rejects workbooks that miss any expected sheet.
func WithStrictWorkbook(strict bool) Option {
	return func(c *seederConfig) {
		c.strict = strict
	}
}

// WithRemover replaces the function that deletes seeded workbooks.
// Defaults to os.Remove.
func WithRemover(remove func(path string) error) Option {
	return func(c *seederConfig) {
		c.remover = remove
	}
}
