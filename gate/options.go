package gate

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithTracer sets the tracer used for the run span. Defaults to a no-op
// tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(g *Gate) {
		g.tracer = tracer
	}
}

// WithMeter sets the meter the run counters are created from. Defaults to a
// no-op meter.
func WithMeter(meter metric.Meter) Option {
	return func(g *Gate) {
		g.meter = meter
	}
}

// WithRemover replaces the function used to delete the source artifact.
// Defaults to os.Remove.
func WithRemover(remove func(path string) error) Option {
	return func(g *Gate) {
		g.remove = remove
	}
}
