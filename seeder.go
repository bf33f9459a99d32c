package orggraph

import (
	"context"
	"log/slog"

	"github.com/zero-day-ai/orggraph/gate"
	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/planner"
	"github.com/zero-day-ai/orggraph/queue"
	"github.com/zero-day-ai/orggraph/records"
	"github.com/zero-day-ai/orggraph/workbook"
)

// Seeder loads organizational workbooks, plans them and applies the plan
// to an empty graph store.
type Seeder struct {
	gate    *gate.Gate
	planner *planner.Planner
	logger  *slog.Logger
	strict  bool
}

// NewSeeder creates a seeder writing to store.
func NewSeeder(store gate.Store, opts ...Option) (*Seeder, error) {
	cfg := &seederConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	gateOpts := []gate.Option{gate.WithLogger(cfg.logger)}
	if cfg.tracer != nil {
		gateOpts = append(gateOpts, gate.WithTracer(cfg.tracer))
	}
	if cfg.meter != nil {
		gateOpts = append(gateOpts, gate.WithMeter(cfg.meter))
	}
	if cfg.remover != nil {
		gateOpts = append(gateOpts, gate.WithRemover(cfg.remover))
	}
	g, err := gate.New(store, gateOpts...)
	if err != nil {
		return nil, NewConfigurationError("NewSeeder", err)
	}

	plannerOpts := []planner.Option{planner.WithLogger(cfg.logger)}
	if cfg.ids != nil {
		plannerOpts = append(plannerOpts, planner.WithIDGenerator(cfg.ids))
	}
	if cfg.clock != nil {
		plannerOpts = append(plannerOpts, planner.WithClock(cfg.clock))
	}

	return &Seeder{
		gate:    g,
		planner: planner.New(plannerOpts...),
		logger:  cfg.logger,
		strict:  cfg.strict,
	}, nil
}

// Plan compiles ds without touching the store.
func (s *Seeder) Plan(ds *records.Dataset) (*planner.Plan, error) {
	plan, err := s.planner.Plan(ds)
	if err != nil {
		return nil, classify("Seeder.Plan", err)
	}
	return plan, nil
}

// PlanFile loads the workbook at path and compiles it. The file is left in
// place.
func (s *Seeder) PlanFile(path string) (*planner.Plan, error) {
	plan, err := s.planFile(path, s.strict)
	if err != nil {
		return nil, classify("Seeder.PlanFile", err).WithContext(map[string]any{"path": path})
	}
	return plan, nil
}

// Seed applies ds to the store. The store must be empty.
func (s *Seeder) Seed(ctx context.Context, ds *records.Dataset) (*gate.Report, error) {
	report, err := s.gate.Run(ctx, "", func(context.Context) ([]graph.Operation, error) {
		plan, err := s.planner.Plan(ds)
		if err != nil {
			return nil, err
		}
		return plan.Operations(), nil
	})
	if err != nil {
		return report, classify("Seeder.Seed", err)
	}
	return report, nil
}

// SeedFile seeds the store from the workbook at path. The workbook is only
// read once the store has been found empty, and it is removed whatever the
// outcome.
//
// The returned report is never nil.
func (s *Seeder) SeedFile(ctx context.Context, path string) (*gate.Report, error) {
	return s.seedFile(ctx, path, s.strict, "Seeder.SeedFile")
}

// Process implements worker.Processor. A job asking for strict loading is
// strict even if the seeder is not.
func (s *Seeder) Process(ctx context.Context, job queue.SeedJob) (*gate.Report, error) {
	return s.seedFile(ctx, job.Path, s.strict || job.Strict, "Seeder.Process")
}

func (s *Seeder) seedFile(ctx context.Context, path string, strict bool, op string) (*gate.Report, error) {
	report, err := s.gate.Run(ctx, path, func(context.Context) ([]graph.Operation, error) {
		plan, err := s.planFile(path, strict)
		if err != nil {
			return nil, err
		}
		return plan.Operations(), nil
	})
	if err != nil {
		return report, classify(op, err).WithContext(map[string]any{"path": path})
	}
	return report, nil
}

func (s *Seeder) planFile(path string, strict bool) (*planner.Plan, error) {
	opts := []workbook.Option{workbook.WithLogger(s.logger)}
	if strict {
		opts = append(opts, workbook.WithStrict())
	}
	ds, err := workbook.Load(path, opts...)
	if err != nil {
		return nil, err
	}
	return s.planner.Plan(ds)
}
