package neo4j

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/zero-day-ai/orggraph/graph"
	"github.com/zero-day-ai/orggraph/graph/cypher"
)

// ErrInvalidConfig indicates a connection config missing its URI.
var ErrInvalidConfig = errors.New("invalid neo4j configuration")

// Config holds connection settings.
type Config struct {
	// URI is the bolt or neo4j URI (e.g., "neo4j://localhost:7687").
	URI string

	Username string
	Password string

	// Database selects the target database. Empty uses the server default.
	Database string
}

// Validate checks the config.
func (c Config) Validate() error {
	if c.URI == "" {
		return fmt.Errorf("%w: uri is required", ErrInvalidConfig)
	}
	return nil
}

// session is the subset of neo4j.SessionWithContext the store uses.
type session interface {
	Run(ctx context.Context, cypher string, params map[string]any, configurers ...func(*neo4j.TransactionConfig)) (neo4j.ResultWithContext, error)
	Close(ctx context.Context) error
}

// Store applies operations through a single session.
type Store struct {
	driver  neo4j.DriverWithContext
	session session
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open connects to Neo4j, verifies connectivity and opens the session.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", cfg.URI, err)
	}

	sess := driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: cfg.Database,
	})

	s := newStore(sess, opts...)
	s.driver = driver
	s.logger.Debug("connected", "uri", cfg.URI, "database", cfg.Database)
	return s, nil
}

func newStore(sess session, opts ...Option) *Store {
	s := &Store{session: sess, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "neo4j")
	return s
}

// IsEmpty reports whether the database holds no nodes.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	st := cypher.CountNodes()
	result, err := s.session.Run(ctx, st.Text, st.Params)
	if err != nil {
		return false, fmt.Errorf("failed to count nodes: %w", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read node count: %w", err)
	}
	raw, ok := record.Get("count")
	if !ok {
		return false, errors.New("node count missing from result")
	}
	count, ok := raw.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected node count type %T", raw)
	}
	s.logger.Debug("counted nodes", "count", count)
	return count == 0, nil
}

// Apply renders op to Cypher and runs it.
func (s *Store) Apply(ctx context.Context, op graph.Operation) (graph.Summary, error) {
	st, err := cypher.Render(op)
	if err != nil {
		return graph.Summary{}, err
	}
	return s.Run(ctx, st)
}

// Run executes a rendered statement and reports its update counters.
func (s *Store) Run(ctx context.Context, st cypher.Statement) (graph.Summary, error) {
	result, err := s.session.Run(ctx, st.Text, st.Params)
	if err != nil {
		return graph.Summary{}, err
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return graph.Summary{}, err
	}
	counters := summary.Counters()
	return graph.Summary{
		NodesCreated:         counters.NodesCreated(),
		RelationshipsCreated: counters.RelationshipsCreated(),
		PropertiesSet:        counters.PropertiesSet(),
	}, nil
}

// Close closes the session and the driver.
func (s *Store) Close(ctx context.Context) error {
	var errs []error
	if err := s.session.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to close session: %w", err))
	}
	if s.driver != nil {
		if err := s.driver.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close driver: %w", err))
		}
	}
	return errors.Join(errs...)
}
