// Package config provides loading and parsing of orggraph.yaml configuration
// files. The file holds connection settings for the graph database and the
// job queue, worker tuning and logging options; environment variables
// override the connection settings.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file searched for by LoadFromDir.
const FileName = "orggraph.yaml"

// Environment variables that override file settings.
const (
	EnvNeo4jURI      = "NEO4J_URI"
	EnvNeo4jUsername = "NEO4J_USERNAME"
	EnvNeo4jPassword = "NEO4J_PASSWORD"
	EnvNeo4jDatabase = "NEO4J_DATABASE"
	EnvRedisURL      = "REDIS_URL"
)

// Config represents an orggraph.yaml configuration file.
type Config struct {
	Neo4j    *Neo4jConfig    `yaml:"neo4j,omitempty"`
	Redis    *RedisConfig    `yaml:"redis,omitempty"`
	Worker   *WorkerConfig   `yaml:"worker,omitempty"`
	Log      *LogConfig      `yaml:"log,omitempty"`
	Workbook *WorkbookConfig `yaml:"workbook,omitempty"`
}

// Neo4jConfig holds graph database connection settings.
type Neo4jConfig struct {
	URI      string `yaml:"uri,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// Database selects the target database. Empty uses the server default.
	Database string `yaml:"database,omitempty"`
}

// GetURI returns the URI or "neo4j://localhost:7687".
func (n *Neo4jConfig) GetURI() string {
	if n == nil || n.URI == "" {
		return "neo4j://localhost:7687"
	}
	return n.URI
}

// GetUsername returns the username or "neo4j".
func (n *Neo4jConfig) GetUsername() string {
	if n == nil || n.Username == "" {
		return "neo4j"
	}
	return n.Username
}

// GetPassword returns the password, which has no default.
func (n *Neo4jConfig) GetPassword() string {
	if n == nil {
		return ""
	}
	return n.Password
}

// GetDatabase returns the database name, "" meaning the server default.
func (n *Neo4jConfig) GetDatabase() string {
	if n == nil {
		return ""
	}
	return n.Database
}

// RedisConfig holds job queue settings.
type RedisConfig struct {
	URL string `yaml:"url,omitempty"`

	// Queue is the list seeding jobs are pushed to.
	// Default: "orggraph:seed:queue"
	Queue string `yaml:"queue,omitempty"`
}

// GetURL returns the Redis URL or "redis://localhost:6379".
func (r *RedisConfig) GetURL() string {
	if r == nil || r.URL == "" {
		return "redis://localhost:6379"
	}
	return r.URL
}

// GetQueue returns the queue name or the default.
func (r *RedisConfig) GetQueue() string {
	if r == nil || r.Queue == "" {
		return "orggraph:seed:queue"
	}
	return r.Queue
}

// WorkerConfig tunes the seeding worker.
type WorkerConfig struct {
	// ShutdownTimeout is the time to wait for the current job on shutdown.
	// Format: Go duration string (e.g., "30s", "1m")
	// Default: 30s
	ShutdownTimeout string `yaml:"shutdown_timeout,omitempty"`

	// HeartbeatInterval is the interval between health heartbeats.
	// Default: 10s
	HeartbeatInterval string `yaml:"heartbeat_interval,omitempty"`

	// BlockTimeout bounds each blocking queue pop so shutdown is noticed.
	// Default: 2s
	BlockTimeout string `yaml:"block_timeout,omitempty"`

	// UploadDir is where enqueued workbooks are copied before a worker
	// picks them up.
	// Default: "./uploads"
	UploadDir string `yaml:"upload_dir,omitempty"`
}

// GetShutdownTimeout returns the shutdown timeout or 30s.
func (w *WorkerConfig) GetShutdownTimeout() time.Duration {
	if w == nil {
		return 30 * time.Second
	}
	return parseDuration(w.ShutdownTimeout, 30*time.Second)
}

// GetHeartbeatInterval returns the heartbeat interval or 10s.
func (w *WorkerConfig) GetHeartbeatInterval() time.Duration {
	if w == nil {
		return 10 * time.Second
	}
	return parseDuration(w.HeartbeatInterval, 10*time.Second)
}

// GetBlockTimeout returns the pop block timeout or 2s.
func (w *WorkerConfig) GetBlockTimeout() time.Duration {
	if w == nil {
		return 2 * time.Second
	}
	return parseDuration(w.BlockTimeout, 2*time.Second)
}

// GetUploadDir returns the upload directory or "./uploads".
func (w *WorkerConfig) GetUploadDir() string {
	if w == nil || w.UploadDir == "" {
		return "./uploads"
	}
	return w.UploadDir
}

// LogConfig selects the log handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level,omitempty"`

	// Format is "json" or "text". Default: text
	Format string `yaml:"format,omitempty"`
}

// GetLevel returns the configured level, defaulting to info.
func (l *LogConfig) GetLevel() slog.Level {
	if l == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetFormat returns "json" or "text".
func (l *LogConfig) GetFormat() string {
	if l != nil && strings.EqualFold(l.Format, "json") {
		return "json"
	}
	return "text"
}

// NewLogger builds a logger writing to w.
func (l *LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.GetLevel()}
	if l.GetFormat() == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// WorkbookConfig controls spreadsheet loading.
type WorkbookConfig struct {
	// Strict rejects workbooks missing any of the expected sheets.
	Strict bool `yaml:"strict,omitempty"`
}

// IsStrict reports whether strict loading is on.
func (w *WorkbookConfig) IsStrict() bool {
	return w != nil && w.Strict
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// Default returns an empty configuration; every getter yields its default.
func Default() *Config {
	return &Config{}
}

// Load reads and parses a configuration file from the given path.
// If the path is a directory, it looks for orggraph.yaml or orggraph.yml in
// that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath = ""
		for _, name := range []string{FileName, "orggraph.yml"} {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("no %s or orggraph.yml found in %s", FileName, path)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// LoadFromDir searches for orggraph.yaml starting from dir and walking up
// to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		cfg, err := Load(absDir)
		if err == nil {
			return cfg, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("no %s found in %s or parent directories", FileName, dir)
		}
		absDir = parent
	}
}

// ApplyEnv overrides connection settings from the environment, read through
// lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if c.Neo4j == nil {
		c.Neo4j = &Neo4jConfig{}
	}
	set(EnvNeo4jURI, &c.Neo4j.URI)
	set(EnvNeo4jUsername, &c.Neo4j.Username)
	set(EnvNeo4jPassword, &c.Neo4j.Password)
	set(EnvNeo4jDatabase, &c.Neo4j.Database)

	if c.Redis == nil {
		c.Redis = &RedisConfig{}
	}
	set(EnvRedisURL, &c.Redis.URL)
}
