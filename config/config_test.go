package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
neo4j:
  uri: neo4j://graph:7687
  username: admin
  password: s3cret
  database: org
redis:
  url: redis://cache:6379
  queue: seeds
worker:
  shutdown_timeout: 1m
  heartbeat_interval: 5s
  block_timeout: 500ms
  upload_dir: /var/uploads
log:
  level: debug
  format: json
workbook:
  strict: true
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), FileName, sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "neo4j://graph:7687", cfg.Neo4j.GetURI())
	assert.Equal(t, "admin", cfg.Neo4j.GetUsername())
	assert.Equal(t, "s3cret", cfg.Neo4j.GetPassword())
	assert.Equal(t, "org", cfg.Neo4j.GetDatabase())
	assert.Equal(t, "redis://cache:6379", cfg.Redis.GetURL())
	assert.Equal(t, "seeds", cfg.Redis.GetQueue())
	assert.Equal(t, time.Minute, cfg.Worker.GetShutdownTimeout())
	assert.Equal(t, 5*time.Second, cfg.Worker.GetHeartbeatInterval())
	assert.Equal(t, 500*time.Millisecond, cfg.Worker.GetBlockTimeout())
	assert.Equal(t, "/var/uploads", cfg.Worker.GetUploadDir())
	assert.Equal(t, slog.LevelDebug, cfg.Log.GetLevel())
	assert.Equal(t, "json", cfg.Log.GetFormat())
	assert.True(t, cfg.Workbook.IsStrict())
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "orggraph.yml", "redis:\n  queue: from-yml\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-yml", cfg.Redis.GetQueue())

	_, err = Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to stat path")

	bad := writeConfig(t, t.TempDir(), FileName, "neo4j: [unclosed")
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoadFromDir_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, FileName, "redis:\n  queue: parent\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := LoadFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, "parent", cfg.Redis.GetQueue())
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4j.GetURI())
	assert.Equal(t, "neo4j", cfg.Neo4j.GetUsername())
	assert.Empty(t, cfg.Neo4j.GetPassword())
	assert.Empty(t, cfg.Neo4j.GetDatabase())
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.GetURL())
	assert.Equal(t, "orggraph:seed:queue", cfg.Redis.GetQueue())
	assert.Equal(t, 30*time.Second, cfg.Worker.GetShutdownTimeout())
	assert.Equal(t, 10*time.Second, cfg.Worker.GetHeartbeatInterval())
	assert.Equal(t, 2*time.Second, cfg.Worker.GetBlockTimeout())
	assert.Equal(t, "./uploads", cfg.Worker.GetUploadDir())
	assert.Equal(t, slog.LevelInfo, cfg.Log.GetLevel())
	assert.Equal(t, "text", cfg.Log.GetFormat())
	assert.False(t, cfg.Workbook.IsStrict())
}

func TestWorkerConfig_InvalidDurationsFallBack(t *testing.T) {
	w := &WorkerConfig{ShutdownTimeout: "soon", BlockTimeout: "-"}
	assert.Equal(t, 30*time.Second, w.GetShutdownTimeout())
	assert.Equal(t, 2*time.Second, w.GetBlockTimeout())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvNeo4jURI:      "bolt://env:7687",
		EnvNeo4jPassword: "from-env",
		EnvRedisURL:      "redis://env:6379",
		EnvNeo4jDatabase: "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := &Config{Neo4j: &Neo4jConfig{Username: "file-user", Database: "file-db"}}
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "bolt://env:7687", cfg.Neo4j.GetURI())
	assert.Equal(t, "file-user", cfg.Neo4j.GetUsername())
	assert.Equal(t, "from-env", cfg.Neo4j.GetPassword())
	assert.Equal(t, "file-db", cfg.Neo4j.GetDatabase(), "empty env values do not override")
	assert.Equal(t, "redis://env:6379", cfg.Redis.GetURL())
}

func TestLogConfig_NewLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  *LogConfig
		want string
	}{
		{"json", &LogConfig{Format: "JSON"}, `"msg":"hello"`},
		{"text default", nil, "msg=hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.cfg.NewLogger(&buf).Info("hello")
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	var buf bytes.Buffer
	(&LogConfig{Level: "warn"}).NewLogger(&buf).Info("dropped")
	assert.Empty(t, buf.String())
}
