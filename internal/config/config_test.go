package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"KANBAN_CONFIG", "KANBAN_DB", "KANBAN_HTTP_ADDR", "KANBAN_CORS_ORIGINS",
		"KANBAN_REDIS_ADDR", "KANBAN_BOARD_CACHE_TTL", "KANBAN_IMAGE_STORE",
		"KANBAN_S3_BUCKET", "KANBAN_S3_REGION", "KANBAN_S3_PREFIX",
		"KANBAN_LOG_LEVEL", "KANBAN_LOG_FORMAT", "KANBAN_USER", "KANBAN_TRACE_LOG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.DBPath, cfg.DBPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ImageStoreDB, cfg.ImageStore)
	assert.Equal(t, 5*time.Minute, cfg.BoardCacheTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.TraceLog)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "kanban.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /var/lib/kanban/board.db
http_addr: ":9000"
cors_origins: ["https://a.example", "https://b.example"]
redis_addr: localhost:6379
board_cache_ttl: 30s
log_format: json
trace_log: true
default_user: u-yaml
`), 0o600))

	t.Setenv("KANBAN_CONFIG", path)
	t.Setenv("KANBAN_HTTP_ADDR", ":9100")
	t.Setenv("KANBAN_USER", "u-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/kanban/board.db", cfg.DBPath)
	assert.Equal(t, ":9100", cfg.HTTPAddr, "env overrides file")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.BoardCacheTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.TraceLog)
	assert.Equal(t, "u-env", cfg.DefaultUser)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("KANBAN_CORS_ORIGINS", "https://x.example, ,https://y.example")
	t.Setenv("KANBAN_BOARD_CACHE_TTL", "2m")
	t.Setenv("KANBAN_IMAGE_STORE", "S3")
	t.Setenv("KANBAN_S3_BUCKET", "kanban-images")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://x.example", "https://y.example"}, cfg.CORSOrigins)
	assert.Equal(t, 2*time.Minute, cfg.BoardCacheTTL)
	assert.Equal(t, ImageStoreS3, cfg.ImageStore)
	assert.Equal(t, "kanban-images", cfg.S3Bucket)
}

func TestLoad_InvalidTTLIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("KANBAN_BOARD_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.BoardCacheTTL)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("KANBAN_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"s3 without bucket", func(c *Config) { c.ImageStore = ImageStoreS3 }, "s3_bucket"},
		{"unknown store", func(c *Config) { c.ImageStore = "ftp" }, "unknown image_store"},
		{"empty db path", func(c *Config) { c.DBPath = "" }, "db_path"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"negative ttl", func(c *Config) { c.BoardCacheTTL = -time.Second }, "board_cache_ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"

	logger := NewLogger(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.LogFormat = "text"
	assert.IsType(t, &logrus.TextFormatter{}, NewLogger(cfg).Formatter)
}

func TestLoad_TraceLogFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("KANBAN_TRACE_LOG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TraceLog)

	t.Setenv("KANBAN_TRACE_LOG", "not-a-bool")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.TraceLog, "unparseable values keep the default")
}
