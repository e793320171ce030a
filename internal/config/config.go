package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Image store backends.
const (
	ImageStoreDB = "db"
	ImageStoreS3 = "s3"
)

// Config holds process configuration for the kanban binary.
type Config struct {
	DBPath        string        `yaml:"db_path"`
	HTTPAddr      string        `yaml:"http_addr"`
	CORSOrigins   []string      `yaml:"cors_origins"`
	RedisAddr     string        `yaml:"redis_addr"`
	BoardCacheTTL time.Duration `yaml:"board_cache_ttl"`
	ImageStore    string        `yaml:"image_store"`
	S3Bucket      string        `yaml:"s3_bucket"`
	S3Region      string        `yaml:"s3_region"`
	S3Prefix      string        `yaml:"s3_prefix"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	TraceLog      bool          `yaml:"trace_log"`
	DefaultUser   string        `yaml:"default_user"`
}

// Default returns a Config with sensible defaults. The database lives
// under ~/.kanban when the home directory can be resolved.
func Default() Config {
	dbPath := "kanban.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".kanban", "kanban.db")
	}
	return Config{
		DBPath:        dbPath,
		HTTPAddr:      ":8080",
		CORSOrigins:   []string{"*"},
		BoardCacheTTL: 5 * time.Minute,
		ImageStore:    ImageStoreDB,
		S3Region:      "us-east-1",
		S3Prefix:      "images/",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load builds the configuration: defaults, then a .env file if present,
// then the YAML file named by KANBAN_CONFIG, then KANBAN_* variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("KANBAN_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("KANBAN_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("KANBAN_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("KANBAN_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("KANBAN_REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("KANBAN_BOARD_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.BoardCacheTTL = d
		}
	}
	if v := os.Getenv("KANBAN_IMAGE_STORE"); v != "" {
		c.ImageStore = strings.ToLower(v)
	}
	if v := os.Getenv("KANBAN_S3_BUCKET"); v != "" {
		c.S3Bucket = v
	}
	if v := os.Getenv("KANBAN_S3_REGION"); v != "" {
		c.S3Region = v
	}
	if v := os.Getenv("KANBAN_S3_PREFIX"); v != "" {
		c.S3Prefix = v
	}
	if v := os.Getenv("KANBAN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("KANBAN_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("KANBAN_TRACE_LOG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.TraceLog = b
		}
	}
	if v := os.Getenv("KANBAN_USER"); v != "" {
		c.DefaultUser = v
	}
}

// Validate rejects combinations the process cannot start with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	switch c.ImageStore {
	case ImageStoreDB:
	case ImageStoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3_bucket is required when image_store is %q", ImageStoreS3)
		}
	default:
		return fmt.Errorf("unknown image_store %q (want %q or %q)", c.ImageStore, ImageStoreDB, ImageStoreS3)
	}
	if c.BoardCacheTTL < 0 {
		return fmt.Errorf("board_cache_ttl must not be negative")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q (want text or json)", c.LogFormat)
	}
	return nil
}

// NewLogger returns a logger writing to stderr at the configured level
// and format.
func NewLogger(c Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
