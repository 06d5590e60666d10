package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"it-helpdesk/pkg/importer"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Host            string
	Port            string
	AssetSchema     string
	AssetSchemaFile string
	MaxUploadBytes  int64
	LogLevel        string
	EnableMetrics   bool
	ShutdownTimeout time.Duration
}

func Load() *Config {
	config := &Config{
		Host:            os.Getenv("ADDR_HOST"), // empty binds all interfaces
		Port:            getEnv("PORT", "5000"),
		AssetSchema:     getEnv("ASSET_SCHEMA", importer.SchemaMinimal),
		AssetSchemaFile: os.Getenv("ASSET_SCHEMA_FILE"),
		MaxUploadBytes:  20 << 20, // 20 MB
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		EnableMetrics:   os.Getenv("ENABLE_METRICS") == "true",
		ShutdownTimeout: 10 * time.Second,
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.MaxUploadBytes = n
		}
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.ShutdownTimeout = d
		}
	}

	return config
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return errors.Wrapf(ErrInvalidConfig, "PORT must be between 1 and 65535, got %q", c.Port)
	}

	if c.AssetSchemaFile == "" && !importer.IsBuiltinSchema(c.AssetSchema) {
		return errors.Wrapf(ErrInvalidConfig, "ASSET_SCHEMA must be %q or %q, got %q",
			importer.SchemaMinimal, importer.SchemaExtended, c.AssetSchema)
	}

	if c.MaxUploadBytes <= 0 {
		return errors.Wrap(ErrInvalidConfig, "MAX_UPLOAD_BYTES must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown LOG_LEVEL %q", c.LogLevel)
	}

	if c.ShutdownTimeout <= 0 {
		return errors.Wrap(ErrInvalidConfig, "SHUTDOWN_TIMEOUT must be positive")
	}

	return nil
}

// LoadAndValidate loads the configuration from the environment and validates it.
func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
