package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
)

// EnvPrefix prefixes every environment variable the dashboard reads.
const EnvPrefix = "SHAREDASH_"

// Config represents the application configuration.
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Data        DataConfig      `toml:"data"`
	Dashboard   DashboardConfig `toml:"dashboard"`
	Cache       CacheConfig     `toml:"cache"`
	MCP         MCPConfig       `toml:"mcp"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port      int     `toml:"port"`
	Host      string  `toml:"host"`
	RateLimit float64 `toml:"rate_limit"` // requests per second per client, 0 disables
	RateBurst int     `toml:"rate_burst"`
}

// DataConfig locates the files produced by the training pipeline.
type DataConfig struct {
	PredictionsFile string `toml:"predictions_file"`
	PricesDir       string `toml:"prices_dir"`
	ReportsDir      string `toml:"reports_dir"`
	TickersFile     string `toml:"tickers_file"` // empty uses the built-in directory
	IncludeParquet  bool   `toml:"include_parquet"`
}

// DashboardConfig holds the initial sidebar selections and display settings.
type DashboardConfig struct {
	DefaultSort   string `toml:"default_sort"`
	DefaultLimit  string `toml:"default_limit"`
	HorizonDays   int    `toml:"horizon_days"`
	DefaultPreset string `toml:"default_preset"`
}

// CacheConfig bounds the parsed-file caches.
type CacheConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// MCPConfig toggles the MCP endpoint.
type MCPConfig struct {
	Enabled bool `toml:"enabled"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)
	config.Environment = normalizeEnvironment(config.Environment)

	return config, nil
}

// LoadDotEnv exports the variables of a .env file that are not already set
// in the process environment. A missing file is not an error.
func LoadDotEnv(path string) (bool, error) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return true, nil
}

func env(name string) string {
	return os.Getenv(EnvPrefix + name)
}

// applyEnvOverrides applies SHAREDASH_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if v := env("ENV"); v != "" {
		config.Environment = v
	}
	if port := env("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := env("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if v := env("RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Server.RateLimit = f
		}
	}
	if v := env("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Server.RateBurst = n
		}
	}
	if v := env("PREDICTIONS_FILE"); v != "" {
		config.Data.PredictionsFile = v
	}
	if v := env("PRICES_DIR"); v != "" {
		config.Data.PricesDir = v
	}
	if v := env("REPORTS_DIR"); v != "" {
		config.Data.ReportsDir = v
	}
	if v := env("TICKERS_FILE"); v != "" {
		config.Data.TickersFile = v
	}
	if v := env("INCLUDE_PARQUET"); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			config.Data.IncludeParquet = b
		}
	}
	if v := env("MCP_ENABLED"); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			config.MCP.Enabled = b
		}
	}
	if level := env("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if outputs := env("LOG_OUTPUTS"); outputs != "" {
		config.Logging.Outputs = splitList(outputs)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsDevMode reports whether the dashboard runs in development mode.
func (c *Config) IsDevMode() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "dev"
}

// normalizeEnvironment maps environment aliases to their canonical short forms.
func normalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development":
		return "dev"
	case "production":
		return "prod"
	default:
		return env
	}
}
