package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvDBPath       = "PRISM_DB_PATH"
	EnvChunkBudget  = "PRISM_CHUNK_BUDGET"
	EnvWorkers      = "PRISM_WORKERS"
	EnvMaxFileBytes = "PRISM_MAX_FILE_BYTES"
	EnvLogLevel     = "PRISM_LOG_LEVEL"
	EnvExclude      = "PRISM_EXCLUDE"
)

const (
	// DefaultDBPath is the directory holding the index database
	DefaultDBPath = "~/.prism/indices"

	// DBFileName is the database file created inside the DB path
	DBFileName = "prism.db"

	DefaultChunkBudget  = 512
	DefaultMaxFileBytes = 1024 * 1024
)

// Config holds all configuration for the server
type Config struct {
	DBPath       string // Directory, "~" expanded
	ChunkBudget  int
	Workers      int
	MaxFileBytes int64
	LogLevel     slog.Level
	Exclude      []string
}

// DBFile returns the full path of the database file
func (c *Config) DBFile() string {
	return filepath.Join(c.DBPath, DBFileName)
}

// Load reads configuration from the environment.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPath, err := expandHome(getEnv(EnvDBPath, DefaultDBPath))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBPath:  dbPath,
		Exclude: splitList(os.Getenv(EnvExclude)),
	}

	if cfg.ChunkBudget, err = positiveInt(EnvChunkBudget, DefaultChunkBudget); err != nil {
		return nil, err
	}
	if cfg.Workers, err = positiveInt(EnvWorkers, runtime.NumCPU()); err != nil {
		return nil, err
	}
	maxBytes, err := positiveInt(EnvMaxFileBytes, DefaultMaxFileBytes)
	if err != nil {
		return nil, err
	}
	cfg.MaxFileBytes = int64(maxBytes)

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv(EnvLogLevel, "info"))); err != nil {
		return nil, fmt.Errorf("%s must be one of debug, info, warn, error: %w", EnvLogLevel, err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func positiveInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}

// splitList splits a comma separated list, dropping blank entries
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
