package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"flexknot/domain/foreground"
	"flexknot/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Debug  DebugConfig
	Data   DataConfig
	Engine EngineConfig
	Sweep  SweepConfig
	Ledger LedgerConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DebugConfig holds the operational listener settings (metrics + pprof)
type DebugConfig struct {
	Port    string
	Enabled bool
}

// DataConfig holds spectrum file settings
type DataConfig struct {
	File       string
	FreqColumn int
	TempColumn int
	SkipHeader int
	TrimHead   int
	TrimTail   int
}

// EngineConfig holds likelihood engine settings
type EngineConfig struct {
	Order      int
	Foreground string
	Sigma      float64
}

// SweepConfig holds batch evaluation settings
type SweepConfig struct {
	Workers int
}

// LedgerConfig holds evaluation ledger settings
type LedgerConfig struct {
	DatabaseURL string
	MemoryLimit int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("FLEX_PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Debug: DebugConfig{
			Port:    getEnvOrDefault("FLEX_DEBUG_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("FLEX_DEBUG_ENABLED", true),
		},
		Data: DataConfig{
			File:       getEnvOrDefault("FLEX_DATA_FILE", ""),
			FreqColumn: getEnvIntOrDefault("FLEX_FREQ_COLUMN", 0),
			TempColumn: getEnvIntOrDefault("FLEX_TEMP_COLUMN", 2),
			SkipHeader: getEnvIntOrDefault("FLEX_SKIP_HEADER", 1),
			TrimHead:   getEnvIntOrDefault("FLEX_TRIM_HEAD", 3),
			TrimTail:   getEnvIntOrDefault("FLEX_TRIM_TAIL", 2),
		},
		Engine: EngineConfig{
			Order:      getEnvIntOrDefault("FLEX_ORDER", 5),
			Foreground: getEnvOrDefault("FLEX_FOREGROUND", "edges_power_law"),
			Sigma:      getEnvFloatOrDefault("FLEX_SIGMA", 0.025),
		},
		Sweep: SweepConfig{
			Workers: getEnvIntOrDefault("FLEX_SWEEP_WORKERS", runtime.NumCPU()),
		},
		Ledger: LedgerConfig{
			DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
			MemoryLimit: getEnvIntOrDefault("FLEX_LEDGER_LIMIT", 10000),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.File == "" {
		return errors.ConfigInvalid("FLEX_DATA_FILE is required")
	}
	if config.Engine.Order < 0 {
		return errors.ConfigInvalid("FLEX_ORDER must be non-negative")
	}
	if config.Engine.Sigma <= 0 {
		return errors.ConfigInvalid("FLEX_SIGMA must be positive")
	}
	if _, err := foreground.Lookup(config.Engine.Foreground); err != nil {
		return errors.Wrap(err, "FLEX_FOREGROUND is not a known model")
	}
	if config.Sweep.Workers < 1 {
		return errors.ConfigInvalid("FLEX_SWEEP_WORKERS must be at least 1")
	}
	if config.Ledger.MemoryLimit < 1 {
		return errors.ConfigInvalid("FLEX_LEDGER_LIMIT must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// Duration parsing helper (for future use)
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
