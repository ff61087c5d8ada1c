package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// Config defines the *single*, authoritative configuration for the delivery app.
type Config struct {
	Token      string
	Endpoint   string
	Device     string
	Recipients []string

	Redis RedisConfig
}

// UpdateConfigWithEnvOverrides applies environment variables and final validation.
func UpdateConfigWithEnvOverrides(cfg *Config, logger *slog.Logger) (*Config, error) {
	logger.Debug("Applying environment variable overrides...")

	// 1. Apply Environment Overrides
	if val := os.Getenv("PUSHOVER_TOKEN"); val != "" {
		logger.Debug("Overriding config value", "key", "PUSHOVER_TOKEN", "source", "env")
		cfg.Token = val
	}
	if val := os.Getenv("PUSHOVER_ENDPOINT"); val != "" {
		logger.Debug("Overriding config value", "key", "PUSHOVER_ENDPOINT", "source", "env")
		cfg.Endpoint = val
	}
	if val := os.Getenv("PUSHOVER_DEVICE"); val != "" {
		logger.Debug("Overriding config value", "key", "PUSHOVER_DEVICE", "source", "env")
		cfg.Device = val
	}
	if val := os.Getenv("PUSHOVER_RECIPIENTS"); val != "" {
		logger.Debug("Overriding config value", "key", "PUSHOVER_RECIPIENTS", "source", "env")
		rawRecipients := strings.Split(val, ",")
		var cleanRecipients []string
		for _, r := range rawRecipients {
			if trimmed := strings.TrimSpace(r); trimmed != "" {
				cleanRecipients = append(cleanRecipients, trimmed)
			}
		}
		cfg.Recipients = cleanRecipients
	}

	// Redis Overrides
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		cfg.Redis.Addr = val
		cfg.Redis.Enabled = true
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		cfg.Redis.Password = val
	}
	if val := os.Getenv("REDIS_DB"); val != "" {
		if db, err := strconv.Atoi(val); err == nil {
			cfg.Redis.DB = db
		}
	}
	if val := os.Getenv("REDIS_ENABLED"); val != "" {
		enabled, _ := strconv.ParseBool(val)
		cfg.Redis.Enabled = enabled
	}

	// 2. Final Validation
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required (set via YAML or PUSHOVER_TOKEN env var)")
	}
	// Endpoint stays empty here; the Dispatcher falls back to its default.

	logger.Debug("Configuration finalized and validated successfully")
	return cfg, nil
}
