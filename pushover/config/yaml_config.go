package config

import (
	"log/slog"
)

type YamlRedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Enabled  bool   `yaml:"enabled"`
}

// YamlConfig is the structure that mirrors the raw local.yaml file.
type YamlConfig struct {
	Token       string          `yaml:"token"`
	Endpoint    string          `yaml:"endpoint"`
	Device      string          `yaml:"device"`
	Recipients  []string        `yaml:"recipients"`
	RedisConfig YamlRedisConfig `yaml:"redis"`
}

// NewConfigFromYaml converts the YamlConfig into a clean, base Config struct.
func NewConfigFromYaml(baseCfg *YamlConfig, logger *slog.Logger) (*Config, error) {
	logger.Debug("Mapping YAML config to base config struct")

	cfg := &Config{
		Token:      baseCfg.Token,
		Endpoint:   baseCfg.Endpoint,
		Device:     baseCfg.Device,
		Recipients: baseCfg.Recipients,
		Redis: RedisConfig{
			Addr:     baseCfg.RedisConfig.Addr,
			Password: baseCfg.RedisConfig.Password,
			DB:       baseCfg.RedisConfig.DB,
			Enabled:  baseCfg.RedisConfig.Enabled,
		},
	}

	logger.Debug("YAML config mapping complete",
		"endpoint", cfg.Endpoint,
		"recipients", len(cfg.Recipients),
	)

	return cfg, nil
}
