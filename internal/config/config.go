package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabasePath string `envconfig:"RELAY_DB_PATH" default:"database/relay.db"`
	ProfilePath  string `envconfig:"RELAY_PROFILES" default:"profiles.toml"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("RELAY_DB_PATH is required")
	}
	if strings.TrimSpace(c.ProfilePath) == "" {
		return fmt.Errorf("RELAY_PROFILES is required")
	}
	return nil
}
