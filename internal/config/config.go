// Package config loads ledger configuration from the environment, with
// optional .env support for local development.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

// Config selects and parameterizes the storage backend.
type Config struct {
	// Backend is one of memory, sqlite, redis.
	Backend string `env:"TAGZI_BACKEND" envDefault:"sqlite"`

	SQLitePath string `env:"TAGZI_SQLITE_PATH" envDefault:"./data/tagzi.db"`

	RedisAddr     string `env:"TAGZI_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"TAGZI_REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"TAGZI_REDIS_DB" envDefault:"0"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"TAGZI_LOG_LEVEL" envDefault:"info"`
}

var validBackends = []string{"memory", "sqlite", "redis"}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration, collecting every problem into one
// error.
func (c *Config) Validate() error {
	var problems []string

	valid := false
	for _, b := range validBackends {
		if c.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		problems = append(problems, fmt.Sprintf("invalid backend %q: must be one of %v", c.Backend, validBackends))
	}

	if c.Backend == "sqlite" && strings.TrimSpace(c.SQLitePath) == "" {
		problems = append(problems, "sqlite path cannot be empty when using the sqlite backend")
	}
	if c.Backend == "redis" && strings.TrimSpace(c.RedisAddr) == "" {
		problems = append(problems, "redis address cannot be empty when using the redis backend")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
