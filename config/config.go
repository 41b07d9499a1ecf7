// Package config loads process settings from the environment. Command-line
// flags override these values.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/milk9111/fpscontroller/logger"
)

// Config holds process configuration for the fpscontroller commands.
type Config struct {
	LogLevel   string `env:"FPSCONTROLLER_LOG_LEVEL"   envDefault:"info"`
	LogFormat  string `env:"FPSCONTROLLER_LOG_FORMAT"  envDefault:"console"`
	PrefabsDir string `env:"FPSCONTROLLER_PREFABS_DIR" envDefault:"prefabs"`
	RedisAddr  string `env:"FPSCONTROLLER_REDIS_ADDR"`
	// TickRate is the sandbox update rate in ticks per second. Scenarios
	// carry their own rate.
	TickRate float64 `env:"FPSCONTROLLER_TICK_RATE" envDefault:"60"`
	// Workers bounds parallel controller updates. Zero means unbounded.
	Workers int `env:"FPSCONTROLLER_WORKERS"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the process config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("config: tick rate must be positive, got %v", c.TickRate)
	case c.Workers < 0:
		return fmt.Errorf("config: workers must be non-negative, got %d", c.Workers)
	}
	switch c.LogFormat {
	case "text", "json", "console":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}

// Logger returns the logger settings for this config.
func (c Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat}
}
