// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config controls both the game and the headless simulator. Command-line flags
// override these values.
type Config struct {
	// Prefab is the party spec under prefabs/.
	Prefab string `env:"TANDEM_PREFAB" envDefault:"party.yaml"`
	// Scenario is a tengo script under prefabs/scripts. Empty runs no script.
	Scenario string `env:"TANDEM_SCENARIO"`
	Debug    bool   `env:"TANDEM_DEBUG"`
	// Watch enables hot reload of prefabs and scripts from disk.
	Watch    bool `env:"TANDEM_WATCH" envDefault:"true"`
	MaxTicks int  `env:"TANDEM_MAX_TICKS" envDefault:"1800"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Prefab = strings.TrimSpace(cfg.Prefab)
	cfg.Scenario = strings.TrimSpace(cfg.Scenario)
	if cfg.Prefab == "" {
		cfg.Prefab = "party.yaml"
	}
	if cfg.MaxTicks < 0 {
		return Config{}, fmt.Errorf("parse env: TANDEM_MAX_TICKS must not be negative, got %d", cfg.MaxTicks)
	}
	return cfg, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
