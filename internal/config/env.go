package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/types"
)

// Env holds overrides read from CARDINAL_* environment variables. Unset
// variables leave the file configuration alone.
type Env struct {
	// Env: CARDINAL_LOG_LEVEL
	LogLevel string `envconfig:"LOG_LEVEL"`
	// Env: CARDINAL_NO_COLOR
	NoColor *bool `envconfig:"NO_COLOR"`
	// Env: CARDINAL_MAPS_DIR
	MapsDir string `envconfig:"MAPS_DIR"`
	// Env: CARDINAL_WATCH
	Watch *bool `envconfig:"WATCH"`
	// Env: CARDINAL_SEED
	Seed *uint64 `envconfig:"SEED"`
	// Env: CARDINAL_FATAL_ERRORS (comma separated)
	FatalErrors []string `envconfig:"FATAL_ERRORS"`
}

// LoadEnv reads the CARDINAL_* environment.
func LoadEnv() (*Env, error) {
	var e Env
	if err := envconfig.Process("cardinal", &e); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	return &e, nil
}

// Apply copies every set override onto cfg.
func (e *Env) Apply(cfg *Config) {
	if e.LogLevel != "" {
		cfg.Log.Level = types.LogLevel(strings.ToLower(e.LogLevel))
	}
	if e.NoColor != nil {
		cfg.Log.NoColor = *e.NoColor
	}
	if e.MapsDir != "" {
		cfg.Maps.Dir = e.MapsDir
	}
	if e.Watch != nil {
		cfg.Maps.Watch = *e.Watch
	}
	if e.Seed != nil {
		cfg.Engine.Seed = *e.Seed
	}
	if len(e.FatalErrors) > 0 {
		cfg.Engine.FatalErrors = e.FatalErrors
	}
}
