// Package config loads the cardinal configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/diag"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/logger"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/types"
)

var cfgLog = logger.New("config")

// validate is the shared validator instance
var validate = validator.New()

// Config represents the cardinal configuration
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Maps   MapsConfig   `yaml:"maps"`
	Engine EngineConfig `yaml:"engine"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level   types.LogLevel `yaml:"level"`
	NoColor bool           `yaml:"no_color"`
}

// MapsConfig locates map documents
type MapsConfig struct {
	Dir        string `yaml:"dir" validate:"required"`
	Watch      bool   `yaml:"watch"`
	DebounceMS int    `yaml:"debounce_ms" validate:"min=0,max=60000"`
}

// EngineConfig tunes match loading and evaluation
type EngineConfig struct {
	// FatalErrors lists the diagnostic kinds that fail a whole match load,
	// e.g. "unresolved-reference".
	FatalErrors []string `yaml:"fatal_errors"`
	// Seed drives random filters and spawn points. 0 seeds from the clock.
	Seed uint64 `yaml:"seed"`
	// CaseSensitiveIDs disables the case-insensitive id lookup tiers.
	CaseSensitiveIDs bool `yaml:"case_sensitive_ids"`
}

// FatalKinds parses FatalErrors.
func (c *EngineConfig) FatalKinds() ([]diag.Kind, error) {
	kinds := make([]diag.Kind, 0, len(c.FatalErrors))
	for _, name := range c.FatalErrors {
		k, err := diag.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// DefaultConfigPath returns the default config file path (~/.cardinal/config.yaml).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".cardinal", "config.yaml")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: types.LogLevelInfo,
		},
		Maps: MapsConfig{
			Dir:        "maps",
			Watch:      false,
			DebounceMS: 500,
		},
		Engine: EngineConfig{
			FatalErrors: []string{diag.MissingChild.String()},
		},
	}
}

// Validate checks all Config fields and returns a multi-error report.
// Call this AFTER CLI and environment overrides have been applied.
func (c *Config) Validate() error {
	var errs []string

	if !c.Log.Level.Valid() {
		errs = append(errs, fmt.Sprintf("log.level: unknown log level %q (valid: trace, debug, info, warn, error)", c.Log.Level))
	}

	if err := validate.Struct(c.Maps); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs = append(errs, err.Error())
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case "Dir":
				errs = append(errs, "maps.dir: must not be empty")
			case "DebounceMS":
				errs = append(errs, fmt.Sprintf("maps.debounce_ms: must be 0-60000 (got %d)", c.Maps.DebounceMS))
			default:
				errs = append(errs, fmt.Sprintf("maps.%s: %s", fe.Field(), fe.Tag()))
			}
		}
	}

	if _, err := c.Engine.FatalKinds(); err != nil {
		errs = append(errs, "engine.fatal_errors: "+err.Error())
	}

	if len(errs) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for i, e := range errs {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, e)
	}
	return errors.New(sb.String())
}

// isUnknownFieldError returns true if the error is from yaml.Decoder.KnownFields(true)
// detecting an unrecognized key (e.g. typo like "mpas:").
func isUnknownFieldError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found in type")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
// Note: Load does NOT call Validate(). Callers should apply overrides
// first, then call cfg.Validate() themselves.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	// Try strict decode to warn about unknown fields
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if isUnknownFieldError(err) {
			cfgLog.Warn("config has unknown fields (ignored): %v", err)
			// Re-parse without strict mode for forward compatibility
			cfg = DefaultConfig()
			if err2 := yaml.Unmarshal(data, cfg); err2 != nil {
				return nil, fmt.Errorf("config parse error: %w", err2)
			}
		} else {
			return nil, fmt.Errorf("config parse error: %w", err)
		}
	}

	return cfg, nil
}
