package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/bft-labs/fairframe/internal/app"
	"github.com/bft-labs/fairframe/internal/bisect"
	"github.com/bft-labs/fairframe/internal/minimize"
	"github.com/bft-labs/fairframe/internal/render"
)

// Defaults for the two inputs of a parameterization.
const (
	DefaultPortNumber = 64
	DefaultLoadBound  = 0.9
)

// Log output formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
	LogFormatTint    = "tint"
)

// Config holds CLI configuration for fairframe.
type Config struct {
	PortNumber int
	LoadBound  float64

	MinDelta       float64
	Tolerance      float64
	MaxIterations  int
	GridPoints     int
	MaxEvaluations int
	XTol           float64
	MonotoneGuard  bool

	Format    string
	LogLevel  string
	LogFormat string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	mc := minimize.DefaultConfig()
	bc := bisect.DefaultConfig()
	return Config{
		PortNumber:     DefaultPortNumber,
		LoadBound:      DefaultLoadBound,
		MinDelta:       app.DefaultConfig().MinDelta,
		Tolerance:      bc.Tolerance,
		MaxIterations:  bc.MaxIterations,
		GridPoints:     mc.GridPoints,
		MaxEvaluations: mc.MaxEvaluations,
		XTol:           mc.XTol,
		MonotoneGuard:  true,
		Format:         string(render.FormatText),
		LogLevel:       zerolog.InfoLevel.String(),
		LogFormat:      LogFormatConsole,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.PortNumber < 1 {
		return fmt.Errorf("port-number must be at least 1")
	}
	if !(c.LoadBound > 0 && c.LoadBound < 1) {
		return fmt.Errorf("load-bound must be in (0,1)")
	}
	if !(c.MinDelta > 0 && c.MinDelta < 1) {
		return fmt.Errorf("min-delta must be in (0,1)")
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive")
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max-iterations must be positive")
	}
	if c.GridPoints < 2 {
		return fmt.Errorf("grid-points must be at least 2")
	}
	if c.MaxEvaluations <= 0 {
		return fmt.Errorf("max-evaluations must be positive")
	}
	if c.XTol <= 0 {
		return fmt.Errorf("xtol must be positive")
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log-level: %w", err)
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON, LogFormatTint:
	default:
		return fmt.Errorf("log-format must be one of console, json, tint")
	}
	return nil
}

// SearchConfig converts the CLI configuration into the search configuration.
func (c Config) SearchConfig() app.Config {
	cfg := app.DefaultConfig()
	cfg.MinDelta = c.MinDelta
	cfg.Minimizer.GridPoints = c.GridPoints
	cfg.Minimizer.MaxEvaluations = c.MaxEvaluations
	cfg.Minimizer.XTol = c.XTol
	cfg.Bisection.Tolerance = c.Tolerance
	cfg.Bisection.MaxIterations = c.MaxIterations
	cfg.DisableMonotoneGuard = !c.MonotoneGuard
	return cfg
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
