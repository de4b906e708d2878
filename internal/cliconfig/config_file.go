package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML keys. Pointer fields distinguish
// "unset" from false.
type FileConfig struct {
	PortNumber     int     `toml:"port_number"`
	LoadBound      float64 `toml:"load_bound"`
	MinDelta       float64 `toml:"min_delta"`
	Tolerance      float64 `toml:"tolerance"`
	MaxIterations  int     `toml:"max_iterations"`
	GridPoints     int     `toml:"grid_points"`
	MaxEvaluations int     `toml:"max_evaluations"`
	XTol           float64 `toml:"xtol"`
	MonotoneGuard  *bool   `toml:"monotone_guard"`
	Format         string  `toml:"format"`
	LogLevel       string  `toml:"log_level"`
	LogFormat      string  `toml:"log_format"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.fairframe/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".fairframe", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt("port-number", fc.PortNumber, &cfg.PortNumber)
	s.setFloat("load-bound", fc.LoadBound, &cfg.LoadBound)
	s.setFloat("min-delta", fc.MinDelta, &cfg.MinDelta)
	s.setFloat("tolerance", fc.Tolerance, &cfg.Tolerance)
	s.setInt("max-iterations", fc.MaxIterations, &cfg.MaxIterations)
	s.setInt("grid-points", fc.GridPoints, &cfg.GridPoints)
	s.setInt("max-evaluations", fc.MaxEvaluations, &cfg.MaxEvaluations)
	s.setFloat("xtol", fc.XTol, &cfg.XTol)
	s.setBool("monotone-guard", fc.MonotoneGuard, &cfg.MonotoneGuard)

	s.setString("format", fc.Format, &cfg.Format)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
