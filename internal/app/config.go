package app

import (
	"fmt"

	"github.com/bft-labs/fairframe/internal/bisect"
	"github.com/bft-labs/fairframe/internal/domain"
	"github.com/bft-labs/fairframe/internal/minimize"
)

// Config holds the tuning knobs of the parameter search.
type Config struct {
	// MinDelta is the lower bound of the minimizer's search interval.
	// The upper bound is always 1/n.
	MinDelta float64

	// Minimizer configures the bounded minimizer.
	Minimizer minimize.Config

	// Bisection configures the fallback solver.
	Bisection bisect.Config

	// DisableMonotoneGuard turns off the search above the bisection result
	// for feasible steps the bisection skipped. The zero value keeps the
	// guard on.
	DisableMonotoneGuard bool

	// GuardSamples is the number of geometric samples taken by the guard
	// in addition to the step starts of T.
	GuardSamples int

	// GuardSteps caps the number of step starts the guard tests per run.
	GuardSteps int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinDelta:     1e-12,
		Minimizer:    minimize.DefaultConfig(),
		Bisection:    bisect.DefaultConfig(),
		GuardSamples: 64,
		GuardSteps:   4096,
	}
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	if c.MinDelta == 0 {
		c.MinDelta = 1e-12
	}
	if c.GuardSamples <= 0 {
		c.GuardSamples = 64
	}
	if c.GuardSteps <= 0 {
		c.GuardSteps = 4096
	}
	c.Minimizer.SetDefaults()
	c.Bisection.SetDefaults()
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if !(c.MinDelta > 0) || c.MinDelta >= 1 {
		return fmt.Errorf("%w: min delta %v must be in (0,1)", domain.ErrInvalidConfig, c.MinDelta)
	}
	if c.Minimizer.GridPoints < 2 {
		return fmt.Errorf("%w: grid points must be at least 2", domain.ErrInvalidConfig)
	}
	if c.Bisection.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive", domain.ErrInvalidConfig)
	}
	if c.Bisection.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive", domain.ErrInvalidConfig)
	}
	return nil
}
