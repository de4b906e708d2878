// Package bisect finds the boundary of a monotone predicate by bisection.
package bisect

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoFeasible is returned when no tested point satisfied the predicate.
var ErrNoFeasible = errors.New("bisect: no feasible value found")

// Predicate reports whether x is feasible. It is assumed true near the lower
// end of the bracket and false beyond some threshold.
type Predicate func(x float64) bool

// Config controls the search.
type Config struct {
	// Tolerance is the absolute bracket width at which the search stops.
	// Default: 1e-10
	Tolerance float64

	// MaxIterations caps the number of midpoints tested.
	// Default: 1000
	MaxIterations int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Tolerance:     1e-10,
		MaxIterations: 1000,
	}
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.Tolerance <= 0 {
		c.Tolerance = d.Tolerance
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = d.MaxIterations
	}
}

// Result is the outcome of Supremum.
type Result struct {
	// X is the largest midpoint found feasible. It equals Lower.
	X float64
	// Lower and Upper are the final bracket. Lower is feasible; Upper is
	// infeasible unless it was never moved.
	Lower, Upper float64
	// LastMid is the last midpoint tested.
	LastMid float64
	// Iterations counts predicate evaluations.
	Iterations int
	// Converged is true when the bracket shrank to Tolerance.
	Converged bool
}

// Supremum bisects [lower, upper] for the largest x with feasible(x).
// lower itself is never tested; it stands for the feasible limit.
//
// The returned X is the tightest bound proven feasible rather than the last
// midpoint, so a search that stops on MaxIterations still returns a feasible
// point whenever one was seen.
func Supremum(feasible Predicate, lower, upper float64, cfg Config) (Result, error) {
	cfg.SetDefaults()
	if math.IsNaN(lower) || math.IsNaN(upper) || lower >= upper {
		return Result{}, fmt.Errorf("bisect: invalid bracket [%v, %v]", lower, upper)
	}

	res := Result{Lower: lower, Upper: upper}
	found := false
	for res.Iterations < cfg.MaxIterations {
		res.Iterations++
		mid := 0.5 * (res.Lower + res.Upper)
		res.LastMid = mid
		if feasible(mid) {
			res.Lower = mid
			found = true
		} else {
			res.Upper = mid
		}
		if math.Abs(res.Upper-res.Lower) <= cfg.Tolerance {
			res.Converged = true
			break
		}
	}

	if !found {
		return res, ErrNoFeasible
	}
	res.X = res.Lower
	return res, nil
}
