// Package minimize finds the minimum of a scalar function on a closed interval.
//
// The search never evaluates the function outside [lower, upper]. It runs in
// log space when the interval spans several decades, scans a coarse grid to
// locate the basin of the best point, then refines inside that basin with
// Brent's bounded method. The grid pass makes the search robust to the
// step discontinuities a ceiling-rounded objective has.
package minimize

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBounds is returned when the search interval is empty or not finite.
var ErrInvalidBounds = errors.New("minimize: invalid bounds")

// Func is a scalar objective.
type Func func(x float64) float64

// Config controls the search.
type Config struct {
	// GridPoints is the number of coarse grid points, both bounds included.
	// Default: 64
	GridPoints int

	// XTol is the absolute tolerance of the refinement, in search coordinates
	// (ln x when LogScale is set).
	// Default: 1e-9
	XTol float64

	// MaxEvaluations caps the refinement's objective evaluations.
	// Default: 500
	MaxEvaluations int

	// LogScale searches over ln(x) instead of x. Requires lower > 0.
	// Default: true
	LogScale bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GridPoints:     64,
		XTol:           1e-9,
		MaxEvaluations: 500,
		LogScale:       true,
	}
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.GridPoints < 2 {
		c.GridPoints = d.GridPoints
	}
	if c.XTol <= 0 {
		c.XTol = d.XTol
	}
	if c.MaxEvaluations <= 0 {
		c.MaxEvaluations = d.MaxEvaluations
	}
}

// Result is the outcome of Bounded.
type Result struct {
	// X is the minimizing argument, within [lower, upper].
	X float64
	// F is f(X).
	F float64
	// Evaluations counts calls to f, grid included.
	Evaluations int
	// Iterations counts refinement steps.
	Iterations int
	// Converged is false when the refinement hit MaxEvaluations.
	// The result is still the best point seen.
	Converged bool
}

// Bounded minimizes f over [lower, upper] starting from guess.
// The guess is clamped into the interval and always evaluated, so the
// result is never worse than f(guess).
func Bounded(f Func, lower, upper, guess float64, cfg Config) (Result, error) {
	cfg.SetDefaults()
	if math.IsNaN(lower) || math.IsNaN(upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) || lower >= upper {
		return Result{}, fmt.Errorf("%w: [%v, %v]", ErrInvalidBounds, lower, upper)
	}
	if cfg.LogScale && lower <= 0 {
		return Result{}, fmt.Errorf("%w: log-scale search needs lower > 0, got %v", ErrInvalidBounds, lower)
	}

	s := newScale(lower, upper, cfg.LogScale)
	evals := 0
	g := func(u float64) float64 {
		evals++
		return f(s.toX(u))
	}

	best := Result{X: clamp(guess, lower, upper)}
	if math.IsNaN(guess) {
		best.X = lower
	}
	best.F = f(best.X)
	evals++

	// Coarse grid over the search coordinate.
	n := cfg.GridPoints
	us := make([]float64, n)
	k, fk := 0, math.Inf(1)
	for i := range us {
		us[i] = s.lo + (s.hi-s.lo)*float64(i)/float64(n-1)
		if i == n-1 {
			us[i] = s.hi
		}
		if fu := g(us[i]); fu < fk {
			k, fk = i, fu
		}
	}
	if fk < best.F {
		best.X, best.F = s.toX(us[k]), fk
	}

	// Refine between the neighbours of the best grid point.
	a := us[max(k-1, 0)]
	b := us[min(k+1, n-1)]
	br := brent(g, a, b, cfg.XTol, cfg.MaxEvaluations)
	if br.fx < best.F {
		best.X, best.F = s.toX(br.x), br.fx
	}

	best.Evaluations = evals
	best.Iterations = br.iterations
	best.Converged = br.converged
	return best, nil
}

// scale maps search coordinates to arguments, clamped to the bounds.
type scale struct {
	lo, hi       float64
	lower, upper float64
	log          bool
}

func newScale(lower, upper float64, logScale bool) scale {
	s := scale{lo: lower, hi: upper, lower: lower, upper: upper, log: logScale}
	if logScale {
		s.lo, s.hi = math.Log(lower), math.Log(upper)
	}
	return s
}

func (s scale) toX(u float64) float64 {
	x := u
	if s.log {
		x = math.Exp(u)
	}
	return clamp(x, s.lower, s.upper)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
