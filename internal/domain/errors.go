package domain

import "errors"

// Domain errors represent error conditions in the fairframe domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrDomain is returned when an input lies outside the range where the
	// model functions are defined (rho outside (0,1), delta <= 0, n <= 0).
	ErrDomain = errors.New("fairframe: input outside model domain")

	// ErrInfeasible is returned when no delta satisfies the constraint for
	// the requested port count and load bound. Retrying with the same inputs
	// yields the same result.
	ErrInfeasible = errors.New("fairframe: no feasible delta found")

	// ErrInvalidConfig is returned when solver configuration validation fails.
	ErrInvalidConfig = errors.New("fairframe: invalid configuration")
)
