package fairframe

import "github.com/bft-labs/fairframe/pkg/log"

// Option configures optional behavior of Parameterize and Evaluate.
type Option func(*options)

// options holds the optional configuration of one call.
type options struct {
	logger log.Logger
	config Config
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
		config: DefaultConfig(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConfig replaces the whole search configuration. Zero-valued numeric
// fields fall back to their defaults and the monotonicity guard stays on
// unless DisableMonotoneGuard is set.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithMinDelta sets the lower bound of the minimizer's search interval.
func WithMinDelta(minDelta float64) Option {
	return func(o *options) {
		o.config.MinDelta = minDelta
	}
}

// WithTolerance sets the bisection's absolute tolerance on delta.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.config.Bisection.Tolerance = tol
	}
}

// WithMaxIterations caps the number of bisection midpoints.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.config.Bisection.MaxIterations = n
	}
}

// WithGridPoints sets the minimizer's coarse grid size.
func WithGridPoints(n int) Option {
	return func(o *options) {
		o.config.Minimizer.GridPoints = n
	}
}

// WithMaxEvaluations caps the minimizer's refinement evaluations.
func WithMaxEvaluations(n int) Option {
	return func(o *options) {
		o.config.Minimizer.MaxEvaluations = n
	}
}

// WithXTol sets the minimizer's refinement tolerance, in ln(delta).
func WithXTol(xtol float64) Option {
	return func(o *options) {
		o.config.Minimizer.XTol = xtol
	}
}

// WithMonotoneGuard enables or disables the monotonicity check run after
// the bisection fallback.
func WithMonotoneGuard(enabled bool) Option {
	return func(o *options) {
		o.config.DisableMonotoneGuard = !enabled
	}
}
