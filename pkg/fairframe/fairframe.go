package fairframe

import (
	"github.com/bft-labs/fairframe/internal/app"
	"github.com/bft-labs/fairframe/internal/domain"
)

// Defaults for the two inputs of a parameterization.
const (
	DefaultPortNumber = 64
	DefaultLoadBound  = 0.9
)

// Re-export types so callers need not import internal packages.
type (
	// Config holds the tuning knobs of the parameter search.
	Config = app.Config

	// Solution is the record returned by Parameterize.
	Solution = domain.Solution

	// Candidate is the minimizer's unconstrained optimum.
	Candidate = domain.Candidate

	// Bisection summarizes a fallback run.
	Bisection = domain.Bisection

	// Evaluation is the model evaluated at one delta.
	Evaluation = domain.Evaluation

	// Path identifies the stage that produced a Solution.
	Path = domain.Path
)

// Paths.
const (
	PathNone      = domain.PathNone
	PathMinimizer = domain.PathMinimizer
	PathBisection = domain.PathBisection
)

// Errors returned by this package. Check with errors.Is.
var (
	ErrDomain        = domain.ErrDomain
	ErrInfeasible    = domain.ErrInfeasible
	ErrInvalidConfig = domain.ErrInvalidConfig
)

// DefaultConfig returns the default search configuration.
func DefaultConfig() Config {
	return app.DefaultConfig()
}

// Parameterize computes the Fair-Frame parameters for portNumber and
// loadBound. See the package documentation for the search.
//
// When no feasible delta exists the returned Solution has Feasible=false
// and the error wraps ErrInfeasible.
func Parameterize(portNumber int, loadBound float64, opts ...Option) (Solution, error) {
	p, err := newParameterizer(opts)
	if err != nil {
		return Solution{PortNumber: portNumber, LoadBound: loadBound}, err
	}
	return p.Parameterize(portNumber, loadBound)
}

// Evaluate computes the batch size, objective and constraint at delta.
func Evaluate(portNumber int, loadBound, delta float64, opts ...Option) (Evaluation, error) {
	p, err := newParameterizer(opts)
	if err != nil {
		return Evaluation{PortNumber: portNumber, LoadBound: loadBound, Delta: delta}, err
	}
	return p.Evaluate(portNumber, loadBound, delta)
}

func newParameterizer(opts []Option) (*app.Parameterizer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return app.NewParameterizer(o.config, o.logger)
}
