// Package app wires the model, the minimizer and the bisection solver into
// the optimize-then-repair parameter search.
package app

import (
	"errors"
	"fmt"
	"math"

	"github.com/bft-labs/fairframe/internal/bisect"
	"github.com/bft-labs/fairframe/internal/domain"
	"github.com/bft-labs/fairframe/internal/minimize"
	"github.com/bft-labs/fairframe/internal/model"
	"github.com/bft-labs/fairframe/pkg/log"
)

// Parameterizer computes Fair-Frame parameters.
type Parameterizer struct {
	cfg    Config
	logger log.Logger
}

// NewParameterizer creates a Parameterizer. A nil logger discards output.
func NewParameterizer(cfg Config, logger log.Logger) (*Parameterizer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Parameterizer{cfg: cfg, logger: logger}, nil
}

// Parameterize finds the delta minimizing the objective for the given port
// count and load bound, subject to the constraint.
//
// The minimizer's optimum is accepted when it is feasible. Otherwise it is
// discarded and the bisection fallback searches for the largest feasible
// delta. An error wrapping domain.ErrInfeasible is returned alongside a
// Solution with Feasible=false when no feasible delta exists.
func (p *Parameterizer) Parameterize(portNumber int, loadBound float64) (domain.Solution, error) {
	sol := domain.Solution{PortNumber: portNumber, LoadBound: loadBound}

	if portNumber < 1 {
		return sol, fmt.Errorf("%w: port number %d must be at least 1", domain.ErrDomain, portNumber)
	}
	n := float64(portNumber)
	m, err := model.New(n, loadBound)
	if err != nil {
		return sol, err
	}
	upper := 1.0 / n
	if upper <= p.cfg.MinDelta {
		return sol, fmt.Errorf("%w: search interval [%v, %v] is empty for port number %d",
			domain.ErrDomain, p.cfg.MinDelta, upper, portNumber)
	}

	cand, err := p.minimize(m, upper)
	if err != nil {
		return sol, err
	}
	sol.Candidate = cand
	p.logger.Debug("minimizer candidate",
		log.Int("port_number", portNumber),
		log.Float64("load_bound", loadBound),
		log.Float64("delta", cand.Delta),
		log.Float64("objective", cand.Objective),
		log.Float64("constraint", cand.ConstraintValue),
		log.Int("evaluations", cand.Evaluations),
		log.Bool("converged", cand.Converged),
	)
	if !cand.Converged {
		p.logger.Warn("minimizer did not converge; validating best point",
			log.Float64("delta", cand.Delta),
			log.Int("evaluations", cand.Evaluations),
		)
	}

	delta := cand.Delta
	sol.Path = domain.PathMinimizer
	if cand.ConstraintValue >= 1.0 {
		p.logger.Warn("minimizer candidate violates constraint; running bisection",
			log.Float64("delta", cand.Delta),
			log.Float64("constraint", cand.ConstraintValue),
		)
		sol.UsedFallback = true
		sol.Path = domain.PathBisection

		delta, err = p.fallback(m, &sol)
		if errors.Is(err, bisect.ErrNoFeasible) {
			sol.Path = domain.PathNone
			p.logger.Error("no feasible delta",
				log.Int("port_number", portNumber),
				log.Float64("load_bound", loadBound),
				log.Int("iterations", sol.Bisection.Iterations),
			)
			return sol, fmt.Errorf("%w: port number %d with load bound %v is unsupported",
				domain.ErrInfeasible, portNumber, loadBound)
		}
		if err != nil {
			return sol, err
		}
	}

	t, obj, c, err := m.Evaluate(delta)
	if err != nil {
		return sol, err
	}
	sol.Delta = delta
	sol.BatchSize = t
	sol.Objective = obj
	sol.ConstraintValue = c
	sol.Feasible = c < 1.0

	p.logger.Info("parameterized",
		log.Int("port_number", portNumber),
		log.Float64("load_bound", loadBound),
		log.Float64("delta", sol.Delta),
		log.Float64("batch_size", sol.BatchSize),
		log.Float64("constraint", sol.ConstraintValue),
		log.Any("path", sol.Path),
	)
	return sol, nil
}

// Evaluate computes the model at a caller-supplied delta.
func (p *Parameterizer) Evaluate(portNumber int, loadBound, delta float64) (domain.Evaluation, error) {
	ev := domain.Evaluation{PortNumber: portNumber, LoadBound: loadBound, Delta: delta}
	if portNumber < 1 {
		return ev, fmt.Errorf("%w: port number %d must be at least 1", domain.ErrDomain, portNumber)
	}
	m, err := model.New(float64(portNumber), loadBound)
	if err != nil {
		return ev, err
	}
	t, obj, c, err := m.Evaluate(delta)
	if err != nil {
		return ev, err
	}
	ev.BatchSize = t
	ev.Objective = obj
	ev.ConstraintValue = c
	ev.Feasible = c < 1.0
	return ev, nil
}

func (p *Parameterizer) minimize(m model.Model, upper float64) (domain.Candidate, error) {
	objective := func(delta float64) float64 {
		v, err := m.Objective(delta)
		if err != nil {
			return math.Inf(1)
		}
		return v
	}
	n := m.Params().N
	res, err := minimize.Bounded(objective, p.cfg.MinDelta, upper, 1.0/(n*n), p.cfg.Minimizer)
	if err != nil {
		return domain.Candidate{}, fmt.Errorf("%w: %v", domain.ErrDomain, err)
	}

	t, obj, c, err := m.Evaluate(res.X)
	if err != nil {
		return domain.Candidate{}, err
	}
	return domain.Candidate{
		Delta:           res.X,
		Objective:       obj,
		BatchSize:       t,
		ConstraintValue: c,
		Evaluations:     res.Evaluations,
		Iterations:      res.Iterations,
		Converged:       res.Converged,
	}, nil
}

// fallback bisects (0, DeltaUpper] for the largest feasible delta. Unless the
// guard is disabled, every run is followed by a search of the interval above
// its infeasible bound, and a feasible delta found there starts a new run.
func (p *Parameterizer) fallback(m model.Model, sol *domain.Solution) (float64, error) {
	du := m.DeltaUpper()
	res, err := bisect.Supremum(m.Feasible, 0, du, p.cfg.Bisection)
	sol.Bisection = summarize(res, res.Iterations, 0)
	if err != nil {
		return 0, err
	}
	delta := res.X
	if p.cfg.DisableMonotoneGuard {
		return delta, nil
	}

	sol.GuardChecked = true
	sol.Monotone = true
	iterations := res.Iterations
	for restarts := 1; restarts <= maxGuardRestarts; restarts++ {
		above, ok := p.guard(m, res.Upper)
		if !ok {
			break
		}
		sol.Monotone = false
		p.logger.Warn("constraint is not monotone; restarting bisection above skipped feasible delta",
			log.Float64("delta", delta),
			log.Float64("upper", res.Upper),
			log.Float64("feasible", above),
		)

		// above is feasible and below DeltaUpper, so Lower ends at or above it.
		res, err = bisect.Supremum(m.Feasible, above, du, p.cfg.Bisection)
		if err != nil && !errors.Is(err, bisect.ErrNoFeasible) {
			return 0, err
		}
		iterations += res.Iterations
		delta = res.Lower
		sol.Bisection = summarize(res, iterations, restarts)
	}
	return delta, nil
}

// maxGuardRestarts bounds the restarts of one fallback. Each restart raises
// the feasible bound by at least one step of T.
const maxGuardRestarts = 64

func summarize(res bisect.Result, iterations, restarts int) domain.Bisection {
	return domain.Bisection{
		Lower:      res.Lower,
		Upper:      res.Upper,
		LastMid:    res.LastMid,
		Iterations: iterations,
		Restarts:   restarts,
		Converged:  res.Converged,
	}
}

// guard searches (upper, DeltaUpper] for a feasible delta and returns the
// highest one found. It tests the step starts of T, which are the most
// feasible points of their steps, then geometric samples between them.
func (p *Parameterizer) guard(m model.Model, upper float64) (float64, bool) {
	du := m.DeltaUpper()
	if !(upper > 0) || upper >= du {
		return 0, false
	}

	best, found := 0.0, false
	consider := func(delta float64) bool {
		if delta > upper && delta <= du && delta > best && m.Feasible(delta) {
			best, found = delta, true
			return true
		}
		return false
	}

	for _, s := range m.StepStarts(upper, du, p.cfg.GuardSteps) {
		// s may round into the step below; its first neighbour does not.
		if consider(s) || consider(s*(1+1e-12)) {
			break
		}
	}

	span := math.Log(du / upper)
	for i := p.cfg.GuardSamples; i >= 1; i-- {
		delta := upper * math.Exp(span*float64(i)/float64(p.cfg.GuardSamples))
		if delta <= best || consider(delta) {
			break
		}
	}
	return best, found
}
