// Package model evaluates the Fair-Frame cost model.
//
// Three relations are defined over a port count n, a load bound rho and a
// per-round failure probability delta:
//
//	gamma      = rho * exp(1 - rho)
//	T          = ceil( ln(2n/delta) / ln(1/gamma) )
//	objective  = 2T + 2*delta*T*n*(1 + (1 + 3*rho*T + rho^2*T^2)/(1 + rho*T))
//	constraint = delta * (1/rho + n + n*rho*T)
//
// A delta is feasible when its constraint value is strictly below 1.
package model

import (
	"fmt"
	"math"

	"github.com/bft-labs/fairframe/internal/domain"
)

// Model is the cost model bound to one (n, rho) pair.
type Model struct {
	n        float64
	rho      float64
	logGamma float64 // ln(1/gamma), positive for rho in (0,1)
}

// New validates n and rho and returns the model for them.
func New(n, rho float64) (Model, error) {
	p := domain.Params{N: n, Rho: rho}
	if err := p.Validate(); err != nil {
		return Model{}, err
	}
	gamma := rho * math.Exp(1.0-rho)
	lg := math.Log(1.0 / gamma)
	if !(lg > 0) {
		// rho so close to 1 that gamma rounds to 1.
		return Model{}, fmt.Errorf("%w: load bound %v too close to 1", domain.ErrDomain, rho)
	}
	return Model{n: n, rho: rho, logGamma: lg}, nil
}

// Params returns the parameters the model was built from.
func (m Model) Params() domain.Params {
	return domain.Params{N: m.n, Rho: m.rho}
}

// BatchSize returns T at delta. delta must lie in (0, 2n).
func (m Model) BatchSize(delta float64) (float64, error) {
	if math.IsNaN(delta) || delta <= 0 || delta >= 2.0*m.n {
		return 0, fmt.Errorf("%w: delta %v must be in (0, %v)", domain.ErrDomain, delta, 2.0*m.n)
	}
	return m.batchSize(delta), nil
}

// Objective returns the expected cost at delta.
func (m Model) Objective(delta float64) (float64, error) {
	t, err := m.BatchSize(delta)
	if err != nil {
		return 0, err
	}
	return m.objective(delta, t), nil
}

// Constraint returns the constraint value at delta.
func (m Model) Constraint(delta float64) (float64, error) {
	t, err := m.BatchSize(delta)
	if err != nil {
		return 0, err
	}
	return m.constraint(delta, t), nil
}

// Feasible reports whether delta satisfies the constraint.
// Deltas outside the model domain are never feasible.
func (m Model) Feasible(delta float64) bool {
	c, err := m.Constraint(delta)
	return err == nil && c < 1.0
}

// DeltaUpper returns the delta at which the constraint reaches 1 with T held
// at its minimum of 1. Since T >= 1, no delta above it is feasible.
func (m Model) DeltaUpper() float64 {
	return 1.0 / (1.0/m.rho + m.n + m.n*m.rho)
}

// StepStarts returns, highest first, at most limit deltas in (lo, hi] at
// which T steps to a new value. T = k on [2n*gamma^k, 2n*gamma^(k-1)) and the
// constraint grows linearly in delta there, so a step contains a feasible
// delta only if its start is feasible.
func (m Model) StepStarts(lo, hi float64, limit int) []float64 {
	if !(lo < hi) || hi <= 0 || limit <= 0 {
		return nil
	}
	top := math.Min(hi, 2.0*m.n)
	var starts []float64
	for k := m.batchSize(top); len(starts) < limit; k++ {
		s := 2.0 * m.n * math.Exp(-k*m.logGamma)
		if s <= lo {
			break
		}
		if s <= hi {
			starts = append(starts, s)
		}
	}
	return starts
}

// Evaluate computes T, the objective and the constraint at delta.
func (m Model) Evaluate(delta float64) (t, objective, constraint float64, err error) {
	t, err = m.BatchSize(delta)
	if err != nil {
		return 0, 0, 0, err
	}
	return t, m.objective(delta, t), m.constraint(delta, t), nil
}

func (m Model) batchSize(delta float64) float64 {
	t := math.Ceil(math.Log(2.0*m.n/delta) / m.logGamma)
	if t < 1 {
		// ln(2n/delta) rounds to <= 0 only as delta approaches 2n.
		t = 1
	}
	return t
}

func (m Model) objective(delta, t float64) float64 {
	rt := m.rho * t
	return 2.0*t + 2.0*delta*t*m.n*(1.0+(1.0+3.0*rt+rt*rt)/(1.0+rt))
}

func (m Model) constraint(delta, t float64) float64 {
	return delta * (1.0/m.rho + m.n + m.n*m.rho*t)
}

// BatchSize returns T for (n, rho, delta).
func BatchSize(n, rho, delta float64) (float64, error) {
	m, err := New(n, rho)
	if err != nil {
		return 0, err
	}
	return m.BatchSize(delta)
}

// Objective returns the expected cost for (n, rho, delta).
func Objective(n, rho, delta float64) (float64, error) {
	m, err := New(n, rho)
	if err != nil {
		return 0, err
	}
	return m.Objective(delta)
}

// Constraint returns the constraint value for (n, rho, delta).
func Constraint(n, rho, delta float64) (float64, error) {
	m, err := New(n, rho)
	if err != nil {
		return 0, err
	}
	return m.Constraint(delta)
}
