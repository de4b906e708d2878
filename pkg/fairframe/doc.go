// Package fairframe computes tuning parameters for the Fair-Frame batched
// fair-scheduling algorithm.
//
// Given a port count n and a load bound rho, [Parameterize] returns the
// per-round failure probability delta minimizing the expected cost of a
// frame, subject to the feasibility constraint
//
//	delta * (1/rho + n + n*rho*T) < 1
//
// where T is the batch size derived from (n, rho, delta).
//
// # Usage
//
//	sol, err := fairframe.Parameterize(64, 0.9)
//	if errors.Is(err, fairframe.ErrInfeasible) {
//	    // the load bound is unsupported for this port count
//	}
//	fmt.Println(sol.Delta, sol.BatchSize)
//
// # Search
//
// The search is a two-stage optimize-then-repair:
//
//  1. A bounded minimizer searches delta in [MinDelta, 1/n], starting at 1/n².
//  2. If its optimum violates the constraint, it is discarded and a
//     bisection over (0, 1/(1/rho + n + n*rho)] returns the largest feasible
//     delta instead.
//
// [Solution.Path] and [Solution.UsedFallback] tell which stage produced the
// result.
package fairframe
