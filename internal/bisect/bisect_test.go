package bisect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/fairframe/internal/bisect"
)

// TestSupremum_Threshold converges onto a known threshold.
func TestSupremum_Threshold(t *testing.T) {
	const threshold = 0.0123456789
	feasible := func(x float64) bool { return x < threshold }

	res, err := bisect.Supremum(feasible, 0, 0.5, bisect.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Less(t, res.X, threshold)
	assert.InDelta(t, threshold, res.X, 1e-10)
	assert.Equal(t, res.Lower, res.X)
	assert.GreaterOrEqual(t, res.Upper, threshold)
	assert.LessOrEqual(t, res.Upper-res.Lower, 1e-10)
}

// TestSupremum_Tightness checks the result is within tolerance of infeasibility.
func TestSupremum_Tightness(t *testing.T) {
	const tol = 1e-10
	feasible := func(x float64) bool { return 3*x*x+x < 1 }

	res, err := bisect.Supremum(feasible, 0, 1, bisect.Config{Tolerance: tol})
	require.NoError(t, err)
	assert.True(t, feasible(res.X))
	assert.False(t, feasible(res.X+tol))
}

// TestSupremum_NoFeasible reports infeasibility when every midpoint fails.
func TestSupremum_NoFeasible(t *testing.T) {
	calls := 0
	feasible := func(x float64) bool {
		calls++
		return false
	}

	res, err := bisect.Supremum(feasible, 0, 1, bisect.Config{Tolerance: 1e-20, MaxIterations: 50})
	require.ErrorIs(t, err, bisect.ErrNoFeasible)
	assert.Equal(t, 50, calls)
	assert.Equal(t, 50, res.Iterations)
	assert.False(t, res.Converged)
	assert.Zero(t, res.X)
}

// TestSupremum_IterationCap returns the tightest feasible bound, not the
// last midpoint, when the budget runs out first.
func TestSupremum_IterationCap(t *testing.T) {
	feasible := func(x float64) bool { return x < 0.3 }

	res, err := bisect.Supremum(feasible, 0, 1, bisect.Config{MaxIterations: 3})
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
	// Midpoints: 0.5 (no), 0.25 (yes), 0.375 (no).
	assert.Equal(t, 0.375, res.LastMid)
	assert.Equal(t, 0.25, res.X)
	assert.True(t, feasible(res.X))
}

// TestSupremum_WholeBracketFeasible approaches the upper bound.
func TestSupremum_WholeBracketFeasible(t *testing.T) {
	res, err := bisect.Supremum(func(float64) bool { return true }, 0, 1, bisect.DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.X, 1e-10)
	assert.Equal(t, 1.0, res.Upper)
}

// TestSupremum_InvalidBracket rejects empty brackets.
func TestSupremum_InvalidBracket(t *testing.T) {
	_, err := bisect.Supremum(func(float64) bool { return true }, 1, 1, bisect.DefaultConfig())
	require.Error(t, err)
	require.NotErrorIs(t, err, bisect.ErrNoFeasible)
}
