package app

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/fairframe/internal/bisect"
	"github.com/bft-labs/fairframe/internal/domain"
	"github.com/bft-labs/fairframe/internal/model"
	"github.com/bft-labs/fairframe/pkg/log"
)

// recordingLogger captures messages by level.
type recordingLogger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{messages: map[string][]string{}}
}

func (r *recordingLogger) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[level] = append(r.messages[level], msg)
}

func (r *recordingLogger) Debug(msg string, _ ...log.Field) { r.record("debug", msg) }
func (r *recordingLogger) Info(msg string, _ ...log.Field)  { r.record("info", msg) }
func (r *recordingLogger) Warn(msg string, _ ...log.Field)  { r.record("warn", msg) }
func (r *recordingLogger) Error(msg string, _ ...log.Field) { r.record("error", msg) }

func (r *recordingLogger) count(level string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages[level])
}

func (r *recordingLogger) has(level, prefix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range r.messages[level] {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

func newTestParameterizer(t *testing.T, cfg Config) (*Parameterizer, *recordingLogger) {
	t.Helper()
	logger := newRecordingLogger()
	p, err := NewParameterizer(cfg, logger)
	require.NoError(t, err)
	return p, logger
}

func TestParameterize_FastPath(t *testing.T) {
	p, logger := newTestParameterizer(t, DefaultConfig())

	sol, err := p.Parameterize(64, 0.9)
	require.NoError(t, err)

	assert.True(t, sol.Feasible)
	assert.False(t, sol.UsedFallback)
	assert.Equal(t, domain.PathMinimizer, sol.Path)
	assert.Equal(t, sol.Candidate.Delta, sol.Delta)
	assert.GreaterOrEqual(t, sol.Delta, 1e-12)
	assert.LessOrEqual(t, sol.Delta, 1.0/64)
	assert.Less(t, sol.ConstraintValue, 1.0)
	assert.Equal(t, domain.Bisection{}, sol.Bisection)
	assert.False(t, sol.GuardChecked)
	assert.False(t, sol.Monotone)

	wantT, err := model.BatchSize(64, 0.9, sol.Delta)
	require.NoError(t, err)
	assert.Equal(t, wantT, sol.BatchSize)

	wantC, err := model.Constraint(64, 0.9, sol.Delta)
	require.NoError(t, err)
	assert.Equal(t, wantC, sol.ConstraintValue)

	assert.Zero(t, logger.count("warn"))
	assert.Equal(t, 1, logger.count("info"))
}

func TestParameterize_Fallback(t *testing.T) {
	const tol = 1e-10
	cases := []struct {
		n   int
		rho float64
	}{
		{1, 0.5},
		{1, 0.1},
		{1, 0.3},
	}
	for _, tc := range cases {
		p, logger := newTestParameterizer(t, DefaultConfig())

		sol, err := p.Parameterize(tc.n, tc.rho)
		require.NoError(t, err, "n=%d rho=%v", tc.n, tc.rho)

		assert.True(t, sol.UsedFallback)
		assert.Equal(t, domain.PathBisection, sol.Path)
		assert.GreaterOrEqual(t, sol.Candidate.ConstraintValue, 1.0)
		assert.Less(t, sol.Delta, sol.Candidate.Delta)
		assert.True(t, sol.Feasible)
		assert.Less(t, sol.ConstraintValue, 1.0)
		assert.True(t, sol.Bisection.Converged)
		assert.Equal(t, sol.Bisection.Lower, sol.Delta)
		assert.True(t, sol.GuardChecked)
		assert.True(t, sol.Monotone)
		assert.Zero(t, sol.Bisection.Restarts)

		above, err := model.Constraint(float64(tc.n), tc.rho, sol.Delta+tol)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, above, 1.0, "n=%d rho=%v", tc.n, tc.rho)

		wantT, err := model.BatchSize(float64(tc.n), tc.rho, sol.Delta)
		require.NoError(t, err)
		assert.Equal(t, wantT, sol.BatchSize)
		assert.GreaterOrEqual(t, sol.BatchSize, 1.0)

		assert.Equal(t, 1, logger.count("warn"))
	}
}

// TestParameterize_GuardRestart covers load bounds where the first bisection
// settles on a lower feasible step of T than the highest one.
func TestParameterize_GuardRestart(t *testing.T) {
	for _, rho := range []float64{0.34, 0.37, 0.43, 0.47, 0.49} {
		p, logger := newTestParameterizer(t, DefaultConfig())

		sol, err := p.Parameterize(1, rho)
		require.NoError(t, err, "rho=%v", rho)

		m, err := model.New(1, rho)
		require.NoError(t, err)
		du := m.DeltaUpper()
		first, err := bisect.Supremum(m.Feasible, 0, du, bisect.DefaultConfig())
		require.NoError(t, err)
		firstObjective, err := m.Objective(first.X)
		require.NoError(t, err)

		assert.True(t, sol.Feasible, "rho=%v", rho)
		assert.Equal(t, domain.PathBisection, sol.Path)
		assert.True(t, sol.GuardChecked)
		assert.False(t, sol.Monotone, "rho=%v", rho)
		assert.GreaterOrEqual(t, sol.Bisection.Restarts, 1)
		assert.Greater(t, sol.Bisection.Iterations, first.Iterations)
		assert.Equal(t, sol.Bisection.Lower, sol.Delta)
		assert.Greater(t, sol.Delta, first.X, "rho=%v", rho)
		assert.Less(t, sol.Objective, firstObjective, "rho=%v", rho)
		assert.True(t, logger.has("warn", "constraint is not monotone"), "rho=%v", rho)

		// Nothing above the final infeasible bound is feasible.
		upper := sol.Bisection.Upper
		require.Less(t, upper, du)
		for i := 1; i <= 20000; i++ {
			delta := upper * math.Exp(math.Log(du/upper)*float64(i)/20000)
			require.False(t, m.Feasible(delta), "rho=%v delta=%v", rho, delta)
		}
	}
}

func TestParameterize_GuardDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisableMonotoneGuard = true
	p, logger := newTestParameterizer(t, cfg)

	sol, err := p.Parameterize(1, 0.34)
	require.NoError(t, err)

	m, err := model.New(1, 0.34)
	require.NoError(t, err)
	first, err := bisect.Supremum(m.Feasible, 0, m.DeltaUpper(), bisect.DefaultConfig())
	require.NoError(t, err)

	assert.True(t, sol.Feasible)
	assert.Equal(t, first.X, sol.Delta)
	assert.False(t, sol.GuardChecked)
	assert.False(t, sol.Monotone)
	assert.Zero(t, sol.Bisection.Restarts)
	assert.False(t, logger.has("warn", "constraint is not monotone"))
}

func TestParameterize_Infeasible(t *testing.T) {
	cfg := DefaultConfig()
	// The first midpoint of (0, DeltaUpper] is infeasible for n=1, rho=0.5.
	cfg.Bisection.MaxIterations = 1
	p, logger := newTestParameterizer(t, cfg)

	sol, err := p.Parameterize(1, 0.5)
	require.ErrorIs(t, err, domain.ErrInfeasible)
	assert.False(t, sol.Feasible)
	assert.Equal(t, domain.PathNone, sol.Path)
	assert.True(t, sol.UsedFallback)
	assert.Zero(t, sol.Delta)
	assert.Equal(t, 1, sol.Bisection.Iterations)
	assert.Equal(t, 1, logger.count("error"))
}

func TestParameterize_DomainErrors(t *testing.T) {
	p, _ := newTestParameterizer(t, DefaultConfig())

	cases := []struct {
		name string
		n    int
		rho  float64
	}{
		{"zero ports", 0, 0.9},
		{"negative ports", -1, 0.9},
		{"zero load", 64, 0},
		{"unit load", 64, 1},
		{"overload", 64, 1.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parameterize(tc.n, tc.rho)
			require.ErrorIs(t, err, domain.ErrDomain)
		})
	}
}

func TestParameterize_EmptyInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinDelta = 0.5
	p, _ := newTestParameterizer(t, cfg)

	_, err := p.Parameterize(4, 0.9)
	require.ErrorIs(t, err, domain.ErrDomain)
}

func TestParameterize_Idempotent(t *testing.T) {
	p, _ := newTestParameterizer(t, DefaultConfig())

	for _, in := range []struct {
		n   int
		rho float64
	}{{64, 0.9}, {1, 0.5}, {8, 0.3}} {
		a, err := p.Parameterize(in.n, in.rho)
		require.NoError(t, err)
		b, err := p.Parameterize(in.n, in.rho)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestParameterize_SinglePortBoundary(t *testing.T) {
	p, _ := newTestParameterizer(t, DefaultConfig())

	for _, rho := range []float64{0.05, 0.5, 0.9, 0.99} {
		sol, err := p.Parameterize(1, rho)
		require.NoError(t, err, "rho=%v", rho)
		assert.True(t, sol.Feasible)
		assert.GreaterOrEqual(t, sol.BatchSize, 1.0)
		assert.LessOrEqual(t, sol.Delta, 1.0)
	}
}

func TestParameterize_SoftNonConvergence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Minimizer.MaxEvaluations = 2
	p, logger := newTestParameterizer(t, cfg)

	sol, err := p.Parameterize(64, 0.9)
	require.NoError(t, err)
	assert.False(t, sol.Candidate.Converged)
	assert.True(t, sol.Feasible)
	assert.GreaterOrEqual(t, logger.count("warn"), 1)
}

func TestEvaluate(t *testing.T) {
	p, _ := newTestParameterizer(t, DefaultConfig())

	ev, err := p.Evaluate(1, 0.5, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, ev.BatchSize)
	assert.InDelta(t, 5.0, ev.ConstraintValue, 1e-12)
	assert.False(t, ev.Feasible)

	ev, err = p.Evaluate(64, 0.9, 1e-9)
	require.NoError(t, err)
	assert.True(t, ev.Feasible)

	_, err = p.Evaluate(64, 0.9, 0)
	require.ErrorIs(t, err, domain.ErrDomain)
	_, err = p.Evaluate(0, 0.9, 1e-6)
	require.ErrorIs(t, err, domain.ErrDomain)
}

func TestNewParameterizer_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinDelta = -1
	_, err := NewParameterizer(cfg, nil)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.MinDelta = 1
	_, err = NewParameterizer(cfg, nil)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestConfig_SetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, 1e-12, cfg.MinDelta)
	assert.Equal(t, 64, cfg.GuardSamples)
	assert.Equal(t, 4096, cfg.GuardSteps)
	assert.False(t, cfg.DisableMonotoneGuard)
	assert.Equal(t, 64, cfg.Minimizer.GridPoints)
	assert.Equal(t, 1e-10, cfg.Bisection.Tolerance)
	assert.Equal(t, 1000, cfg.Bisection.MaxIterations)
	require.NoError(t, cfg.Validate())
}
