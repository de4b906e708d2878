package domain

// Path identifies which stage of the search produced the accepted delta.
type Path int

const (
	// PathNone means no delta was accepted.
	PathNone Path = iota
	// PathMinimizer means the minimizer's optimum already satisfied the constraint.
	PathMinimizer
	// PathBisection means the minimizer's optimum was infeasible and the
	// bisection fallback produced the delta.
	PathBisection
)

// String returns the path name used in logs and renderings.
func (p Path) String() string {
	switch p {
	case PathMinimizer:
		return "minimizer"
	case PathBisection:
		return "bisection"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Candidate is the minimizer's unconstrained optimum.
type Candidate struct {
	Delta           float64 `json:"delta" toml:"delta"`
	Objective       float64 `json:"objective" toml:"objective"`
	BatchSize       float64 `json:"batch_size" toml:"batch_size"`
	ConstraintValue float64 `json:"constraint_value" toml:"constraint_value"`
	Evaluations     int     `json:"evaluations" toml:"evaluations"`
	Iterations      int     `json:"iterations" toml:"iterations"`
	Converged       bool    `json:"converged" toml:"converged"`
}

// Bisection summarizes the fallback. It is zero when the fallback did not run.
// The bracket fields describe the last run; Iterations counts midpoints over
// all runs and Restarts counts the runs started above a skipped feasible step.
type Bisection struct {
	Lower      float64 `json:"lower" toml:"lower"`
	Upper      float64 `json:"upper" toml:"upper"`
	LastMid    float64 `json:"last_mid" toml:"last_mid"`
	Iterations int     `json:"iterations" toml:"iterations"`
	Restarts   int     `json:"restarts" toml:"restarts"`
	Converged  bool    `json:"converged" toml:"converged"`
}

// Solution is the record returned by a parameterization.
//
// BatchSize, Objective and ConstraintValue are always computed from Delta.
// When Feasible is false, Delta is zero and only Candidate (and Bisection,
// if the fallback ran) carry meaningful values.
//
// Monotone is meaningful only when GuardChecked is set, which happens when
// the fallback ran with the guard enabled. It is false when the guard had to
// restart the bisection above a feasible delta the first run skipped.
type Solution struct {
	PortNumber      int       `json:"port_number" toml:"port_number"`
	LoadBound       float64   `json:"load_bound" toml:"load_bound"`
	Delta           float64   `json:"delta" toml:"delta"`
	BatchSize       float64   `json:"batch_size" toml:"batch_size"`
	Objective       float64   `json:"objective" toml:"objective"`
	ConstraintValue float64   `json:"constraint_value" toml:"constraint_value"`
	Feasible        bool      `json:"feasible" toml:"feasible"`
	UsedFallback    bool      `json:"used_fallback" toml:"used_fallback"`
	Path            Path      `json:"path" toml:"path"`
	GuardChecked    bool      `json:"guard_checked" toml:"guard_checked"`
	Monotone        bool      `json:"monotone" toml:"monotone"`
	Candidate       Candidate `json:"candidate" toml:"candidate"`
	Bisection       Bisection `json:"bisection" toml:"bisection"`
}

// Evaluation is the model evaluated at a single delta.
type Evaluation struct {
	PortNumber      int     `json:"port_number" toml:"port_number"`
	LoadBound       float64 `json:"load_bound" toml:"load_bound"`
	Delta           float64 `json:"delta" toml:"delta"`
	BatchSize       float64 `json:"batch_size" toml:"batch_size"`
	Objective       float64 `json:"objective" toml:"objective"`
	ConstraintValue float64 `json:"constraint_value" toml:"constraint_value"`
	Feasible        bool    `json:"feasible" toml:"feasible"`
}
