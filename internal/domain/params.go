package domain

import (
	"fmt"
	"math"
)

// Params holds the inputs of one parameterization.
type Params struct {
	// N is the port count. Nominally an integer >= 1.
	N float64

	// Rho is the offered load bound, in (0,1).
	Rho float64
}

// Validate reports an ErrDomain-wrapped error when the parameters fall
// outside the range the model is defined on.
func (p Params) Validate() error {
	if math.IsNaN(p.N) || math.IsInf(p.N, 0) || p.N <= 0 {
		return fmt.Errorf("%w: port number %v must be positive", ErrDomain, p.N)
	}
	if math.IsNaN(p.Rho) || p.Rho <= 0 || p.Rho >= 1 {
		return fmt.Errorf("%w: load bound %v must be in (0,1)", ErrDomain, p.Rho)
	}
	return nil
}
