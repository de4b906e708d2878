// Package fairframe computes Fair-Frame tuning parameters.
//
// Example usage:
//
//	sol, err := fairframe.Parameterize(fairframe.DefaultPortNumber, fairframe.DefaultLoadBound)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sol.Delta, sol.BatchSize)
//
// This package is a thin facade over github.com/bft-labs/fairframe/pkg/fairframe,
// which also exposes functional options.
package fairframe

import (
	ff "github.com/bft-labs/fairframe/pkg/fairframe"
)

// Solution is the record returned by Parameterize.
type Solution = ff.Solution

// Evaluation is the model evaluated at one delta.
type Evaluation = ff.Evaluation

// Defaults for the two inputs of a parameterization.
const (
	DefaultPortNumber = ff.DefaultPortNumber
	DefaultLoadBound  = ff.DefaultLoadBound
)

// Errors, checked with errors.Is.
var (
	ErrDomain     = ff.ErrDomain
	ErrInfeasible = ff.ErrInfeasible
)

// Parameterize computes the Fair-Frame parameters with the default search
// configuration.
func Parameterize(portNumber int, loadBound float64) (Solution, error) {
	return ff.Parameterize(portNumber, loadBound)
}

// Evaluate computes the batch size, objective and constraint at delta.
func Evaluate(portNumber int, loadBound, delta float64) (Evaluation, error) {
	return ff.Evaluate(portNumber, loadBound, delta)
}
