// Package render formats solutions and evaluations for the CLI.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/fairframe/internal/domain"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat returns the Format named by s (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or toml)", s)
	}
}

// Solution writes sol to w in the given format.
func Solution(w io.Writer, f Format, sol domain.Solution) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, sol)
	case FormatTOML:
		return writeTOML(w, sol)
	default:
		return solutionText(w, sol)
	}
}

// Evaluation writes ev to w in the given format.
func Evaluation(w io.Writer, f Format, ev domain.Evaluation) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, ev)
	case FormatTOML:
		return writeTOML(w, ev)
	default:
		return evaluationText(w, ev)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTOML(w io.Writer, v interface{}) error {
	return toml.NewEncoder(w).Encode(v)
}

func solutionText(w io.Writer, sol domain.Solution) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(k string, v interface{}) { fmt.Fprintf(tw, "%s:\t%v\n", k, v) }

	row("port number", sol.PortNumber)
	row("load bound", sol.LoadBound)
	row("feasible", sol.Feasible)
	row("path", sol.Path)
	if sol.Feasible {
		row("delta", fmt.Sprintf("%.12g", sol.Delta))
		row("batch size", fmt.Sprintf("%.0f", sol.BatchSize))
		row("objective", fmt.Sprintf("%.6g", sol.Objective))
		row("constraint", fmt.Sprintf("%.12g", sol.ConstraintValue))
	}
	row("used fallback", sol.UsedFallback)

	c := sol.Candidate
	row("candidate delta", fmt.Sprintf("%.12g", c.Delta))
	row("candidate batch size", fmt.Sprintf("%.0f", c.BatchSize))
	row("candidate objective", fmt.Sprintf("%.6g", c.Objective))
	row("candidate constraint", fmt.Sprintf("%.12g", c.ConstraintValue))
	row("minimizer evaluations", c.Evaluations)
	row("minimizer converged", c.Converged)

	if sol.UsedFallback {
		b := sol.Bisection
		row("bisection bracket", fmt.Sprintf("[%.12g, %.12g]", b.Lower, b.Upper))
		row("bisection iterations", b.Iterations)
		row("bisection restarts", b.Restarts)
		row("bisection converged", b.Converged)
		if sol.GuardChecked {
			row("monotone", sol.Monotone)
		} else {
			row("monotone", "unchecked")
		}
	}
	return tw.Flush()
}

func evaluationText(w io.Writer, ev domain.Evaluation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "port number:\t%d\n", ev.PortNumber)
	fmt.Fprintf(tw, "load bound:\t%v\n", ev.LoadBound)
	fmt.Fprintf(tw, "delta:\t%.12g\n", ev.Delta)
	fmt.Fprintf(tw, "batch size:\t%.0f\n", ev.BatchSize)
	fmt.Fprintf(tw, "objective:\t%.6g\n", ev.Objective)
	fmt.Fprintf(tw, "constraint:\t%.12g\n", ev.ConstraintValue)
	fmt.Fprintf(tw, "feasible:\t%v\n", ev.Feasible)
	return tw.Flush()
}
