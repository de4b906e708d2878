package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/fairframe/internal/cliconfig"
	"github.com/bft-labs/fairframe/internal/render"
	"github.com/bft-labs/fairframe/pkg/fairframe"
	"github.com/bft-labs/fairframe/pkg/log"
)

const helpDescription = `
Compute Fair-Frame tuning parameters for a switch with n ports and load bound rho.

The per-round failure probability delta is chosen to minimize the expected
frame cost. If the cost optimum violates the feasibility constraint
delta*(1/rho + n + n*rho*T) < 1, a bisection finds the largest feasible delta.

Configuration is read from $HOME/.fairframe/config.toml, then FAIRFRAME_*
environment variables, then flags.
`

var exampleUsage = strings.TrimSpace(`
  fairframe
  fairframe --port-number 128 --load-bound 0.95 --format json
  fairframe eval --port-number 1 --load-bound 0.5 --delta 0.05
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	logger := cliconfig.Logger()

	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		logger.Error().Err(err).Msg("fairframe")
		os.Exit(1)
	}
}

// newRootCommand builds the command tree writing results to out and logs to errOut.
func newRootCommand(out, errOut io.Writer) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "fairframe",
		Short:         "Compute Fair-Frame tuning parameters",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loadConfig(cmd, &cfg, cfgPath, errOut)
			if err != nil {
				return err
			}
			logger.Debug("configuration", log.Any("config", cfg))

			sol, solveErr := fairframe.Parameterize(cfg.PortNumber, cfg.LoadBound,
				fairframe.WithConfig(cfg.SearchConfig()),
				fairframe.WithLogger(logger),
			)
			if solveErr != nil && sol.Candidate.Evaluations == 0 {
				// Nothing was computed.
				return solveErr
			}
			format, err := render.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			if err := render.Solution(out, format, sol); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return solveErr
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.fairframe/config.toml)")
	flags.IntVarP(&cfg.PortNumber, "port-number", "n", cfg.PortNumber, "number of switch ports")
	flags.Float64VarP(&cfg.LoadBound, "load-bound", "r", cfg.LoadBound, "offered load bound, in (0,1)")
	flags.StringVar(&cfg.Format, "format", cfg.Format, "output format: text, json or toml")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console, json or tint")

	root.Flags().Float64Var(&cfg.MinDelta, "min-delta", cfg.MinDelta, "lower bound of the delta search interval")
	root.Flags().Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "absolute bisection tolerance on delta")
	root.Flags().IntVar(&cfg.MaxIterations, "max-iterations", cfg.MaxIterations, "maximum bisection iterations")
	root.Flags().IntVar(&cfg.GridPoints, "grid-points", cfg.GridPoints, "minimizer coarse grid size")
	root.Flags().IntVar(&cfg.MaxEvaluations, "max-evaluations", cfg.MaxEvaluations, "maximum minimizer refinement evaluations")
	root.Flags().Float64Var(&cfg.XTol, "xtol", cfg.XTol, "minimizer tolerance, in ln(delta)")
	root.Flags().BoolVar(&cfg.MonotoneGuard, "monotone-guard", cfg.MonotoneGuard, "search above the bisection result for skipped feasible deltas")

	root.AddCommand(newEvalCommand(&cfg, &cfgPath, out, errOut))
	return root
}

// newEvalCommand evaluates the model at a fixed delta.
func newEvalCommand(cfg *cliconfig.Config, cfgPath *string, out, errOut io.Writer) *cobra.Command {
	var delta float64

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate batch size, objective and constraint at a given delta",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd, cfg, *cfgPath, errOut); err != nil {
				return err
			}
			ev, err := fairframe.Evaluate(cfg.PortNumber, cfg.LoadBound, delta)
			if err != nil {
				return err
			}
			format, err := render.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			return render.Evaluation(out, format, ev)
		},
	}
	cmd.Flags().Float64Var(&delta, "delta", 0, "per-round failure probability to evaluate")
	_ = cmd.MarkFlagRequired("delta")
	return cmd
}

// loadConfig layers the config file and environment under the explicitly
// set flags, validates the result and builds the logger.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string, errOut io.Writer) (log.Logger, error) {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return nil, err
		}
	} else if cfgPath != "" {
		return nil, fmt.Errorf("load config: %s does not exist", cfgPath)
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cliconfig.NewLogger(*cfg, errOut)
}
