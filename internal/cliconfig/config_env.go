package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (FAIRFRAME_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setIntFromString("port-number", os.Getenv("FAIRFRAME_PORT_NUMBER"), &cfg.PortNumber); err != nil {
		return err
	}
	if err := s.setFloatFromString("load-bound", os.Getenv("FAIRFRAME_LOAD_BOUND"), &cfg.LoadBound); err != nil {
		return err
	}
	if err := s.setFloatFromString("min-delta", os.Getenv("FAIRFRAME_MIN_DELTA"), &cfg.MinDelta); err != nil {
		return err
	}
	if err := s.setFloatFromString("tolerance", os.Getenv("FAIRFRAME_TOLERANCE"), &cfg.Tolerance); err != nil {
		return err
	}
	if err := s.setIntFromString("max-iterations", os.Getenv("FAIRFRAME_MAX_ITERATIONS"), &cfg.MaxIterations); err != nil {
		return err
	}
	if err := s.setIntFromString("grid-points", os.Getenv("FAIRFRAME_GRID_POINTS"), &cfg.GridPoints); err != nil {
		return err
	}
	if err := s.setIntFromString("max-evaluations", os.Getenv("FAIRFRAME_MAX_EVALUATIONS"), &cfg.MaxEvaluations); err != nil {
		return err
	}
	if err := s.setFloatFromString("xtol", os.Getenv("FAIRFRAME_XTOL"), &cfg.XTol); err != nil {
		return err
	}

	s.setBoolFromString("monotone-guard", os.Getenv("FAIRFRAME_MONOTONE_GUARD"), &cfg.MonotoneGuard)

	s.setString("format", os.Getenv("FAIRFRAME_FORMAT"), &cfg.Format)
	s.setString("log-level", os.Getenv("FAIRFRAME_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("FAIRFRAME_LOG_FORMAT"), &cfg.LogFormat)

	return nil
}
