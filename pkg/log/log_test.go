package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type stringerPath int

func (stringerPath) String() string { return "bisection" }

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(NewJSONLogger(&buf, zerolog.DebugLevel))

	logger.Warn("fallback",
		String("port", "p1"),
		Int("n", 64),
		Float64("delta", 0.25),
		Bool("feasible", false),
		Any("path", stringerPath(2)),
		Err(errors.New("boom")),
	)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	want := map[string]interface{}{
		"level":    "warn",
		"message":  "fallback",
		"port":     "p1",
		"n":        float64(64),
		"delta":    0.25,
		"feasible": false,
		"path":     "bisection",
		"error":    "boom",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestZerologAdapter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(NewJSONLogger(&buf, zerolog.WarnLevel))

	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}
	logger.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected error output, got %q", buf.String())
	}
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(NewConsoleLogger(&buf, zerolog.InfoLevel))

	logger.Info("solution", Float64("delta", 0.5))
	out := buf.String()
	if !strings.Contains(out, "solution") || !strings.Contains(out, "delta=") {
		t.Errorf("console output = %q, want message and delta field", out)
	}
}

func TestSlogAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Debug("candidate", Float64("delta", 1e-6), Int("evaluations", 80))

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if got["msg"] != "candidate" {
		t.Errorf("msg = %v, want candidate", got["msg"])
	}
	if got["delta"] != 1e-6 {
		t.Errorf("delta = %v, want 1e-6", got["delta"])
	}
	if got["evaluations"] != float64(80) {
		t.Errorf("evaluations = %v, want 80", got["evaluations"])
	}
}

func TestTintLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(NewTintLogger(&buf, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Error("infeasible", Err(errors.New("no feasible delta")))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "infeasible") || !strings.Contains(out, "no feasible delta") {
		t.Errorf("tint output = %q, want message and error", out)
	}
}

func TestNoopLogger(t *testing.T) {
	var logger Logger = NewNoopLogger()
	logger.Debug("x")
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x", Err(errors.New("ignored")))
}
