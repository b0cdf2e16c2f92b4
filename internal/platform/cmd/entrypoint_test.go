package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Seed  int64 `env:"CMD_TEST_SEED" envDefault:"7"`
	Times int   `env:"CMD_TEST_TIMES" envDefault:"1"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_SEED", "42")
	t.Setenv("CMD_TEST_TIMES", "3")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed")
	fs.IntVar(&cfg.Times, "times", cfg.Times, "times")

	if err := ParseArgs(fs, []string{"-seed", "9"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.Seed != 9 {
		t.Fatalf("expected flag seed, got %d", cfg.Seed)
	}
	if cfg.Times != 3 {
		t.Fatalf("expected env times, got %d", cfg.Times)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceRoll, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("DICENOTATION_OTEL_ENDPOINT", "")
	want := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServiceMCP, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("expected run error, got %v", err)
	}
}

func TestLogPrefix(t *testing.T) {
	if got := LogPrefix(ServiceRoll); got != "[ROLL] " {
		t.Fatalf("LogPrefix = %q", got)
	}
}
