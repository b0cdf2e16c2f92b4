package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Times int `env:"DICENOTATION_TEST_TIMES" envDefault:"1"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Times != 1 {
		t.Fatalf("expected default times 1, got %d", cfg.Times)
	}
}

func TestParseEnvOverride(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("DICENOTATION_TEST_TIMES", "4")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Times != 4 {
		t.Fatalf("expected times 4, got %d", cfg.Times)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("DICENOTATION_TEST_TIMES", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
