package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/dicenotation/internal/platform/otel"
)

func TestConfigActive(t *testing.T) {
	tests := []struct {
		name string
		cfg  otel.Config
		want bool
	}{
		{name: "no endpoint", cfg: otel.Config{Enabled: true}, want: false},
		{name: "disabled", cfg: otel.Config{Endpoint: "http://localhost:4318"}, want: false},
		{name: "enabled", cfg: otel.Config{Endpoint: "http://localhost:4318", Enabled: true}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Active(); got != tt.want {
				t.Fatalf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("DICENOTATION_OTEL_ENDPOINT", "")
	t.Setenv("DICENOTATION_OTEL_ENABLED", "true")

	shutdown, err := otel.Setup(context.Background(), "roll")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("DICENOTATION_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("DICENOTATION_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "roll")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsMalformedEnabledFlag(t *testing.T) {
	t.Setenv("DICENOTATION_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("DICENOTATION_OTEL_ENABLED", "sometimes")

	if _, err := otel.Setup(context.Background(), "roll"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no actual export happens.
	t.Setenv("DICENOTATION_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("DICENOTATION_OTEL_ENABLED", "true")

	shutdown, err := otel.Setup(context.Background(), "mcp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	t.Setenv("DICENOTATION_OTEL_ENDPOINT", "")
	t.Setenv("DICENOTATION_OTEL_ENABLED", "true")

	shutdown, err := otel.Setup(context.Background(), "roll")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}
