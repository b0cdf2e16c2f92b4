// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/dicenotation/internal/platform/cmd"
	mcpservice "github.com/louisbranch/dicenotation/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr     string   `env:"DICENOTATION_MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	Transport    string   `env:"DICENOTATION_MCP_TRANSPORT"     envDefault:"stdio"`
	AllowedHosts []string `env:"DICENOTATION_MCP_ALLOWED_HOSTS" envSeparator:","`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server with tracing configured.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			Transport:    mcpservice.TransportKind(cfg.Transport),
			HTTPAddr:     cfg.HTTPAddr,
			AllowedHosts: cfg.AllowedHosts,
		})
	})
}
