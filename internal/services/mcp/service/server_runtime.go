package service

import (
	"context"
	"fmt"
)

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := New(cfg)
	if err != nil {
		return err
	}
	if cfg.Transport == TransportStdio {
		return server.Serve(ctx)
	}
	return runWithHTTPTransport(ctx, server, cfg)
}

// runWithHTTPTransport serves the same tools used by stdio over streamable HTTP.
func runWithHTTPTransport(ctx context.Context, server *Server, cfg Config) error {
	httpAddr := cfg.HTTPAddr
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}
	return NewHTTPTransport(httpAddr, server, cfg.AllowedHosts).Start(ctx)
}
