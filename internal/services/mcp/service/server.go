package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "dicenotation"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"

	serverInstructions = "Roll dice notation such as 4d6best3 + 2, 1d20adv or 2d[1,3,5]. " +
		"Use parse_notation to check syntax without rolling."
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// defaultHTTPAddr keeps the HTTP transport bound to loopback unless told otherwise.
const defaultHTTPAddr = "localhost:8081"

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for the HTTP transport.
	HTTPAddr string
	// AllowedHosts extends the loopback-only Host/Origin allowlist.
	AllowedHosts []string
	// SeedFunc generates seeds for rolls without a client seed. Nil uses crypto/rand.
	SeedFunc func() (int64, error)
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates an MCP server with every notation tool registered.
func New(cfg Config) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})

	for _, module := range newMCPRegistrationModules(cfg) {
		if err := module.register(mcpServerRegistrationAdapter{server: mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}

	return &Server{mcpServer: mcpServer}, nil
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the MCP server over transport until the peer
// disconnects or ctx ends. Cancellation is a clean exit.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
