package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicenotation/internal/platform/timeouts"
)

var listenTCP = net.Listen

// HTTPTransport serves MCP over streamable HTTP on /mcp, plus a plain
// health check on /mcp/health. Requests whose Host or Origin is not loopback
// or explicitly allowed are rejected.
type HTTPTransport struct {
	addr         string
	server       *Server
	allowedHosts hostAllowlist
	httpServer   *http.Server
}

// NewHTTPTransport creates an HTTP transport for server listening on addr.
func NewHTTPTransport(addr string, server *Server, allowedHosts []string) *HTTPTransport {
	return &HTTPTransport{
		addr:         addr,
		server:       server,
		allowedHosts: newHostAllowlist(allowedHosts),
	}
}

// Handler returns the HTTP routes without starting a listener.
func (t *HTTPTransport) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server.mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", t.requireLocal(streamable))
	mux.Handle("/mcp/health", t.requireLocal(http.HandlerFunc(handleHealth)))
	return mux
}

// Start listens on the configured address and serves until ctx ends.
func (t *HTTPTransport) Start(ctx context.Context) error {
	if t.server == nil || t.server.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}

	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}

	t.httpServer = &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	log.Printf("Starting MCP HTTP server on %s", listener.Addr())

	errChan := make(chan error, 1)
	go func() {
		if err := t.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("Shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := t.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

// requireLocal answers 403 unless Host and Origin pass the allowlist.
func (t *HTTPTransport) requireLocal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := t.allowedHosts.check(r); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
