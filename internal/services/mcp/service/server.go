package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/dicebot/internal/platform/timeouts"
	"github.com/louisbranch/dicebot/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "dicebot"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// defaultHTTPAddr keeps HTTP transport bound to loopback unless overridden.
	defaultHTTPAddr = "localhost:8081"
)

// TransportKind selects how the MCP server talks to clients.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// String implements flag.Value.
func (k *TransportKind) String() string {
	if k == nil {
		return ""
	}
	return string(*k)
}

// Set implements flag.Value and rejects unsupported transports.
func (k *TransportKind) Set(value string) error {
	kind := TransportKind(strings.ToLower(strings.TrimSpace(value)))
	switch kind {
	case TransportStdio, TransportHTTP:
		*k = kind
		return nil
	default:
		return fmt.Errorf("transport %q is not supported", value)
	}
}

// Config configures the MCP server. An empty HTTPAddr serves on the
// loopback default.
type Config struct {
	Transport TransportKind `env:"MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string        `env:"MCP_HTTP_ADDR"`
}

// Server exposes the dice tools over MCP.
type Server struct {
	mcpServer *mcp.Server
}

type toolRegistration struct {
	tool     *mcp.Tool
	register func(*mcp.Server, *mcp.Tool)
}

// NewServer registers the dice tools against roller.
func NewServer(roller domain.Roller) (*Server, error) {
	if roller == nil {
		return nil, errors.New("roll service is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	registrations := []toolRegistration{
		{
			tool: domain.DiceRollTool(),
			register: func(server *mcp.Server, tool *mcp.Tool) {
				mcp.AddTool(server, tool, domain.DiceRollHandler(roller))
			},
		},
		{
			tool: domain.CoinFlipTool(),
			register: func(server *mcp.Server, tool *mcp.Tool) {
				mcp.AddTool(server, tool, domain.CoinFlipHandler(roller))
			},
		},
	}
	for _, registration := range registrations {
		registration.register(mcpServer, registration.tool)
	}

	return &Server{mcpServer: mcpServer}, nil
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config, roller domain.Roller) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := NewServer(roller)
	if err != nil {
		return err
	}
	if cfg.Transport == TransportHTTP {
		return server.ServeHTTP(ctx, cfg.HTTPAddr)
	}
	return server.Serve(ctx)
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// ServeHTTP serves MCP over streamable HTTP at addr until ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if strings.TrimSpace(addr) == "" {
		addr = defaultHTTPAddr
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("MCP HTTP server listening on %s", addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP HTTP: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP HTTP: %w", err)
		}
		return nil
	}
}

// serveWithTransport starts the MCP server using the provided transport.
// Cancellation is a normal stop, not an error.
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
	return err
}
