// Package mcpserver exposes stored campaigns to agents over MCP. The tools
// are read-only: campaigns are only ever created by the wizard.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/campaignr/internal/campaign"
	"github.com/mark3labs/campaignr/internal/logger"
	"github.com/mark3labs/mcp-go/server"
)

var log = logger.Named("mcp")

// CampaignReader reads stored campaign records.
type CampaignReader interface {
	Get(ctx context.Context, id string) (*campaign.Record, error)
	List(ctx context.Context) ([]*campaign.Record, error)
}

// Server serves the campaign tools, either over stdio or over streamable
// HTTP on a random local port.
type Server struct {
	store      CampaignReader
	version    string
	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server // Standard HTTP server that uses the listener
	port       int
	mu         sync.Mutex
}

// New creates a server reading from store.
func New(store CampaignReader, version string) *Server {
	s := &Server{store: store, version: version}
	s.mcpServer = server.NewMCPServer(
		"campaignr",
		version,
		server.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	log.Debug("serving MCP on stdio")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serving stdio: %w", err)
	}
	return nil
}

// Start starts the MCP HTTP server on a random available port.
// Returns the port number or an error if startup fails.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find available port: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	// Pass the listener directly to avoid a TOCTOU race on the port
	mux := http.NewServeMux()
	mcpHandler := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", mcpHandler)

	s.stdServer = &http.Server{
		Handler: mux,
	}
	s.httpServer = mcpHandler

	// Capture stdServer reference for goroutine to avoid race with Stop()
	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("MCP server error: %v", err)
		}
	}()

	log.Debug("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop stops the MCP HTTP server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil // Already stopped
	}

	log.Debug("stopping MCP server")
	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		log.Warn("error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.httpServer = nil
	s.stdServer = nil
	return nil
}

// URL returns the HTTP URL for the MCP server endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
