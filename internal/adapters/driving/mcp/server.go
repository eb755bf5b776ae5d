package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/trawl/internal/logger"
)

// ServerName is the implementation name announced to clients.
const ServerName = "trawl"

const (
	readHeaderTimeout = 10 * time.Second
	shutdownGrace     = 5 * time.Second
)

// Server exposes the gateway to MCP clients: one tool per query operation,
// the provider table as resources, and recent history when a store is wired.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer registers the gateway tools and resources. version is announced
// to clients during initialisation.
func NewServer(ports *Ports, version string) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves one client over stdin and stdout until ctx is cancelled or the
// client hangs up.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("mcp: serving %d providers over stdio", len(s.ports.Gateway.Sites()))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP endpoint. Every session shares the
// same server and therefore the same registry.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves Handler on addr until ctx is cancelled, then drains open
// requests for a few seconds.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	logger.Info("mcp: serving %d providers on %s", len(s.ports.Gateway.Sites()), addr)

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
