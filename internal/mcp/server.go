// ABOUTME: MCP server setup for the fitness tracker.
// ABOUTME: Wraps the MCP server around a Tracker; persistence is wired by the caller.
package mcp

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitness/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	tracker   *tracker.Tracker
	logger    *log.Logger
}

// NewServer creates a new MCP server over the given tracker.
func NewServer(t *tracker.Tracker, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitness",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		tracker:   t,
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
