package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer builds an MCP server that lists and dispatches to tools.
func NewServer(tools *Tools, name, version string) *server.DefaultServer {
	s := server.NewDefaultServer(name, version)
	s.HandleListTools(func(ctx context.Context, cursor *string) (*mcp.ListToolsResult, error) {
		return &mcp.ListToolsResult{Tools: tools.List()}, nil
	})
	s.HandleCallTool(tools.Call)
	return s
}
