// mcp.go defines types for MCP tool registration by extensions.
//
// Not every extension contributes MCP tools; some only provide CLI commands.
// The server registers the tools of every extension next to its own.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests. The Context gives access to the
// configuration and the live widgets.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
