// tools_util.go provides helpers for extracting typed parameters from MCP's
// generic argument map.
//
// Extraction is permissive: a missing or mistyped optional parameter yields
// the default rather than an error, since clients often omit them.

package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter, returning def if it is missing.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter. A string "true" is not accepted.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter. JSON numbers decode as float64.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

// jsonResult serialises v as indented JSON in a text result. Marshal
// failures become tool errors so the client sees them.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
