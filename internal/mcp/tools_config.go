// tools_config.go implements MCP tools for configuration management.
//
// A successful set reloads the shared context so sessions opened afterwards
// use the new values. Open sessions keep the settings they started with.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/tagger/internal/config"
	"github.com/jpl-au/tagger/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles tagger_config_get tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:config_get", "get").Author("mcp").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:config_get", "get").Author("mcp").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{key: v})
}

// configSet handles tagger_config_set tool calls.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Detail("value", value)

	cfg, err := config.Load()
	if err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := cfg.Set(key, value); err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = cfg.Save()
	l.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.ext.Reload(); err != nil {
		log.Event("mcp:config_set", "reload").Author("mcp").Write(err)
		return mcp.NewToolResultText(fmt.Sprintf("%s = %s (warning: reload failed, restart server to apply: %v)", key, value, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}
