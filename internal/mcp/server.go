// Package mcp implements the Model Context Protocol server, exposing tagger
// widgets to LLMs. A client opens a session, asks for suggestions, commits
// and removes tags, and reads back the serialized list, all through tools.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Serve starts the MCP server over stdio. Tools contributed by extensions
// are registered alongside the built-in ones.
func Serve(ext extension.Context, tools []extension.MCPTool) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := NewServer(ext, tools)

	slog.Info("tagger MCP server ready", "version", version.Short(), "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server without starting a transport.
func NewServer(ext extension.Context, tools []extension.MCPTool) *server.MCPServer {
	h := &handlers{ext: ext}

	s := server.NewMCPServer(
		"tagger",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, ext, tools)
	return s
}

// handlers provides MCP request handlers with access to the shared
// extension context and its session registry.
type handlers struct {
	ext extension.Context
}

// registerResources adds URI-based read access to session boards.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"tagger://sessions/{id}",
			"Tagger Session",
			mcp.WithTemplateDescription("Chip board of a tagger session as markdown"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readSession,
	)
}

// registerTools exposes tagger operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("tagger_new",
			mcp.WithDescription("Open a tagger session. Returns its id, the active language and the supported languages."),
			mcp.WithString("lang", mcp.Description("Preferred vocabulary language (e.g. en-US, fr). Unsupported codes fall back to the default")),
			mcp.WithBoolean("mix_tags", mcp.Description("Show vocabulary and free tags in one group")),
			mcp.WithNumber("min_length", mcp.Description("Characters required before suggestions are offered (default from config)")),
		),
		h.newSession,
	)

	s.AddTool(
		mcp.NewTool("tagger_close",
			mcp.WithDescription("Close a tagger session"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Session id")),
		),
		h.closeSession,
	)

	s.AddTool(
		mcp.NewTool("tagger_suggest",
			mcp.WithDescription("Suggest tags for partial text. Vocabulary suggestions come first, then remote tags"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Session id")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Partial tag text")),
		),
		h.suggest,
	)

	s.AddTool(
		mcp.NewTool("tagger_add",
			mcp.WithDescription("Commit a tag. With only value, the text is treated as typed input: a vocabulary identifier gets its localized label. With label, the pair is committed as a selected suggestion"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Session id")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Tag value (stored form)")),
			mcp.WithString("label", mcp.Description("Display label from a suggestion")),
		),
		h.addTag,
	)

	s.AddTool(
		mcp.NewTool("tagger_remove",
			mcp.WithDescription("Remove every tag with the given value"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Session id")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Tag value to remove")),
		),
		h.removeTag,
	)

	s.AddTool(
		mcp.NewTool("tagger_tags",
			mcp.WithDescription("List a session's tags, chips and serialized value"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Session id")),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("tagger_lang",
			mcp.WithDescription("Switch a session's vocabulary language. Existing vocabulary chips are relabelled"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Session id")),
			mcp.WithString("lang", mcp.Required(), mcp.Description("Language code")),
		),
		h.setLanguage,
	)

	s.AddTool(
		mcp.NewTool("tagger_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (search.endpoint, search.timeout, tagger.lang, ...) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("tagger_config_set",
			mcp.WithDescription("Set a configuration value. Applies to sessions opened afterwards"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("tagger_guide",
			mcp.WithDescription("Get help/guide content for tagger"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g. 'suggest', 'session', 'config') or empty for index")),
		),
		h.getGuide,
	)
}

// registerExtensionTools binds extension-provided tools to the server,
// passing each handler the shared context.
func registerExtensionTools(s *server.MCPServer, ext extension.Context, tools []extension.MCPTool) {
	for _, t := range tools {
		handler := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, ext, req)
		})
	}
}
