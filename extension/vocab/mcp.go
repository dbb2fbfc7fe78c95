// mcp.go exposes the vocabulary to MCP clients.

package vocab

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/log"
	"github.com/jpl-au/tagger/internal/vocab"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTools returns the vocabulary tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("tagger_vocab",
				mcp.WithDescription("List vocabulary terms (id, localized label, color). Optionally filter by text in the label or id"),
				mcp.WithString("lang", mcp.Description("Language code (default from config)")),
				mcp.WithString("filter", mcp.Description("Case-insensitive text to match")),
			),
			Handler: handleVocab,
		},
		{
			Tool: mcp.NewTool("tagger_langs",
				mcp.WithDescription("List the languages the vocabulary is available in"),
			),
			Handler: handleLangs,
		},
	}
}

func handleVocab(_ context.Context, ext extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lang, _ := req.RequireString("lang")
	filter, _ := req.RequireString("filter")

	p := provider(ext, lang)
	l := listing(p)
	if filter != "" {
		l.Terms = filterTerms(l.Terms, filter)
	}

	log.Event("mcp:vocab", "list").Author("mcp").Resolved(l.Language).Count(len(l.Terms)).Write(nil)
	return jsonResult(l)
}

func handleLangs(_ context.Context, ext extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	l := languages(provider(ext, ""))
	log.Event("mcp:langs", "list").Author("mcp").Resolved(l.Active).Write(nil)
	return jsonResult(l)
}

func filterTerms(terms []vocab.Term, text string) []vocab.Term {
	text = strings.ToLower(text)
	out := []vocab.Term{}
	for _, t := range terms {
		if strings.Contains(strings.ToLower(t.Label), text) || strings.Contains(strings.ToLower(t.ID), text) {
			out = append(out, t)
		}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
