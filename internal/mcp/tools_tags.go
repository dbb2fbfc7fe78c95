// tools_tags.go implements MCP tools for tagger sessions: opening and
// closing them, suggesting, and committing or removing tags.
//
// Every response that changes the list returns the new serialized value, so
// the client never has to call tagger_tags just to confirm a mutation.

package mcp

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jpl-au/tagger/internal/log"
	"github.com/jpl-au/tagger/internal/resolver"
	"github.com/jpl-au/tagger/internal/session"
	"github.com/jpl-au/tagger/internal/taglist"
	"github.com/jpl-au/tagger/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// listResult is the shape returned after a mutation and by tagger_tags.
type listResult struct {
	ID    string        `json:"id"`
	Tags  []string      `json:"tags"`
	Chips []taglist.Tag `json:"chips"`
	Value string        `json:"value"`
	Board string        `json:"board,omitempty"`
}

func snapshot(s *session.Session) listResult {
	return listResult{
		ID:    s.ID(),
		Tags:  s.Widget.Tags(),
		Chips: s.Widget.Chips(),
		Value: s.Output.Value(),
	}
}

// session looks up the session named by the id argument.
func (h *handlers) session(req mcp.CallToolRequest) (*session.Session, *mcp.CallToolResult) {
	id, err := req.RequireString("id")
	if err != nil {
		return nil, mcp.NewToolResultError("id is required")
	}
	s, err := h.ext.Sessions().Get(id)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error() + " - call tagger_new to open a session")
	}
	return s, nil
}

// newSession handles tagger_new tool calls.
func (h *handlers) newSession(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := h.ext.WidgetOptions()
	if lang := getString(req, "lang", ""); lang != "" {
		opts.Lang = lang
	}
	opts.MixTags = getBool(req, "mix_tags", opts.MixTags)
	opts.MinLength = getInt(req, "min_length", opts.MinLength)

	s, err := h.ext.Sessions().Open(opts)

	l := log.Event("mcp:new", "open").Author("mcp").Detail("lang", opts.Lang)
	if err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	l.Widget(s.ID()).Resolved(s.Widget.Language()).Write(nil)

	return jsonResult(map[string]any{
		"id":        s.ID(),
		"language":  s.Widget.Language(),
		"languages": s.Widget.Vocab().SupportedLanguages(),
	})
}

// closeSession handles tagger_close tool calls.
func (h *handlers) closeSession(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil //nolint:nilerr
	}

	err = h.ext.Sessions().Close(id)

	log.Event("mcp:close", "close").Author("mcp").Widget(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("closed session %s", id)), nil
}

// suggest handles tagger_suggest tool calls. A remote failure is reported
// as a warning next to the vocabulary suggestions, not as a tool error.
func (h *handlers) suggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, res := h.session(req)
	if res != nil {
		return res, nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil //nolint:nilerr
	}

	result := map[string]any{"text": text}
	if n := s.Widget.MinLength(); utf8.RuneCountInString(text) < n {
		result["suggestions"] = []resolver.Suggestion{}
		result["warning"] = fmt.Sprintf("type at least %d characters for suggestions", n)
		return jsonResult(result)
	}

	suggestions, err := s.Widget.Resolver().Resolve(ctx, text)

	log.Event("mcp:suggest", "suggest").Author("mcp").Widget(s.ID()).Tag(text).
		Count(len(suggestions)).Write(err)

	if suggestions == nil {
		suggestions = []resolver.Suggestion{}
	}
	result["suggestions"] = suggestions
	if err != nil {
		result["warning"] = "remote search failed, showing vocabulary only: " + err.Error()
	}
	return jsonResult(result)
}

// addTag handles tagger_add tool calls.
func (h *handlers) addTag(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, res := h.session(req)
	if res != nil {
		return res, nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}
	if err := validate.Tag(value); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	label := getString(req, "label", "")

	var tag taglist.Tag
	var ok bool
	if label != "" {
		tag, ok = s.Widget.CommitSuggestion(resolver.Suggestion{Label: label, Value: value})
	} else {
		s.Input.SetText(value)
		tag, ok = s.Widget.CommitInput()
	}

	log.Event("mcp:add", "add").Author("mcp").Widget(s.ID()).Tag(value).
		Detail("added", ok).Write(nil)

	out := snapshot(s)
	if !ok {
		return jsonResult(map[string]any{"added": false, "list": out})
	}
	return jsonResult(map[string]any{"added": true, "tag": tag, "list": out})
}

// removeTag handles tagger_remove tool calls.
func (h *handlers) removeTag(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, res := h.session(req)
	if res != nil {
		return res, nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	n := s.Widget.Remove(value)

	log.Event("mcp:remove", "remove").Author("mcp").Widget(s.ID()).Tag(value).Count(n).Write(nil)

	return jsonResult(map[string]any{"removed": n, "list": snapshot(s)})
}

// listTags handles tagger_tags tool calls.
func (h *handlers) listTags(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, res := h.session(req)
	if res != nil {
		return res, nil
	}

	out := snapshot(s)
	out.Board = boardMarkdown(s.Widget.Display())

	log.Event("mcp:tags", "list").Author("mcp").Widget(s.ID()).Count(len(out.Tags)).Write(nil)

	return jsonResult(out)
}

// setLanguage handles tagger_lang tool calls.
func (h *handlers) setLanguage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, res := h.session(req)
	if res != nil {
		return res, nil
	}
	lang, err := req.RequireString("lang")
	if err != nil {
		return mcp.NewToolResultError("lang is required"), nil //nolint:nilerr
	}

	if !s.Widget.SetLanguage(lang) {
		v := s.Widget.Vocab()
		return mcp.NewToolResultError(fmt.Sprintf("unsupported language %q (did you mean %s? supported: %v); %s is still active",
			lang, v.Closest(lang), v.SupportedLanguages(), s.Widget.Language())), nil
	}

	return jsonResult(map[string]any{"language": s.Widget.Language(), "list": snapshot(s)})
}
