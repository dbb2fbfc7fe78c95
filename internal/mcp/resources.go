// resources.go implements MCP resource handlers for session boards.
//
// A resource gives read-only access to a session's rendered chips, so a
// client can load the current state as context without calling a tool.
// URIs follow tagger://sessions/{id}.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/tagger/internal/render"
	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyID indicates a missing session id in a resource URI.
	ErrEmptyID = errors.New("empty session id")
)

const sessionPrefix = "tagger://sessions/"

// readSession handles tagger://sessions/{id} resource requests.
func (h *handlers) readSession(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id, err := parseSessionURI(uri)
	if err != nil {
		return nil, err
	}

	s, err := h.ext.Sessions().Get(id)
	if err != nil {
		return nil, err
	}

	text := boardMarkdown(s.Widget.Display())
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     text,
		},
	}, nil
}

// boardMarkdown renders a display when it knows how to.
func boardMarkdown(d any) string {
	if b, ok := d.(*render.Board); ok {
		return b.Markdown()
	}
	return ""
}

// parseSessionURI extracts the session id from a session URI.
func parseSessionURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, sessionPrefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	id := strings.TrimPrefix(uri, sessionPrefix)
	if id == "" {
		return "", ErrEmptyID
	}
	if strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return id, nil
}
