package vocab

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(lang, system string) extension.Context {
	return extension.NewContext(&config.Config{}, extension.Settings{Lang: lang, SystemLang: system})
}

func TestProvider(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		system string
		arg    string
		want   string
	}{
		{"argument wins", "fr", "", "en-US", "en-US"},
		{"flag", "fr", "en_US.UTF-8", "", "fr"},
		{"region falls back to base", "fr-CA", "", "", "fr"},
		{"system locale", "", "fr_FR.UTF-8", "", "fr"},
		{"default", "", "C", "", "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := provider(newContext(tt.flag, tt.system), tt.arg)
			assert.Equal(t, tt.want, p.Language())
		})
	}
}

func TestHandleVocab(t *testing.T) {
	var req mcp.CallToolRequest
	req.Params.Arguments = map[string]any{"lang": "fr", "filter": "RECH"}

	res, err := handleVocab(context.Background(), newContext("", ""), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var l Listing
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &l))
	assert.Equal(t, "fr", l.Language)
	require.Len(t, l.Terms, 1)
	assert.Equal(t, "weblit-search", l.Terms[0].ID)
	assert.Equal(t, "Recherche", l.Terms[0].Label)
}

func TestHandleLangs(t *testing.T) {
	var req mcp.CallToolRequest
	res, err := handleLangs(context.Background(), newContext("fr", ""), req)
	require.NoError(t, err)

	var l Languages
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &l))
	assert.Equal(t, "fr", l.Active)
	assert.Equal(t, "en-US", l.Default)
	assert.Contains(t, l.Supported, "en-US")
}

func TestMCPTools(t *testing.T) {
	tools := (&Extension{}).MCPTools()
	require.Len(t, tools, 2)
	assert.Equal(t, "tagger_vocab", tools[0].Tool.Name)
	assert.Equal(t, "tagger_langs", tools[1].Tool.Name)
}
