package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlers(t *testing.T, status int, body string) *handlers {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	require.NoError(t, cfg.Set("search.endpoint", srv.URL))
	return &handlers{ext: extension.NewContext(cfg, extension.Settings{Lang: "en-US"})}
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func decode(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.False(t, res.IsError, text(t, res))
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &m))
	return m
}

func open(t *testing.T, h *handlers, args map[string]any) string {
	t.Helper()
	res, err := h.newSession(context.Background(), call(args))
	require.NoError(t, err)
	m := decode(t, res)
	id, _ := m["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestNewServer(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"tags":[]}`)
	assert.NotNil(t, NewServer(h.ext, nil))
}

func TestNewAndClose(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"tags":[]}`)
	ctx := context.Background()

	res, err := h.newSession(ctx, call(map[string]any{"lang": "fr-CA"}))
	require.NoError(t, err)
	m := decode(t, res)
	assert.Equal(t, "fr", m["language"])
	id := m["id"].(string)
	assert.Equal(t, 1, h.ext.Sessions().Len())

	res, err = h.closeSession(ctx, call(map[string]any{"id": id}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, 0, h.ext.Sessions().Len())

	res, err = h.closeSession(ctx, call(map[string]any{"id": id}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSuggest(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"tags":[{"term":"%23crafts","count":2}]}`)
	id := open(t, h, nil)

	res, err := h.suggest(context.Background(), call(map[string]any{"id": id, "text": "re"}))
	require.NoError(t, err)
	m := decode(t, res)

	list, ok := m["suggestions"].([]any)
	require.True(t, ok)
	var values []string
	for _, s := range list {
		values = append(values, s.(map[string]any)["value"].(string))
	}
	assert.Contains(t, values, "weblit-remixing")
	assert.Contains(t, values, "#crafts")
	assert.Equal(t, "#crafts", values[len(values)-1], "remote tags follow vocabulary matches")
	assert.NotContains(t, m, "warning")
}

func TestSuggest_RemoteFailure(t *testing.T) {
	h := newHandlers(t, http.StatusInternalServerError, `down`)
	id := open(t, h, nil)

	res, err := h.suggest(context.Background(), call(map[string]any{"id": id, "text": "navig"}))
	require.NoError(t, err)
	m := decode(t, res)

	assert.Contains(t, m["warning"], "remote search failed")
	list := m["suggestions"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "weblit-navigation", list[0].(map[string]any)["value"])
}

func TestSuggest_BelowMinLength(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"tags":[]}`)
	id := open(t, h, map[string]any{"min_length": float64(3)})

	res, err := h.suggest(context.Background(), call(map[string]any{"id": id, "text": "ab"}))
	require.NoError(t, err)
	m := decode(t, res)
	assert.Empty(t, m["suggestions"])
	assert.Contains(t, m["warning"], "at least 3")
}

func TestAddRemoveTags(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"tags":[]}`)
	ctx := context.Background()
	id := open(t, h, nil)

	res, err := h.addTag(ctx, call(map[string]any{"id": id, "value": "weblit-search"}))
	require.NoError(t, err)
	m := decode(t, res)
	assert.Equal(t, true, m["added"])
	assert.Equal(t, "Search", m["tag"].(map[string]any)["label"])

	res, err = h.addTag(ctx, call(map[string]any{"id": id, "value": "#fun", "label": "fun"}))
	require.NoError(t, err)
	decode(t, res)

	res, err = h.addTag(ctx, call(map[string]any{"id": id, "value": "#fun"}))
	require.NoError(t, err)
	m = decode(t, res)
	assert.Equal(t, "weblit-search, #fun, #fun", m["list"].(map[string]any)["value"])

	res, err = h.removeTag(ctx, call(map[string]any{"id": id, "value": "#fun"}))
	require.NoError(t, err)
	m = decode(t, res)
	assert.Equal(t, float64(2), m["removed"])
	assert.Equal(t, "weblit-search", m["list"].(map[string]any)["value"])

	res, err = h.listTags(ctx, call(map[string]any{"id": id}))
	require.NoError(t, err)
	m = decode(t, res)
	assert.Equal(t, []any{"weblit-search"}, m["tags"])
	assert.Contains(t, m["board"], "**Search**")
}

func TestAddTag_Errors(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"tags":[]}`)
	ctx := context.Background()
	id := open(t, h, nil)

	res, err := h.addTag(ctx, call(map[string]any{"id": id, "value": "a\nb"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.addTag(ctx, call(map[string]any{"id": "missing", "value": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "tagger_new")

	res, err = h.addTag(ctx, call(map[string]any{"id": id, "value": ""}))
	require.NoError(t, err)
	m := decode(t, res)
	assert.Equal(t, false, m["added"])
}

func TestSetLanguage(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"tags":[]}`)
	ctx := context.Background()
	id := open(t, h, nil)

	_, err := h.addTag(ctx, call(map[string]any{"id": id, "value": "weblit-search"}))
	require.NoError(t, err)

	res, err := h.setLanguage(ctx, call(map[string]any{"id": id, "lang": "fr"}))
	require.NoError(t, err)
	m := decode(t, res)
	assert.Equal(t, "fr", m["language"])
	chips := m["list"].(map[string]any)["chips"].([]any)
	assert.Equal(t, "Recherche", chips[0].(map[string]any)["label"])

	res, err = h.setLanguage(ctx, call(map[string]any{"id": id, "lang": "xx"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "fr is still active")
}

func TestGuideTool(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"tags":[]}`)
	ctx := context.Background()

	res, err := h.getGuide(ctx, call(map[string]any{"topic": "serve"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "tagger_suggest")

	res, err = h.getGuide(ctx, call(map[string]any{"topic": "nope"}))
	require.NoError(t, err)
	m := decode(t, res)
	assert.Contains(t, m["available_topics"], "session")
}

func TestParseSessionURI(t *testing.T) {
	id, err := parseSessionURI("tagger://sessions/abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	_, err = parseSessionURI("tagger://sessions/")
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = parseSessionURI("llm://sessions/abc")
	assert.ErrorIs(t, err, ErrInvalidURI)

	_, err = parseSessionURI("tagger://sessions/a/b")
	assert.ErrorIs(t, err, ErrInvalidURI)
}

func TestReadSession(t *testing.T) {
	h := newHandlers(t, http.StatusOK, `{"tags":[]}`)
	id := open(t, h, nil)
	_, err := h.addTag(context.Background(), call(map[string]any{"id": id, "value": "games"}))
	require.NoError(t, err)

	var req mcp.ReadResourceRequest
	req.Params.URI = sessionPrefix + id
	contents, err := h.readSession(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, "games")
}
