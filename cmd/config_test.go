package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("get single key after set", func(t *testing.T) {
		env := newTestEnv(t)

		env.run("config", "author.name", "Test User")

		out := env.run("config", "author.name")
		env.equals(out, "Test User")
	})

	t.Run("get all shows every key", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config")
		env.contains(out, "author.name")
		env.contains(out, "search.endpoint")
		env.contains(out, "tagger.min_length: 1")
		env.contains(out, "tagger.mix_tags: false")
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.stdout("config", "tagger.lang", "-o", "json")
		var m map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &m))
		assert.Equal(t, map[string]string{"tagger.lang": ""}, m)
	})
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"author name", "author.name", "New Name"},
		{"language", "tagger.lang", "fr"},
		{"min length", "tagger.min_length", "3"},
		{"mix tags", "tagger.mix_tags", "true"},
		{"timeout", "search.timeout", "2s"},
		{"param", "search.param", "q"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			out := env.run("config", tc.key, tc.value)
			env.contains(out, "(global)")

			out = env.run("config", tc.key)
			env.equals(out, tc.value)
		})
	}
}

func TestConfig_Local(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("config", "tagger.lang", "de", "--local")
	env.contains(out, "(local)")
	assert.FileExists(t, filepath.Join(env.dir, ".tagger", "config.yaml"))

	out = env.run("config", "tagger.lang")
	env.equals(out, "de")
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid key", "invalid.key", "value"},
		{"invalid bool", "tagger.mix_tags", "maybe"},
		{"invalid min length", "tagger.min_length", "0"},
		{"invalid endpoint", "search.endpoint", "ftp://example.com/tags"},
		{"invalid language", "tagger.lang", "not a language"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.runErr("config", tc.key, tc.value)
			assert.Error(t, err)
		})
	}
}

func TestConfig_MalformedFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(filepath.Join(env.dir, ".tagger"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, ".tagger", "config.yaml"), []byte("tagger: [oops"), 0644))

	_, err := env.runErr("resolve", "games")
	assert.Error(t, err, "commands needing config fail on a malformed file")

	out, _ := env.runErr("config")
	env.contains(out, "malformed config file")
}
