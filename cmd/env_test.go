// CLI integration tests. Each test builds the tagger binary once, runs it
// with HOME pointed at a temp dir so config and the audit log stay
// isolated, and serves tag search from an in-process HTTP server.

package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the tagger binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "tagger-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "tagger"
		if os.PathSeparator == '\\' {
			binaryName = "tagger.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string

	mu      sync.Mutex
	tags    map[string]string // query -> JSON body
	status  int
	queries []string
}

// newTestEnv creates an isolated home and working directory, and points
// search.endpoint at a local server.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
		tags:   map[string]string{},
		status: http.StatusOK,
	}

	srv := httptest.NewServer(http.HandlerFunc(env.serve))
	t.Cleanup(srv.Close)

	env.run("config", "search.endpoint", srv.URL+"/tags")
	return env
}

func (e *testEnv) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("t")

	e.mu.Lock()
	e.queries = append(e.queries, q)
	body, ok := e.tags[q]
	status := e.status
	e.mu.Unlock()

	if !ok {
		body = `{"tags":[]}`
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// remote sets the search response for query.
func (e *testEnv) remote(query, body string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tags[query] = body
}

// fail makes the search endpoint answer with status.
func (e *testEnv) fail(status int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = status
}

// searched returns the queries the endpoint received.
func (e *testEnv) searched() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.queries...)
}

func (e *testEnv) environ() []string {
	var env []string
	for _, kv := range os.Environ() {
		switch strings.SplitN(kv, "=", 2)[0] {
		case "HOME", "USERPROFILE", "LANG", "LC_ALL", "LC_MESSAGES":
			continue
		}
		env = append(env, kv)
	}
	return append(env, "HOME="+e.home, "USERPROFILE="+e.home, "LANG=C")
}

// run executes tagger with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("tagger %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes tagger and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	return e.runStdinErr("", args...)
}

// runStdin executes tagger with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("tagger %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes tagger with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// stdout executes tagger and returns standard output alone, for output
// that is parsed rather than searched.
func (e *testEnv) stdout(args ...string) string {
	e.t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		e.t.Fatalf("tagger %v failed: %v\nstderr: %s", args, err, stderr.String())
	}
	return stdout.String()
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
