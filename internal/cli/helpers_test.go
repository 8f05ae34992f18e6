package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/binbandit/keychainctl/internal/config"
	"github.com/binbandit/keychainctl/internal/prompt"
	"github.com/binbandit/keychainctl/internal/secretstore"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

// testEnv runs commands in-process against a shared memory backend and a
// temporary config directory.
type testEnv struct {
	t       *testing.T
	root    string
	backend *secretstore.MemoryBackend
	stdin   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		t:       t,
		root:    t.TempDir(),
		backend: secretstore.NewMemoryBackend(),
	}
	t.Setenv(config.RootEnvVar, env.root)
	t.Setenv("USER", "alice")

	prevOpen := openBackend
	prevTerminal := newTerminal
	t.Cleanup(func() {
		openBackend = prevOpen
		newTerminal = prevTerminal
		cfg = nil
		resolvedConfigDir = ""
		resolvedConfigPath = ""
		loadWarnings = nil
		jsonOutput = false
	})

	openBackend = func(string, secretstore.Options) (secretstore.Backend, error) {
		return env.backend, nil
	}
	newTerminal = env.terminal

	return env
}

// terminal returns a non-interactive terminal whose stdin holds env.stdin.
func (e *testEnv) terminal() *prompt.Terminal {
	r, w, err := os.Pipe()
	if err != nil {
		e.t.Fatalf("os.Pipe: %v", err)
	}
	if _, err := io.WriteString(w, e.stdin); err != nil {
		e.t.Fatalf("write stdin: %v", err)
	}
	_ = w.Close()
	e.t.Cleanup(func() { _ = r.Close() })
	return &prompt.Terminal{In: r, Out: os.Stdout}
}

func (e *testEnv) configDir() string {
	return filepath.Join(e.root, config.AppName)
}

// run executes args and returns captured stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var err error
	out := captureStdout(e.t, func() {
		err = execute(args)
	})
	return out, err
}

// runWithStdin executes args with stdin as the command's standard input.
func (e *testEnv) runWithStdin(stdin string, args ...string) (string, error) {
	e.t.Helper()
	e.stdin = stdin
	defer func() { e.stdin = "" }()
	return e.run(args...)
}

type testResponse struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
	Meta     *Meta           `json:"meta"`
}

func decodeResponse(t *testing.T, out string) testResponse {
	t.Helper()
	var resp testResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	return resp
}
