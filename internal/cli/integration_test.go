//go:build integration

package cli_test

import (
	"strings"
	"testing"

	"github.com/binbandit/keychainctl/internal/testutil"
)

// TestIntegration_SecretLifecycle runs set, get, list and delete through the
// security backend against the fake security tool.
func TestIntegration_SecretLifecycle(t *testing.T) {
	h := testutil.NewTestHome(t).Build()

	out := h.Run("set", "svc", "--value", "pw1").MustExitWith(t, 0)
	if out.Stdout != "Saved secret for service `svc` (account alice).\n" {
		t.Fatalf("unexpected set output: %q", out.Stdout)
	}
	h.AssertRegistry("alice\tsvc\n")

	out = h.Run("get", "svc").MustExitWith(t, 0)
	if out.Stdout != "pw1\n" {
		t.Fatalf("get = %q, want %q", out.Stdout, "pw1\n")
	}

	out = h.Run("list").MustExitWith(t, 0)
	if out.Stdout != "svc\n" {
		t.Fatalf("list = %q, want %q", out.Stdout, "svc\n")
	}

	out = h.RunWithStdin("y\n", "delete", "svc").MustExitWith(t, 0)
	if !strings.Contains(out.Stdout, "Removed secret for service `svc` (account alice).") {
		t.Fatalf("unexpected delete output: %q", out.Stdout)
	}
	h.AssertNotTracked("alice", "svc")

	out = h.Run("get", "svc").MustExitWith(t, 1)
	if !strings.HasPrefix(out.Stderr, "Error: ") || !strings.Contains(out.Stderr, "svc") {
		t.Fatalf("unexpected get error: %q", out.Stderr)
	}
}

func TestIntegration_PipedSecretKeepsInternalWhitespace(t *testing.T) {
	h := testutil.NewTestHome(t).Build()

	h.RunWithStdin("two words\twith tab\n", "set", "svc").MustExitWith(t, 0)

	out := h.Run("get", "svc").MustExitWith(t, 0)
	if out.Stdout != "two words\twith tab\n" {
		t.Fatalf("get = %q", out.Stdout)
	}
}

func TestIntegration_MissingInputIsAnError(t *testing.T) {
	h := testutil.NewTestHome(t).Build()

	h.RunJSON("set", "svc").MustFail(t, "MISSING_SECRET_INPUT")
	if h.FileExists("registry.txt") {
		t.Fatal("registry must not be created when nothing was stored")
	}
}

func TestIntegration_DeleteNeverStored(t *testing.T) {
	h := testutil.NewTestHome(t).Build()

	h.RunJSON("delete", "ghost", "--yes").MustSucceed(t)
}

func TestIntegration_StoreFailureKeepsRegistry(t *testing.T) {
	h := testutil.NewTestHome(t).
		WithEnv("KEYCHAINCTL_SECURITY_BINARY", "/nonexistent/security").
		Build()

	h.RunJSON("set", "svc", "-v", "pw").MustFail(t, "STORE_ERROR")
	if h.FileExists("registry.txt") {
		t.Fatal("registry must not be written after a store failure")
	}
}

func TestIntegration_MalformedRegistryLinesDropped(t *testing.T) {
	h := testutil.NewTestHome(t).
		WithRegistry("# comment\nalice\told\nnot-a-pair\n\nbob\taws\n").
		Build()

	result := h.RunJSON("list", "--all").MustSucceed(t)
	if got := result.DataList("accounts"); len(got) != 2 {
		t.Fatalf("accounts = %v, want alice and bob", got)
	}

	h.Run("set", "new", "-v", "x").MustExitWith(t, 0)
	h.AssertRegistry("alice\tnew\nalice\told\nbob\taws\n")
}

func TestIntegration_ExplicitAccount(t *testing.T) {
	h := testutil.NewTestHome(t).Build()

	h.Run("set", "svc", "-a", "bob", "-v", "bobs").MustExitWith(t, 0)
	h.AssertTracked("bob", "svc")
	h.AssertNotTracked("alice", "svc")

	result := h.RunJSON("get", "svc", "--account", "bob").MustSucceed(t)
	if result.DataString("value") != "bobs" {
		t.Fatalf("value = %q", result.DataString("value"))
	}
	h.RunJSON("get", "svc").MustFail(t, "SECRET_NOT_FOUND")
}
