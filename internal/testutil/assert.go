package testutil

import (
	"strings"
	"testing"
)

// AssertTracked fails the test unless the registry lists service for account.
func (h *TestHome) AssertTracked(account, service string) {
	h.t.Helper()
	if !h.registryHas(account, service) {
		h.t.Errorf("expected registry to track %s/%s, got:\n%s", account, service, h.ReadFile("registry.txt"))
	}
}

// AssertNotTracked fails the test if the registry lists service for account.
func (h *TestHome) AssertNotTracked(account, service string) {
	h.t.Helper()
	if h.registryHas(account, service) {
		h.t.Errorf("expected registry not to track %s/%s, got:\n%s", account, service, h.ReadFile("registry.txt"))
	}
}

// AssertRegistry fails the test unless registry.txt equals want exactly.
func (h *TestHome) AssertRegistry(want string) {
	h.t.Helper()
	if got := h.ReadFile("registry.txt"); got != want {
		h.t.Errorf("registry.txt = %q, want %q", got, want)
	}
}

func (h *TestHome) registryHas(account, service string) bool {
	for _, line := range strings.Split(h.ReadFile("registry.txt"), "\n") {
		if line == account+"\t"+service {
			return true
		}
	}
	return false
}

// MustExitWith fails the test unless the run exited with code.
func (r *RunResult) MustExitWith(t *testing.T, code int) *RunResult {
	t.Helper()
	if r.ExitCode != code {
		t.Fatalf("exit code = %d, want %d\nstdout: %s\nstderr: %s", r.ExitCode, code, r.Stdout, r.Stderr)
	}
	return r
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}
