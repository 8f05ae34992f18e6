package secretstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/binbandit/keychainctl/internal/logging"
	"github.com/binbandit/keychainctl/internal/proc"
)

// DefaultSecurityBinary is the macOS keychain tool.
const DefaultSecurityBinary = "/usr/bin/security"

// notFoundMarker appears on stderr when the keychain has no matching item.
const notFoundMarker = "could not be found"

// SecurityBackend drives the macOS `security` tool, one subprocess per call.
type SecurityBackend struct {
	binary string
	runner proc.Runner
	log    logging.Logger
}

// NewSecurityBackend returns a backend that runs binary through runner.
func NewSecurityBackend(binary string, runner proc.Runner, log logging.Logger) *SecurityBackend {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultSecurityBinary
	}
	return &SecurityBackend{binary: binary, runner: runner, log: log}
}

// Get implements Backend. Trailing CR/LF added by the tool are removed; all
// other whitespace in the value is preserved.
func (b *SecurityBackend) Get(ctx context.Context, account, service string) (string, error) {
	res, err := b.run(ctx, "get", service, "find-generic-password", "-w", "-a", account, "-s", service)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		stderr := string(res.Stderr)
		if strings.Contains(stderr, notFoundMarker) {
			return "", notFound(service)
		}
		return "", &StoreError{Op: "get", Service: service, Detail: strings.TrimSpace(stderr)}
	}
	return strings.TrimRight(string(res.Stdout), "\r\n"), nil
}

// Set implements Backend. The -U flag makes repeated calls overwrite.
func (b *SecurityBackend) Set(ctx context.Context, account, service, value string) error {
	res, err := b.run(ctx, "set", service, "add-generic-password", "-a", account, "-s", service, "-w", value, "-U")
	if err != nil {
		return err
	}
	if !res.Success() {
		detail := strings.TrimSpace(string(res.Stderr))
		if detail == "" {
			detail = fmt.Sprintf("security exited with status %d", res.ExitCode)
		}
		return &StoreError{Op: "set", Service: service, Detail: detail}
	}
	return nil
}

// Delete implements Backend. A missing item counts as deleted.
func (b *SecurityBackend) Delete(ctx context.Context, account, service string) error {
	res, err := b.run(ctx, "delete", service, "delete-generic-password", "-a", account, "-s", service)
	if err != nil {
		return err
	}
	if res.Success() {
		return nil
	}
	stderr := string(res.Stderr)
	if strings.Contains(stderr, notFoundMarker) {
		b.log.Debug().Str("service", service).Msg("secret already absent")
		return nil
	}
	return &StoreError{Op: "delete", Service: service, Detail: strings.TrimSpace(stderr)}
}

// run logs the subcommand only; args may carry the secret value.
func (b *SecurityBackend) run(ctx context.Context, op, service string, args ...string) (proc.Result, error) {
	res, err := b.runner.Run(ctx, b.binary, args...)
	if err != nil {
		return res, &StoreError{Op: op, Service: service, Err: err}
	}
	b.log.Debug().
		Str("binary", b.binary).
		Str("subcommand", args[0]).
		Str("service", service).
		Int("exit", res.ExitCode).
		Msg("security finished")
	return res, nil
}
