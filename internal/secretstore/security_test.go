package secretstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binbandit/keychainctl/internal/logging"
	"github.com/binbandit/keychainctl/internal/proc"
)

const missingItemStderr = "security: SecKeychainSearchCopyNext: The specified item could not be found in the keychain.\n"

func newSecurity(respond func(name string, args []string) (proc.Result, error)) (*SecurityBackend, *proc.FakeRunner) {
	runner := &proc.FakeRunner{Respond: respond}
	return NewSecurityBackend("/usr/bin/security", runner, logging.Nop()), runner
}

func TestSecurityGetTrimsTrailingNewlineOnly(t *testing.T) {
	b, runner := newSecurity(func(string, []string) (proc.Result, error) {
		return proc.Result{Stdout: []byte("  pass\tword with spaces \r\n")}, nil
	})

	value, err := b.Get(context.Background(), "alice", "github")
	require.NoError(t, err)
	assert.Equal(t, "  pass\tword with spaces ", value)
	assert.Equal(t, "/usr/bin/security find-generic-password -w -a alice -s github", runner.Last().String())
}

func TestSecurityGetNotFound(t *testing.T) {
	b, _ := newSecurity(func(string, []string) (proc.Result, error) {
		return proc.Result{Stderr: []byte(missingItemStderr), ExitCode: 44}, nil
	})

	_, err := b.Get(context.Background(), "alice", "github")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "github")
}

func TestSecurityGetOtherFailureIsStoreError(t *testing.T) {
	b, _ := newSecurity(func(string, []string) (proc.Result, error) {
		return proc.Result{Stderr: []byte("  User interaction is not allowed.\n"), ExitCode: 36}, nil
	})

	_, err := b.Get(context.Background(), "alice", "github")
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "User interaction is not allowed.", storeErr.Detail)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestSecurityGetSpawnFailureIsStoreError(t *testing.T) {
	b, _ := newSecurity(func(string, []string) (proc.Result, error) {
		return proc.Result{}, errors.New("exec: no such file")
	})

	_, err := b.Get(context.Background(), "alice", "github")
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "get", storeErr.Op)
}

func TestSecuritySetUsesUpsertFlag(t *testing.T) {
	b, runner := newSecurity(nil)

	require.NoError(t, b.Set(context.Background(), "alice", "github", "pw 1"))

	call := runner.Last()
	assert.Equal(t, []string{"add-generic-password", "-a", "alice", "-s", "github", "-w", "pw 1", "-U"}, call.Args)
}

func TestSecuritySetFailure(t *testing.T) {
	b, _ := newSecurity(func(string, []string) (proc.Result, error) {
		return proc.Result{ExitCode: 45}, nil
	})

	err := b.Set(context.Background(), "alice", "github", "pw")
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Contains(t, storeErr.Error(), "status 45")
	assert.NotContains(t, storeErr.Error(), "pw")
}

func TestSecurityDeleteMissingIsSuccess(t *testing.T) {
	b, runner := newSecurity(func(string, []string) (proc.Result, error) {
		return proc.Result{Stderr: []byte(missingItemStderr), ExitCode: 44}, nil
	})

	require.NoError(t, b.Delete(context.Background(), "alice", "github"))
	assert.Equal(t, []string{"delete-generic-password", "-a", "alice", "-s", "github"}, runner.Last().Args)
}

func TestSecurityDeleteFailure(t *testing.T) {
	b, _ := newSecurity(func(string, []string) (proc.Result, error) {
		return proc.Result{Stderr: []byte("keychain locked\n"), ExitCode: 1}, nil
	})

	err := b.Delete(context.Background(), "alice", "github")
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "delete secret `github`: keychain locked", storeErr.Error())
}

func TestNewSecurityBackendDefaultBinary(t *testing.T) {
	runner := &proc.FakeRunner{}
	b := NewSecurityBackend(" ", runner, logging.Nop())

	require.NoError(t, b.Delete(context.Background(), "a", "s"))
	assert.Equal(t, DefaultSecurityBinary, runner.Last().Name)
}
