package proc

import (
	"context"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestExecRunnerCapturesOutput(t *testing.T) {
	sh := requireShell(t)

	res, err := ExecRunner{}.Run(context.Background(), sh, "-c", "printf 'out\\n'; printf 'err' >&2")
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err", string(res.Stderr))
}

func TestExecRunnerReportsExitCode(t *testing.T) {
	sh := requireShell(t)

	res, err := ExecRunner{}.Run(context.Background(), sh, "-c", "echo nope >&2; exit 44")
	require.NoError(t, err)
	assert.False(t, res.Success())
	assert.Equal(t, 44, res.ExitCode)
	assert.Equal(t, "nope\n", string(res.Stderr))
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "/definitely/not/a/binary")
	require.Error(t, err)
}

func TestFakeRunnerRecordsCalls(t *testing.T) {
	f := &FakeRunner{}
	_, err := f.Run(context.Background(), "security", "find-generic-password", "-w")
	require.NoError(t, err)
	assert.Equal(t, "security find-generic-password -w", f.Last().String())
}
