package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimgr/git-format/internal/errs"
)

func TestRunCapturesStdout(t *testing.T) {
	out, stderr, err := Exec{}.Run(Command{Name: "sh", Args: []string{"-c", "echo hello"}})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
	assert.Empty(t, stderr)
}

func TestRunFeedsStdin(t *testing.T) {
	out, _, err := Exec{}.Run(Command{Name: "cat", Stdin: "int x;\n"})
	require.NoError(t, err)
	assert.Equal(t, "int x;\n", out)
}

func TestRunNonZeroExit(t *testing.T) {
	_, _, err := Exec{}.Run(Command{Name: "sh", Args: []string{"-c", "echo oops >&2; exit 3"}})

	var cmdErr *errs.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Contains(t, cmdErr.Stderr, "oops")
}

func TestRunMissingBinary(t *testing.T) {
	_, _, err := Exec{}.Run(Command{Name: "definitely-not-a-real-binary-xyz"})

	var launchErr *errs.LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "definitely-not-a-real-binary-xyz", launchErr.Binary)
}

func TestRunStderrOnSuccessIsNotAnError(t *testing.T) {
	out, stderr, err := Exec{}.Run(Command{Name: "sh", Args: []string{"-c", "echo warn >&2; echo ok"}})
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
	assert.Equal(t, "warn\n", stderr)
}
