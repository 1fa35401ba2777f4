package git

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimgr/git-format/internal/errs"
	"github.com/kimgr/git-format/internal/proc"
)

// stubRunner answers each command from a canned response keyed on the
// joined argument list.
type stubRunner struct {
	responses map[string]string
	failures  map[string]error
	calls     []string
}

func (s *stubRunner) Run(c proc.Command) (string, string, error) {
	key := strings.Join(c.Args, " ")
	s.calls = append(s.calls, key)
	if err, ok := s.failures[key]; ok {
		return "", "", err
	}
	return s.responses[key], "", nil
}

func TestNewTrimsTopLevel(t *testing.T) {
	runner := &stubRunner{responses: map[string]string{
		"rev-parse --show-toplevel": "/repo/top\n",
	}}
	client, err := New(runner)
	require.NoError(t, err)
	assert.Equal(t, "/repo/top", client.Top())
}

func TestNewOutsideRepository(t *testing.T) {
	runner := &stubRunner{failures: map[string]error{
		"rev-parse --show-toplevel": &errs.CommandError{Command: "git", ExitCode: 128, Stderr: "fatal: not a git repository"},
	}}
	_, err := New(runner)
	assert.ErrorContains(t, err, "not inside a git repository")
}

func TestCatBlobUnknownObject(t *testing.T) {
	runner := &stubRunner{failures: map[string]error{
		"cat-file blob deadbeef": &errs.CommandError{
			Command:  "git",
			ExitCode: 128,
			Stderr:   "fatal: Not a valid object name 'deadbeef'",
		},
	}}
	client := NewAt("/top", runner)

	_, err := client.CatBlob("deadbeef")
	assert.ErrorIs(t, err, ErrUnknownObject)
}

func TestCatBlobOtherFailurePropagates(t *testing.T) {
	want := &errs.CommandError{Command: "git", ExitCode: 128, Stderr: "fatal: unable to read tree"}
	runner := &stubRunner{failures: map[string]error{
		"cat-file blob abc123": want,
	}}
	client := NewAt("/top", runner)

	_, err := client.CatBlob("abc123")
	assert.False(t, errors.Is(err, ErrUnknownObject))

	var cmdErr *errs.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, want, cmdErr)
}

func TestCatBlobReturnsContent(t *testing.T) {
	runner := &stubRunner{responses: map[string]string{
		"cat-file blob abc123": "int x;\n",
	}}
	client := NewAt("/top", runner)

	content, err := client.CatBlob("abc123")
	require.NoError(t, err)
	assert.Equal(t, "int x;\n", content)
}

func TestUnstagedFiles(t *testing.T) {
	runner := &stubRunner{responses: map[string]string{
		"diff --name-only": "src/a.cpp\n\nsrc/b.cpp\n",
	}}
	client := NewAt("/top", runner)

	paths, err := client.UnstagedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.cpp", "src/b.cpp"}, paths)
}

func TestDiffCommands(t *testing.T) {
	runner := &stubRunner{responses: map[string]string{}}
	client := NewAt("/top", runner)

	_, _ = client.DiffWorkingTree()
	_, _ = client.DiffStaged()
	_, _ = client.DiffAgainst("HEAD^")

	assert.Equal(t, []string{
		"diff -U0 --no-color",
		"diff -U0 --no-color --cached",
		"diff -U0 --no-color HEAD^",
	}, runner.calls)
}
