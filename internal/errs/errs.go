// Package errs defines the closed set of error types the tool reports to
// the user. Each one carries the structured data its message needs, so the
// caller can map it to an exit code with errors.As.
package errs

import (
	"fmt"
	"strings"
)

// GuardError blocks a history-rewriting mode while unstaged modifications
// exist. It is terminal; --force bypasses the guard, not the error.
type GuardError struct {
	Paths []string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf(
		"unstaged modifications exist (%s); commit, stash or pass --force",
		strings.Join(e.Paths, ", "))
}

// LaunchError reports that an external executable could not be started at
// all, as opposed to starting and then failing.
type LaunchError struct {
	Binary string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("could not launch %q: %v", e.Binary, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// CommandError reports a subprocess that ran and exited non-zero (or wrote
// to stderr where that counts as failure). Stderr is forwarded verbatim and
// ExitCode is propagated to the caller unchanged.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// PathNotFoundError reports a failed working-copy read. The attempted path
// is included so the user can spot a path-prefix mismatch.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf(
		"file not found in working copy: %s (wrong --strip count for this diff?)", e.Path)
}
