// Package proc funnels every external-process invocation through one narrow
// seam, so no other package touches os/exec directly.
package proc

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kimgr/git-format/internal/errs"
)

// Command describes a single subprocess invocation.
type Command struct {
	Name  string
	Args  []string
	Dir   string // working directory, empty for inherited
	Stdin string // fed to the process verbatim, empty for none
}

// Runner executes a Command and returns its captured stdout and stderr.
type Runner interface {
	Run(c Command) (stdout, stderr string, err error)
}

// Exec is the real Runner backed by os/exec.
type Exec struct{}

// Run executes the command synchronously. A process that cannot be started
// yields a LaunchError; a non-zero exit yields a CommandError carrying the
// exit code and captured stderr. Stderr written by a successful process is
// returned to the caller, not treated as failure.
func (Exec) Run(c Command) (string, string, error) {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	log.Debug().Str("command", c.Name).Strs("args", c.Args).Msg("running subprocess")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out.String(), errBuf.String(), &errs.CommandError{
				Command:  c.Name + " " + strings.Join(c.Args, " "),
				ExitCode: exitErr.ExitCode(),
				Stderr:   errBuf.String(),
			}
		}
		return "", "", &errs.LaunchError{Binary: c.Name, Err: err}
	}
	return out.String(), errBuf.String(), nil
}
