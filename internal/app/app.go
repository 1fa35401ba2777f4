package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/kimgr/git-format/internal/cli"
	"github.com/kimgr/git-format/internal/config"
	"github.com/kimgr/git-format/internal/engine"
	"github.com/kimgr/git-format/internal/errs"
	"github.com/kimgr/git-format/internal/format"
	"github.com/kimgr/git-format/internal/git"
	"github.com/kimgr/git-format/internal/hunks"
	"github.com/kimgr/git-format/internal/proc"
	"github.com/kimgr/git-format/internal/source"
	"github.com/kimgr/git-format/internal/ui"
)

// ErrDifferences signals that diff-check mode found formatting differences.
// The report has already been printed; the caller only maps it to exit 1.
var ErrDifferences = errors.New("formatting differences found")

// App orchestrates the entire application logic.
type App struct {
	cfg    *cli.Config
	git    *git.Client
	engine *engine.Engine
	stdin  io.Reader
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error { return e.Err }

// New creates a new App instance rooted at the enclosing repository.
func New(cfg *cli.Config) (*App, error) {
	runner := proc.Exec{}
	client, err := git.New(runner)
	if err != nil {
		return nil, err
	}

	resolver := config.NewResolver(client.Top(), config.Overrides{
		Binary: cfg.Binary,
		Ignore: cfg.Ignore,
	})
	contentSource := source.New(client, client.Top())
	invoker := format.NewInvoker(runner, cfg.Style)

	return &App{
		cfg:    cfg,
		git:    client,
		engine: engine.New(client.Top(), contentSource, resolver, invoker),
		stdin:  os.Stdin,
	}, nil
}

// Run executes the selected operating mode.
func (a *App) Run() (err error) {
	// Centralized panic recovery to provide stack traces for unexpected errors.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	switch a.cfg.Mode {
	case cli.ModeDiffCheck:
		return a.diffCheck()
	case cli.ModeWorkingTree:
		if ref := a.cfg.Commit; ref != "" {
			return a.reformatDiff(func() (string, error) { return a.git.DiffAgainst(ref) })
		}
		return a.reformatDiff(a.git.DiffWorkingTree)
	case cli.ModeStaged:
		return a.reformatDiff(a.git.DiffStaged)
	case cli.ModeAmend:
		return a.reformatCommit(a.git.Amend, "amended commit with reformatted files")
	case cli.ModeFixup:
		return a.reformatCommit(a.git.Fixup, "created fixup commit with reformatted files")
	default:
		return fmt.Errorf("unknown mode %d", a.cfg.Mode)
	}
}

// diffCheck reads a zero-context diff from stdin and prints a diff of the
// formatting changes it would make, without touching any file.
func (a *App) diffCheck() error {
	diffText, err := io.ReadAll(a.stdin)
	if err != nil {
		return fmt.Errorf("failed to read diff from stdin: %w", err)
	}

	results, err := a.format(string(diffText))
	if err != nil {
		return err
	}

	report, err := engine.DiffReport(results)
	if err != nil {
		return err
	}
	if report == "" {
		ui.Info("no formatting differences found")
		return nil
	}
	fmt.Println(report)
	return ErrDifferences
}

// reformatDiff reformats the changed lines described by the diff producer
// and writes the results back into the working tree.
func (a *App) reformatDiff(diff func() (string, error)) error {
	_, err := a.applyDiff(diff)
	return err
}

// reformatCommit reformats the changes of the prior commit and, when any
// file was rewritten, folds the result back into history via commit. The
// unstaged-modifications guard runs first unless --force was given.
func (a *App) reformatCommit(commit func() error, doneMsg string) error {
	if !a.cfg.Force {
		unstaged, err := a.git.UnstagedFiles()
		if err != nil {
			return err
		}
		if len(unstaged) > 0 {
			return &errs.GuardError{Paths: unstaged}
		}
	}

	ref := a.cfg.Commit
	if ref == "" {
		ref = "HEAD^"
	}
	changed, err := a.applyDiff(func() (string, error) { return a.git.DiffAgainst(ref) })
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := commit(); err != nil {
		return err
	}
	ui.Success("%s", doneMsg)
	return nil
}

// applyDiff runs the engine over the producer's diff and writes changed
// files back in place. It reports whether anything was written.
func (a *App) applyDiff(diff func() (string, error)) (bool, error) {
	diffText, err := diff()
	if err != nil {
		return false, err
	}

	results, err := a.format(diffText)
	if err != nil {
		return false, err
	}

	written, err := engine.WriteBack(a.git.Top(), results)
	if err != nil {
		return len(written) > 0, err
	}
	if len(written) == 0 {
		ui.Info("no files modified")
		return false, nil
	}

	ui.Success("reformatted %d file(s):", len(written))
	for _, path := range written {
		ui.Path("- %s", path)
	}
	return true, nil
}

// format parses the diff and runs the engine over the resulting file set.
func (a *App) format(diffText string) ([]engine.Result, error) {
	set, err := hunks.Parse(diffText, a.cfg.Strip)
	if err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, nil
	}
	return a.engine.Run(set)
}
