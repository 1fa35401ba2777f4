package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kimgr/git-format/internal/app"
	"github.com/kimgr/git-format/internal/cli"
	"github.com/kimgr/git-format/internal/errs"
)

const version = "0.3.0"

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println("git-format " + version)
		return
	}

	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if err := a.Run(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: 1 for differences
// found and for guard or usage errors, and a failed subprocess's own exit
// code forwarded verbatim.
func exitCode(err error) int {
	if errors.Is(err, app.ErrDifferences) {
		return 1 // report already printed on stdout
	}

	var detailed *app.DetailedError
	if errors.As(err, &detailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n%s", detailed.Err, detailed.Stack)
		return 1
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var cmdErr *errs.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}
	return 1
}
