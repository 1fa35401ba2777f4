package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Mode is the mutually exclusive top-level operating mode.
type Mode int

const (
	// ModeDiffCheck reads a diff from stdin and reports would-be changes.
	ModeDiffCheck Mode = iota
	// ModeWorkingTree reformats unstaged changes in place.
	ModeWorkingTree
	// ModeStaged reformats the staged changes in place.
	ModeStaged
	// ModeAmend reformats the last commit's changes and amends it.
	ModeAmend
	// ModeFixup reformats the last commit's changes into a fixup commit.
	ModeFixup
)

// Config holds all the command-line flag values.
type Config struct {
	Mode        Mode
	Binary      string
	Ignore      string
	Style       string
	Commit      string
	Force       bool
	Strip       int
	Verbose     bool
	ShowVersion bool
}

// ParseFlags defines and parses command-line flags using pflag. When no
// mode flag is given, piped stdin selects diff-check mode and a terminal
// selects working-tree mode.
func ParseFlags() (*Config, error) {
	cfg := &Config{}
	var diffCheck, workingTree, staged, amend, fixup bool

	pflag.BoolVarP(&diffCheck, "diff", "d", false, "Read a zero-context diff from stdin and print would-be formatting changes.")
	pflag.BoolVarP(&workingTree, "working-tree", "w", false, "Reformat changed lines in the working tree (default on a terminal).")
	pflag.BoolVar(&staged, "staged", false, "Reformat changed lines in the index, writing results to the working tree.")
	pflag.BoolVar(&amend, "amend", false, "Reformat the last commit's changed lines and amend the commit.")
	pflag.BoolVar(&fixup, "fixup", false, "Reformat the last commit's changed lines into a fixup commit.")

	pflag.StringVarP(&cfg.Binary, "binary", "b", "", "Formatter binary to run (overrides any config file).")
	pflag.StringVarP(&cfg.Ignore, "ignore", "i", "", "Colon-separated glob patterns of paths to skip (overrides any config file).")
	pflag.StringVar(&cfg.Style, "style", "file", "Style passed to the formatter's style-discovery flag.")
	pflag.StringVar(&cfg.Commit, "commit", "", "Diff against this commit instead of the default for the chosen mode.")
	pflag.BoolVarP(&cfg.Force, "force", "f", false, "Allow --amend/--fixup despite unstaged modifications.")
	pflag.IntVarP(&cfg.Strip, "strip", "p", 1, "Leading path components to strip from diff header paths.")
	pflag.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging.")
	pflag.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit.")

	pflag.Usage = func() {
		fmt.Println("Usage: git-format [flags]")
		fmt.Println("\nReformat only the changed lines of changed files.")
		fmt.Println("\nExample: git diff -U0 | git-format --diff")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	selected := 0
	for _, on := range []bool{diffCheck, workingTree, staged, amend, fixup} {
		if on {
			selected++
		}
	}
	if selected > 1 {
		return nil, fmt.Errorf("error: --diff, --working-tree, --staged, --amend and --fixup are mutually exclusive")
	}

	switch {
	case diffCheck:
		cfg.Mode = ModeDiffCheck
	case workingTree:
		cfg.Mode = ModeWorkingTree
	case staged:
		cfg.Mode = ModeStaged
	case amend:
		cfg.Mode = ModeAmend
	case fixup:
		cfg.Mode = ModeFixup
	case stdinIsPiped():
		cfg.Mode = ModeDiffCheck
	default:
		cfg.Mode = ModeWorkingTree
	}

	if cfg.Strip < 0 {
		return nil, fmt.Errorf("error: --strip must not be negative")
	}

	return cfg, nil
}

func stdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
