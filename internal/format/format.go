// Package format invokes the external style formatter over selected line
// ranges of a file's content.
package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kimgr/git-format/internal/errs"
	"github.com/kimgr/git-format/internal/hunks"
	"github.com/kimgr/git-format/internal/proc"
)

// supportedExtensions are the file types the formatter understands. Anything
// else passes through untouched without spawning a process.
var supportedExtensions = map[string]struct{}{
	".c": {}, ".h": {},
	".cc": {}, ".cpp": {}, ".cxx": {},
	".hpp": {}, ".hxx": {},
	".m": {}, ".mm": {},
	".js": {}, ".jsx": {},
	".ts": {}, ".tsx": {},
	".proto": {},
}

// Supported reports whether the file's extension is on the allow-list.
// The check is case-insensitive.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := supportedExtensions[ext]
	return ok
}

// Invoker runs a formatter binary against file content.
type Invoker struct {
	runner proc.Runner
	style  string
}

// NewInvoker creates an Invoker. style is the value passed to the
// formatter's style-discovery flag; "file" makes it honor project-local
// style configuration.
func NewInvoker(runner proc.Runner, style string) *Invoker {
	if style == "" {
		style = "file"
	}
	return &Invoker{runner: runner, style: style}
}

// Format feeds before on stdin to binary, restricted to the given ranges,
// and returns the reformatted content. path only tells the formatter which
// language and style rules apply; the content never touches disk. A
// non-zero exit or any stderr output is a hard failure carrying the
// formatter's diagnostics.
func (v *Invoker) Format(binary, path, before string, ranges []hunks.LineRange) (string, error) {
	args := v.buildArgs(path, ranges)
	log.Debug().Str("binary", binary).Str("file", path).Int("ranges", len(ranges)).Msg("invoking formatter")

	out, stderr, err := v.runner.Run(proc.Command{Name: binary, Args: args, Stdin: before})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(stderr) != "" {
		return "", &errs.CommandError{
			Command:  binary + " " + strings.Join(args, " "),
			ExitCode: 1,
			Stderr:   stderr,
		}
	}
	return out, nil
}

func (v *Invoker) buildArgs(path string, ranges []hunks.LineRange) []string {
	args := []string{
		"-style=" + v.style,
		"-assume-filename=" + path,
	}
	for _, r := range ranges {
		args = append(args, fmt.Sprintf("-lines=%d:%d", r.Start, r.End))
	}
	return args
}
