package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffReport renders a unified diff for every result whose content changed
// and concatenates them. It never touches disk. An empty return value means
// no formatting differences were found.
func DiffReport(results []Result) (string, error) {
	var b strings.Builder
	for _, r := range results {
		if !r.Changed() {
			continue
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(r.Before),
			B:        difflib.SplitLines(r.After),
			FromFile: r.Key.Path + " (before formatting)",
			ToFile:   r.Key.Path + " (after formatting)",
			Context:  3,
		})
		if err != nil {
			return "", fmt.Errorf("failed to render diff for %s: %w", r.Key.Path, err)
		}
		b.WriteString(text)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// WriteBack overwrites each changed file under the repository top with its
// reformatted content and returns the paths written, in result order. Files
// whose content did not change are never opened, so their bytes and
// timestamps stay untouched.
func WriteBack(top string, results []Result) ([]string, error) {
	var written []string
	for _, r := range results {
		if !r.Changed() {
			continue
		}
		abs := filepath.Join(top, r.Key.Path)
		mode := fileMode(abs)
		if err := os.WriteFile(abs, []byte(r.After), mode); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", abs, err)
		}
		written = append(written, r.Key.Path)
	}
	return written, nil
}

// fileMode preserves the existing permissions of a file being overwritten.
func fileMode(path string) fs.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}
