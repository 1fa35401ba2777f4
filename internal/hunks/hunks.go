// Package hunks extracts changed line ranges from unified-diff text. The
// input must be generated with zero context lines, so every hunk header
// describes exactly the changed lines.
package hunks

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FileKey identifies one changed version of a file: its path relative to the
// repository top and the content identity of the post-change blob. The blob
// id is opaque; it is only ever compared and passed back to the object store.
type FileKey struct {
	Path   string
	BlobID string
}

// LineRange is an inclusive, 1-indexed span of changed lines.
type LineRange struct {
	Start int
	End   int
}

func (r LineRange) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// FileSet maps FileKeys to their changed ranges, preserving the order both
// were first encountered in the diff. Ranges are kept exactly as parsed:
// no merging, sorting or deduplication.
type FileSet struct {
	keys   []FileKey
	ranges map[FileKey][]LineRange
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{ranges: make(map[FileKey][]LineRange)}
}

// Add appends a range to the key's list, registering the key on first use.
func (s *FileSet) Add(key FileKey, r LineRange) {
	if _, seen := s.ranges[key]; !seen {
		s.keys = append(s.keys, key)
	}
	s.ranges[key] = append(s.ranges[key], r)
}

// Files returns the keys in encounter order.
func (s *FileSet) Files() []FileKey { return s.keys }

// Ranges returns the ranges recorded for key, in encounter order.
func (s *FileSet) Ranges(key FileKey) []LineRange { return s.ranges[key] }

// Len returns the number of distinct files.
func (s *FileSet) Len() int { return len(s.keys) }

var (
	// index abc123..def456 100644
	indexRegex = regexp.MustCompile(`^index ([0-9a-f]+)\.\.([0-9a-f]+)`)
	// +++ b/path/to/file
	fileRegex = regexp.MustCompile(`^\+\+\+ (.*)$`)
	// @@ -10,2 +11,3 @@ — the old side is irrelevant here
	hunkRegex = regexp.MustCompile(`^@@ -[0-9,]+ \+(\d+)(?:,(\d+))? @@`)
)

// Parse scans diff text and accumulates one FileSet entry per changed file.
// The scan keeps three live values: the current post-change blob id (from the
// most recent index header), the current file path (from the most recent +++
// header, with strip leading path components removed), and the ranges seen so
// far. A hunk with an explicit new-line count of zero is a pure deletion and
// contributes nothing; an omitted count means one line. A hunk header that
// arrives before both a blob id and a file path have been seen makes the
// diff malformed and fails the parse outright rather than misattributing
// ranges to a stale file.
func Parse(diffText string, strip int) (*FileSet, error) {
	set := NewFileSet()
	var blobID, path string

	for _, line := range strings.Split(diffText, "\n") {
		if m := indexRegex.FindStringSubmatch(line); m != nil {
			blobID = m[2]
			continue
		}
		if m := fileRegex.FindStringSubmatch(line); m != nil {
			p, err := stripComponents(strings.TrimSpace(m[1]), strip)
			if err != nil {
				return nil, err
			}
			path = p
			continue
		}
		m := hunkRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if path == "" || blobID == "" {
			return nil, fmt.Errorf("malformed diff: hunk header %q before any file header", line)
		}
		start, _ := strconv.Atoi(m[1])
		count := 1
		if m[2] != "" {
			count, _ = strconv.Atoi(m[2])
		}
		if count == 0 {
			continue // pure deletion, no new lines to format
		}
		set.Add(FileKey{Path: path, BlobID: blobID}, LineRange{Start: start, End: start + count - 1})
	}
	return set, nil
}

// stripComponents drops n leading path segments, undoing diff prefixes such
// as the conventional "b/".
func stripComponents(path string, n int) (string, error) {
	if n == 0 {
		return path, nil
	}
	parts := strings.SplitN(path, "/", n+1)
	if len(parts) < n+1 {
		return "", fmt.Errorf("cannot strip %d component(s) from diff path %q", n, path)
	}
	return parts[n], nil
}
