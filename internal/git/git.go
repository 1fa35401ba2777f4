// Package git wraps the version-control queries and commands the tool
// depends on. Every call shells out through the proc seam; nothing here
// parses diff content.
package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kimgr/git-format/internal/errs"
	"github.com/kimgr/git-format/internal/proc"
)

// ErrUnknownObject reports a blob lookup for a content identity the object
// store does not know. Callers fall back to the working copy on this error
// and on nothing else.
var ErrUnknownObject = errors.New("unknown object")

// Client runs git commands rooted at the repository top-level directory.
type Client struct {
	top    string
	runner proc.Runner
}

// New locates the enclosing repository and returns a client rooted at its
// top-level directory.
func New(runner proc.Runner) (*Client, error) {
	out, _, err := runner.Run(proc.Command{Name: "git", Args: []string{"rev-parse", "--show-toplevel"}})
	if err != nil {
		return nil, fmt.Errorf("not inside a git repository: %w", err)
	}
	return &Client{top: strings.TrimSpace(out), runner: runner}, nil
}

// NewAt returns a client rooted at an explicit directory. Used by tests.
func NewAt(top string, runner proc.Runner) *Client {
	return &Client{top: top, runner: runner}
}

// Top returns the repository top-level directory.
func (c *Client) Top() string { return c.top }

func (c *Client) run(args ...string) (string, error) {
	out, _, err := c.runner.Run(proc.Command{Name: "git", Args: args, Dir: c.top})
	return out, err
}

// DiffWorkingTree returns a zero-context diff of unstaged changes.
func (c *Client) DiffWorkingTree() (string, error) {
	return c.run("diff", "-U0", "--no-color")
}

// DiffStaged returns a zero-context diff of the index against HEAD.
func (c *Client) DiffStaged() (string, error) {
	return c.run("diff", "-U0", "--no-color", "--cached")
}

// DiffAgainst returns a zero-context diff of the working tree plus index
// against the named commit.
func (c *Client) DiffAgainst(ref string) (string, error) {
	return c.run("diff", "-U0", "--no-color", ref)
}

// CatBlob fetches blob content by its content identity. An identity git
// does not recognize yields ErrUnknownObject; every other failure is
// propagated as-is.
func (c *Client) CatBlob(id string) (string, error) {
	out, err := c.run("cat-file", "blob", id)
	if err != nil {
		var cmdErr *errs.CommandError
		if errors.As(err, &cmdErr) && isUnknownObject(cmdErr.Stderr) {
			return "", fmt.Errorf("%w: %s", ErrUnknownObject, id)
		}
		return "", err
	}
	return out, nil
}

// isUnknownObject recognizes the messages git cat-file emits for a missing
// or malformed object id, as opposed to any other failure.
func isUnknownObject(stderr string) bool {
	return strings.Contains(stderr, "Not a valid object name") ||
		strings.Contains(stderr, "bad file") ||
		strings.Contains(stderr, "could not get object info")
}

// UnstagedFiles lists paths with modifications not yet staged.
func (c *Client) UnstagedFiles() ([]string, error) {
	out, err := c.run("diff", "--name-only")
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}

// Amend folds the current staged-plus-working changes into the last commit.
func (c *Client) Amend() error {
	_, err := c.run("commit", "--all", "--amend", "--no-edit")
	return err
}

// Fixup commits the current staged-plus-working changes as a fixup of HEAD.
func (c *Client) Fixup() error {
	_, err := c.run("commit", "--all", "--fixup", "HEAD")
	return err
}
