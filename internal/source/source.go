// Package source fetches the pre-change content of a file, preferring the
// version-control object store and falling back to the working copy.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/kimgr/git-format/internal/errs"
	"github.com/kimgr/git-format/internal/git"
	"github.com/kimgr/git-format/internal/hunks"
)

// BlobStore retrieves blob content by content identity, failing with
// git.ErrUnknownObject when the identity is not in the store.
type BlobStore interface {
	CatBlob(id string) (string, error)
}

// Source resolves file content for the engine.
type Source struct {
	store BlobStore
	top   string
}

// New creates a Source reading from store, with working-copy fallback
// rooted at the repository top directory.
func New(store BlobStore, top string) *Source {
	return &Source{store: store, top: top}
}

// Content returns the "before" text for key. The blob lookup is tried
// first; only an unknown-object failure falls through to the working copy.
// A missing working-copy file is reported as a PathNotFoundError so the
// caller can hint at a path-prefix misconfiguration.
func (s *Source) Content(key hunks.FileKey) (string, error) {
	content, err := s.store.CatBlob(key.BlobID)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, git.ErrUnknownObject) {
		return "", err
	}

	abs := filepath.Join(s.top, key.Path)
	log.Debug().Str("path", abs).Str("blob", key.BlobID).Msg("blob not in object store, reading working copy")
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &errs.PathNotFoundError{Path: abs}
		}
		return "", fmt.Errorf("failed to read %s: %w", abs, err)
	}
	return string(data), nil
}
