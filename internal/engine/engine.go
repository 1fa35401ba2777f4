// Package engine orchestrates the per-file reformatting pipeline: fetch the
// pre-change content, resolve configuration, run the formatter over the
// changed ranges, and collect before/after pairs.
package engine

import (
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/kimgr/git-format/internal/config"
	"github.com/kimgr/git-format/internal/format"
	"github.com/kimgr/git-format/internal/hunks"
)

// ContentSource fetches a file's pre-change content.
type ContentSource interface {
	Content(key hunks.FileKey) (string, error)
}

// ConfigResolver resolves formatter configuration per file.
type ConfigResolver interface {
	Resolve(absPath string) (config.Config, error)
}

// Formatter reformats content within the given line ranges.
type Formatter interface {
	Format(binary, path, before string, ranges []hunks.LineRange) (string, error)
}

// Result is the outcome for one file: its identity and the content before
// and after formatting. Equal before and after means the file needs no work.
type Result struct {
	Key    hunks.FileKey
	Before string
	After  string
}

// Changed reports whether formatting altered the content.
func (r Result) Changed() bool { return r.Before != r.After }

// Engine runs the pipeline over a parsed FileSet.
type Engine struct {
	top       string
	source    ContentSource
	resolver  ConfigResolver
	formatter Formatter
}

// New creates an Engine rooted at the repository top directory.
func New(top string, source ContentSource, resolver ConfigResolver, formatter Formatter) *Engine {
	return &Engine{top: top, source: source, resolver: resolver, formatter: formatter}
}

// Run processes every file in set, in the set's encounter order, strictly
// sequentially. Unsupported file types and ignored paths pass through with
// after == before and no formatter invocation. The first failure aborts the
// whole run.
func (e *Engine) Run(set *hunks.FileSet) ([]Result, error) {
	results := make([]Result, 0, set.Len())
	for _, key := range set.Files() {
		before, err := e.source.Content(key)
		if err != nil {
			return nil, err
		}

		cfg, err := e.resolver.Resolve(filepath.Join(e.top, key.Path))
		if err != nil {
			return nil, err
		}

		after := before
		switch {
		case !format.Supported(key.Path):
			log.Debug().Str("file", key.Path).Msg("unsupported file type, passing through")
		case cfg.Ignores(key.Path):
			log.Debug().Str("file", key.Path).Msg("ignored by pattern, passing through")
		default:
			after, err = e.formatter.Format(cfg.Binary, key.Path, before, set.Ranges(key))
			if err != nil {
				return nil, err
			}
		}

		results = append(results, Result{Key: key, Before: before, After: after})
	}
	return results, nil
}
