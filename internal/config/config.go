// Package config resolves the per-file formatter configuration by walking
// the directory tree from the file up to the repository top.
package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"
)

const (
	// FileName is the configuration file looked for in each directory.
	FileName = ".gitformat"
	// DefaultBinary is the formatter used when nothing overrides it.
	DefaultBinary = "clang-format"
)

// Config is the fully resolved formatter configuration for one file.
type Config struct {
	Binary string
	Ignore []string // shell-glob patterns, matched against repo-relative paths
}

// Ignores reports whether relPath matches any ignore pattern. Matching is
// shell-glob semantics: a '*' does not cross path separators.
func (c Config) Ignores(relPath string) bool {
	rel := filepath.ToSlash(relPath)
	for _, pattern := range c.Ignore {
		if ok, err := path.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Overrides are command-line values applied on top of any file-sourced
// configuration. Empty fields leave the resolved value alone.
type Overrides struct {
	Binary string
	Ignore string
}

// Resolver locates and layers configuration for files under one repository.
type Resolver struct {
	top       string
	home      string
	overrides Overrides
}

// NewResolver returns a resolver bounded by the repository top directory.
func NewResolver(top string, overrides Overrides) *Resolver {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &Resolver{top: top, home: home, overrides: overrides}
}

// Resolve builds the configuration for the file at absPath. Layering order
// is fixed: built-in defaults, then the nearest config file between the
// file's directory and the repository top (inclusive) or the per-user
// fallback, then command-line overrides.
func (r *Resolver) Resolve(absPath string) (Config, error) {
	cfg := Config{Binary: DefaultBinary}

	if found, err := r.findFile(filepath.Dir(absPath)); err != nil {
		return Config{}, err
	} else if found != "" {
		if err := loadFile(found, &cfg); err != nil {
			return Config{}, err
		}
	}

	if r.overrides.Binary != "" {
		cfg.Binary = r.overrides.Binary
	}
	if r.overrides.Ignore != "" {
		cfg.Ignore = splitPatterns(r.overrides.Ignore)
	}
	return cfg, nil
}

// findFile walks from dir up to the repository top looking for a config
// file, then falls back to the user's home directory. Never searches above
// the repository top.
func (r *Resolver) findFile(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}
		if dir == r.top {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // filesystem root
		}
		dir = parent
	}

	if r.home != "" {
		fallback := filepath.Join(r.home, FileName)
		if _, err := os.Stat(fallback); err == nil {
			return fallback, nil
		}
	}
	return "", nil
}

func loadFile(path string, cfg *Config) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	log.Debug().Str("file", path).Msg("using config file")

	section := file.Section(ini.DefaultSection)
	if key := section.Key("binary").String(); key != "" {
		cfg.Binary = key
	}
	if key := section.Key("ignore").String(); key != "" {
		cfg.Ignore = splitPatterns(key)
	}
	return nil
}

// splitPatterns splits a colon-separated ignore value into glob patterns.
func splitPatterns(value string) []string {
	var patterns []string
	for _, p := range strings.Split(value, ":") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
