// Package classify decides which filesystem entries are excluded from a scan.
package classify

import (
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// defaultDenylist covers version-control metadata, dependency and package
// caches, bytecode caches, and build output.
var defaultDenylist = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"vendor",
	"venv",
	".venv",
	"__pycache__",
	".mypy_cache",
	".ruff_cache",
	".pytest_cache",
	".tox",
	"build",
	"dist",
	"target",
}

// Classifier reports whether paths are excluded from a scan. It has no
// mutable state once built; construct with New.
type Classifier struct {
	deny map[string]struct{}
	gi   *ignore.GitIgnore
}

// New returns a Classifier using the default denylist plus any extra path
// components. Matching is exact and case-sensitive.
func New(extra ...string) *Classifier {
	deny := make(map[string]struct{}, len(defaultDenylist)+len(extra))
	for _, name := range defaultDenylist {
		deny[name] = struct{}{}
	}
	for _, name := range extra {
		if name != "" {
			deny[name] = struct{}{}
		}
	}
	return &Classifier{deny: deny}
}

// WithGitignore layers the .gitignore file at the scan root, if present,
// over the denylist. Missing or unparseable files are ignored.
func (c *Classifier) WithGitignore(root string) *Classifier {
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		c.gi = gi
	}
	return c
}

// Exclude reports whether the slash-separated relative path is excluded:
// any denylisted path component excludes the whole subtree. The walker
// evaluates this once per directory, not per file.
func (c *Classifier) Exclude(rel string) bool {
	if rel == "." || rel == "" {
		return false
	}
	for _, part := range strings.Split(rel, "/") {
		if _, ok := c.deny[part]; ok {
			return true
		}
	}
	return c.gi != nil && c.gi.MatchesPath(rel)
}

// MatchesGitignore reports whether rel matches the attached .gitignore.
// Always false when none is attached.
func (c *Classifier) MatchesGitignore(rel string) bool {
	return c.gi != nil && c.gi.MatchesPath(rel)
}
