// Package model defines the core data structures for repoindex.
package model

import (
	"fmt"
	"strings"
	"time"
)

// NoExtension is the extension recorded for files without one.
const NoExtension = "(no extension)"

// FilePathPair couples a file's absolute path with its slash-separated path
// relative to the scan root.
type FilePathPair struct {
	Abs string
	Rel string
}

// FileRecord is the immutable result of counting one file.
type FileRecord struct {
	Path      string // relative to the scan root, slash-separated
	LineCount int    // 0 for unreadable files, never negative
	Extension string // lowercase, or NoExtension
}

// DirectoryNode holds per-directory statistics. The Immediate fields cover
// files directly inside the directory; TotalLineCount also includes every
// descendant and is populated by rollup.
type DirectoryNode struct {
	Path               string
	Depth              int
	ImmediateFileCount int
	ImmediateLineCount int
	TotalLineCount     int
	Subdirectories     []string // direct child names, lexical order
	ExtensionHistogram map[string]int
}

// RepositoryIndex is the complete result of one scan. It is immutable once
// returned and is the sole input to the report renderers.
type RepositoryIndex struct {
	RepoName             string
	RepoURL              string
	IndexedAt            time.Time
	TotalFiles           int
	TotalDirectories     int
	TotalLines           int
	MaxDepthObserved     int
	FileTypeDistribution map[string]int
	DirectoryHierarchy   map[string]*DirectoryNode // keyed by path, root is "."
	FilesByLineCount     []FileRecord              // bounded, descending by lines, ties by path
}

// ParentDir returns the parent directory of a slash-separated relative path,
// or "." for entries at the scan root.
func ParentDir(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return "."
	}
	return rel[:i]
}

// ChildPath joins a directory path and a child name. The root "." does not
// appear in child paths.
func ChildPath(parent, name string) string {
	if parent == "." {
		return name
	}
	return parent + "/" + name
}

// PathDepth returns the number of path segments in a slash-separated
// relative path. The root "." has depth 0.
func PathDepth(rel string) int {
	if rel == "." || rel == "" {
		return 0
	}
	return strings.Count(rel, "/") + 1
}

// ExtensionOf returns the lowercased extension of a path, including the dot,
// or NoExtension for files without one.
func ExtensionOf(path string) string {
	base := path
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	i := strings.LastIndex(base, ".")
	if i <= 0 { // no dot, or a dotfile like .gitignore
		return NoExtension
	}
	return strings.ToLower(base[i:])
}

// Validate checks the rollup and conservation invariants on a finished
// index: every directory's total equals its immediate count plus its
// children's totals, and the immediate counts sum to the index total.
func Validate(idx *RepositoryIndex) error {
	var sumImmediate int
	for path, node := range idx.DirectoryHierarchy {
		sumImmediate += node.ImmediateLineCount
		want := node.ImmediateLineCount
		for _, name := range node.Subdirectories {
			if child, ok := idx.DirectoryHierarchy[ChildPath(path, name)]; ok {
				want += child.TotalLineCount
			}
		}
		if node.TotalLineCount != want {
			return fmt.Errorf("rollup mismatch at %s: total %d, immediate+children %d", path, node.TotalLineCount, want)
		}
	}
	if sumImmediate != idx.TotalLines {
		return fmt.Errorf("conservation mismatch: directories sum to %d, index reports %d", sumImmediate, idx.TotalLines)
	}
	return nil
}
