// Package walk performs single-threaded directory traversal, producing
// directory skeletons and the candidate file list for the counting phase.
package walk

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/phobologic/repoindex/internal/classify"
	"github.com/phobologic/repoindex/internal/model"
)

// Result is the traversal output. Directories are in depth-first visit
// order with only their Path, Depth, and Subdirectories populated; the
// aggregator fills in the counts.
type Result struct {
	Directories []*model.DirectoryNode
	Files       []model.FilePathPair
	MaxDepth    int // deepest directory actually visited
}

// Tree traverses root depth-first. The classifier is consulted once per
// directory before descending, so an excluded directory contributes nothing
// at all. maxDepth limits descent when non-negative: a directory at the
// limit still records its files and its subdirectory names, but none of
// those subdirectories are entered. Files are returned sorted by relative
// path so downstream phases are deterministic regardless of worker order.
func Tree(root string, cls *classify.Classifier, maxDepth int) *Result {
	res := &Result{}
	walkDir(root, ".", 0, cls, maxDepth, res)

	sort.Slice(res.Files, func(i, j int) bool {
		return res.Files[i].Rel < res.Files[j].Rel
	})
	return res
}

func walkDir(abs, rel string, depth int, cls *classify.Classifier, maxDepth int, res *Result) {
	node := &model.DirectoryNode{
		Path:               rel,
		Depth:              depth,
		ExtensionHistogram: map[string]int{},
	}
	res.Directories = append(res.Directories, node)
	if depth > res.MaxDepth {
		res.MaxDepth = depth
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return // an unreadable directory contributes nothing
	}

	// os.ReadDir returns entries sorted by name, so subdirectory names and
	// file paths within one directory are already in lexical order.
	for _, entry := range entries {
		childRel := model.ChildPath(rel, entry.Name())
		if entry.IsDir() {
			if !cls.Exclude(childRel) {
				node.Subdirectories = append(node.Subdirectories, entry.Name())
			}
			continue
		}
		if cls.MatchesGitignore(childRel) {
			continue
		}
		res.Files = append(res.Files, model.FilePathPair{
			Abs: filepath.Join(abs, entry.Name()),
			Rel: childRel,
		})
	}

	if maxDepth >= 0 && depth >= maxDepth {
		return
	}
	for _, name := range node.Subdirectories {
		walkDir(filepath.Join(abs, name), model.ChildPath(rel, name), depth+1, cls, maxDepth, res)
	}
}
