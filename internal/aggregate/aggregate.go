// Package aggregate folds per-file records into the directory hierarchy and
// computes repository-wide totals.
package aggregate

import (
	"sort"

	"github.com/phobologic/repoindex/internal/model"
)

// Build combines the traversal skeleton with the counted file records into a
// RepositoryIndex. Records may arrive in any order; they are processed sorted
// by path so the result is deterministic. Totals are rolled up bottom-up, so
// every directory's TotalLineCount covers its whole subtree.
func Build(dirs []*model.DirectoryNode, records []model.FileRecord) *model.RepositoryIndex {
	idx := &model.RepositoryIndex{
		FileTypeDistribution: map[string]int{},
		DirectoryHierarchy:   map[string]*model.DirectoryNode{},
	}

	for _, d := range dirs {
		idx.DirectoryHierarchy[d.Path] = d
	}
	if _, ok := idx.DirectoryHierarchy["."]; !ok {
		idx.DirectoryHierarchy["."] = &model.DirectoryNode{
			Path:               ".",
			ExtensionHistogram: map[string]int{},
		}
	}
	idx.TotalDirectories = len(idx.DirectoryHierarchy)

	sorted := make([]model.FileRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, rec := range sorted {
		idx.TotalFiles++
		idx.TotalLines += rec.LineCount
		idx.FileTypeDistribution[rec.Extension]++

		dir, ok := idx.DirectoryHierarchy[model.ParentDir(rec.Path)]
		if !ok {
			continue // file recorded at the depth limit; its totals still count globally
		}
		dir.ImmediateFileCount++
		dir.ImmediateLineCount += rec.LineCount
		if dir.ExtensionHistogram == nil {
			dir.ExtensionHistogram = map[string]int{}
		}
		dir.ExtensionHistogram[rec.Extension]++
	}

	rollup(idx.DirectoryHierarchy)
	return idx
}

// rollup accumulates TotalLineCount from the deepest directories up. Each
// node contributes its immediate lines plus already-rolled-up children, then
// adds its total into its parent.
func rollup(hierarchy map[string]*model.DirectoryNode) {
	paths := make([]string, 0, len(hierarchy))
	for p := range hierarchy {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		di, dj := model.PathDepth(paths[i]), model.PathDepth(paths[j])
		if di != dj {
			return di > dj
		}
		return paths[i] < paths[j]
	})

	for _, p := range paths {
		node := hierarchy[p]
		node.TotalLineCount += node.ImmediateLineCount
		if p == "." {
			continue
		}
		if parent, ok := hierarchy[model.ParentDir(p)]; ok {
			parent.TotalLineCount += node.TotalLineCount
		}
	}
}
