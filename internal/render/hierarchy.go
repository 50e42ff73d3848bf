// Package render turns a finished RepositoryIndex into the three plain-text
// reports. All renderers are pure and byte-deterministic: downstream tooling
// parses the output verbatim, so the same index must always render the same
// bytes.
package render

import (
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/phobologic/repoindex/internal/model"
)

const reportWidth = 80

// Hierarchy renders the indented directory tree. The root line carries the
// repository name and grand total; each directory below it is annotated with
// its rolled-up line count, children in lexical order, two spaces per level.
// Directories named at the depth cutoff render as a bare "name/" line.
func Hierarchy(idx *model.RepositoryIndex) string {
	var b strings.Builder
	root := idx.DirectoryHierarchy["."]

	name := idx.RepoName
	if name == "" {
		name = "repository"
	}
	b.WriteString(name + "/ (" + humanize.Comma(int64(root.TotalLineCount)) + " lines)\n")
	writeChildren(&b, idx, root, 1)
	return b.String()
}

func writeChildren(b *strings.Builder, idx *model.RepositoryIndex, node *model.DirectoryNode, depth int) {
	names := make([]string, len(node.Subdirectories))
	copy(names, node.Subdirectories)
	sort.Strings(names)

	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		child, ok := idx.DirectoryHierarchy[model.ChildPath(node.Path, name)]
		if !ok {
			b.WriteString(indent + name + "/\n")
			continue
		}
		b.WriteString(indent + name + "/ (" + humanize.Comma(int64(child.TotalLineCount)) + " lines)\n")
		writeChildren(b, idx, child, depth+1)
	}
}
