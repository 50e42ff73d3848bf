package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/phobologic/repoindex/internal/model"
)

const (
	topFileTypes   = 20
	topLargest     = 10
	topDirectories = 20
)

// Summary renders the flat statistics report: global totals, the top file
// types with percentages, the largest files, and the busiest directories.
func Summary(idx *model.RepositoryIndex) string {
	var b strings.Builder
	rule := strings.Repeat("=", reportWidth)
	thin := strings.Repeat("-", reportWidth)

	b.WriteString(rule + "\n")
	b.WriteString("REPOSITORY INDEX REPORT\n")
	if idx.RepoName != "" {
		b.WriteString("Repository: " + idx.RepoName + "\n")
	}
	if idx.RepoURL != "" {
		b.WriteString("URL: " + idx.RepoURL + "\n")
	}
	if !idx.IndexedAt.IsZero() {
		b.WriteString("Indexed: " + idx.IndexedAt.UTC().Format("2006-01-02 15:04:05 UTC") + "\n")
	}
	b.WriteString(rule + "\n\n")

	b.WriteString("SUMMARY STATISTICS\n" + thin + "\n")
	fmt.Fprintf(&b, "Total files:       %s\n", humanize.Comma(int64(idx.TotalFiles)))
	fmt.Fprintf(&b, "Total directories: %s\n", humanize.Comma(int64(idx.TotalDirectories)))
	fmt.Fprintf(&b, "Total lines:       %s\n", humanize.Comma(int64(idx.TotalLines)))
	fmt.Fprintf(&b, "Max depth:         %d\n\n", idx.MaxDepthObserved)

	b.WriteString("FILE TYPE DISTRIBUTION\n" + thin + "\n")
	for _, ext := range topExtensions(idx.FileTypeDistribution, topFileTypes) {
		n := idx.FileTypeDistribution[ext]
		pct := 0.0
		if idx.TotalFiles > 0 {
			pct = float64(n) / float64(idx.TotalFiles) * 100
		}
		fmt.Fprintf(&b, "%-20s %8s files (%5.2f%%)\n", ext, humanize.Comma(int64(n)), pct)
	}
	b.WriteString("\n")

	b.WriteString("LARGEST FILES\n" + thin + "\n")
	largest := idx.FilesByLineCount
	if len(largest) > topLargest {
		largest = largest[:topLargest]
	}
	for _, f := range largest {
		fmt.Fprintf(&b, "%10s  %s\n", humanize.Comma(int64(f.LineCount)), f.Path)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "DIRECTORY STATISTICS (Top %d by file count)\n%s\n", topDirectories, thin)
	for _, node := range topDirs(idx, topDirectories) {
		fmt.Fprintf(&b, "%-40s %6s files, %10s lines", displayPath(node.Path),
			humanize.Comma(int64(node.ImmediateFileCount)), humanize.Comma(int64(node.ImmediateLineCount)))
		if types := topTypesNote(node.ExtensionHistogram); types != "" {
			b.WriteString("  Top types: " + types)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + rule + "\nEND OF REPORT\n")
	return b.String()
}

// topExtensions orders extensions by descending count, ties lexical.
func topExtensions(dist map[string]int, k int) []string {
	exts := make([]string, 0, len(dist))
	for ext := range dist {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if dist[exts[i]] != dist[exts[j]] {
			return dist[exts[i]] > dist[exts[j]]
		}
		return exts[i] < exts[j]
	})
	if len(exts) > k {
		exts = exts[:k]
	}
	return exts
}

// topDirs orders directories by descending immediate file count, ties by
// path, and drops directories with no files at all.
func topDirs(idx *model.RepositoryIndex, k int) []*model.DirectoryNode {
	nodes := make([]*model.DirectoryNode, 0, len(idx.DirectoryHierarchy))
	for _, node := range idx.DirectoryHierarchy {
		if node.ImmediateFileCount > 0 {
			nodes = append(nodes, node)
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].ImmediateFileCount != nodes[j].ImmediateFileCount {
			return nodes[i].ImmediateFileCount > nodes[j].ImmediateFileCount
		}
		return nodes[i].Path < nodes[j].Path
	})
	if len(nodes) > k {
		nodes = nodes[:k]
	}
	return nodes
}

func topTypesNote(hist map[string]int) string {
	exts := topExtensions(hist, 3)
	return strings.Join(exts, ", ")
}

func displayPath(path string) string {
	if path == "." {
		return "(root)"
	}
	return path + "/"
}
