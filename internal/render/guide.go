package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"

	"github.com/phobologic/repoindex/internal/guide"
	"github.com/phobologic/repoindex/internal/model"
)

// Guide renders the subdomain navigation guide. Domains are grouped under
// their category in first-appearance order; each entry lists its doc and code
// patterns plus an approximate line count summed from matching directories.
// The layout is a wire contract: downstream tooling extracts the bracketed
// ids and the Docs/Code/Lines rows by pattern matching.
func Guide(idx *model.RepositoryIndex, domains []guide.Domain) string {
	var b strings.Builder
	rule := strings.Repeat("=", reportWidth)

	name := idx.RepoName
	if name == "" {
		name = "repository"
	}
	b.WriteString(rule + "\n")
	b.WriteString("DOCUMENTATION GUIDE: " + name + "\n")
	b.WriteString(rule + "\n")

	var categories []string
	byCategory := map[string][]guide.Domain{}
	for _, d := range domains {
		cat := d.Category
		if cat == "" {
			cat = "GENERAL"
		}
		if _, ok := byCategory[cat]; !ok {
			categories = append(categories, cat)
		}
		byCategory[cat] = append(byCategory[cat], d)
	}

	for _, cat := range categories {
		b.WriteString("\n" + strings.ToUpper(cat) + "\n")
		b.WriteString(strings.Repeat("─", reportWidth) + "\n")
		for _, d := range byCategory[cat] {
			fmt.Fprintf(&b, "[%s] %s\n", d.ID, d.Title)
			if len(d.Docs) > 0 {
				b.WriteString("    Docs: " + strings.Join(d.Docs, ", ") + "\n")
			}
			if len(d.Code) > 0 {
				b.WriteString("    Code: " + strings.Join(d.Code, ", ") + "\n")
			}
			fmt.Fprintf(&b, "    Lines: ~%s\n", humanize.Comma(int64(domainLines(idx, d))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// domainLines sums TotalLineCount over directories matched by the domain's
// code patterns. Directories are visited in lexical order and a directory
// whose ancestor already matched is skipped, so nested matches are not
// double-counted.
func domainLines(idx *model.RepositoryIndex, d guide.Domain) int {
	paths := make([]string, 0, len(idx.DirectoryHierarchy))
	for p := range idx.DirectoryHierarchy {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var total int
	var matched []string
	for _, p := range paths {
		if p == "." || ancestorMatched(matched, p) {
			continue
		}
		for _, pattern := range d.Code {
			if matchesPattern(pattern, p) {
				total += idx.DirectoryHierarchy[p].TotalLineCount
				matched = append(matched, p)
				break
			}
		}
	}
	return total
}

func ancestorMatched(matched []string, path string) bool {
	for _, m := range matched {
		if strings.HasPrefix(path, m+"/") {
			return true
		}
	}
	return false
}

// matchesPattern matches a directory path against a glob. A "base/**"
// pattern also matches the base directory itself, since the intent is "this
// subtree" and the base's TotalLineCount already covers it.
func matchesPattern(pattern, path string) bool {
	if base, ok := strings.CutSuffix(pattern, "/**"); ok && base == path {
		return true
	}
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}
