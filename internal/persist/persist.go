// Package persist writes the rendered reports to disk.
package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phobologic/repoindex/internal/guide"
	"github.com/phobologic/repoindex/internal/model"
	"github.com/phobologic/repoindex/internal/render"
)

// Kind identifies one of the three report files.
type Kind string

const (
	KindHierarchy Kind = "hierarchy"
	KindSummary   Kind = "summary"
	KindGuide     Kind = "documentation_guide"
)

// Written describes one successfully written report file.
type Written struct {
	Kind Kind
	Path string
	Size int
}

// WriteError reports a failure to write one report file. It is distinct from
// scan errors: the index was built fine, only persistence failed.
type WriteError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s report to %s: %v", e.Kind, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteAll renders and writes the three reports into outputDir, creating it
// as needed and overwriting existing files. File names are derived from
// repoName. On failure the error is a *WriteError naming the report that
// could not be written; files written before the failure are left in place.
func WriteAll(idx *model.RepositoryIndex, domains []guide.Domain, outputDir, repoName string) ([]Written, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, &WriteError{Kind: KindHierarchy, Path: outputDir, Err: err}
	}

	reports := []struct {
		kind    Kind
		content string
	}{
		{KindHierarchy, render.Hierarchy(idx)},
		{KindSummary, render.Summary(idx)},
		{KindGuide, render.Guide(idx, domains)},
	}

	written := make([]Written, 0, len(reports))
	for _, r := range reports {
		path := filepath.Join(outputDir, fmt.Sprintf("%s_%s.txt", repoName, r.kind))
		if err := os.WriteFile(path, []byte(r.content), 0o644); err != nil {
			return written, &WriteError{Kind: r.kind, Path: path, Err: err}
		}
		written = append(written, Written{Kind: r.kind, Path: path, Size: len(r.content)})
	}
	return written, nil
}
