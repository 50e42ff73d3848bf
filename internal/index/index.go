// Package index is the engine entry point: one Scan call turns a root path
// into a complete RepositoryIndex.
package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/phobologic/repoindex/internal/aggregate"
	"github.com/phobologic/repoindex/internal/batch"
	"github.com/phobologic/repoindex/internal/classify"
	"github.com/phobologic/repoindex/internal/model"
	"github.com/phobologic/repoindex/internal/ranking"
	"github.com/phobologic/repoindex/internal/walk"
)

var errNotDirectory = errors.New("not a directory")

// ScanError is returned when the scan root does not exist or is not a
// directory. Every other failure mode during a scan is absorbed as zero-line
// counts, so this is the only error Scan can produce.
type ScanError struct {
	Root string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scanning %s: %v", e.Root, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// Options configure one scan. The zero value scans synchronously with
// unlimited depth, built-in exclusions only, and no logging.
type Options struct {
	RepoName      string
	RepoURL       string
	MaxDepth      int  // negative means unlimited
	Parallel      bool // count lines on the worker pool
	Workers       int  // <= 0 means available CPU count
	ExtraExcludes []string
	UseGitignore  bool
	Logger        zerolog.Logger
}

// Scan indexes the tree rooted at root. It validates the root, walks the
// tree single-threaded, counts lines on the worker pool, aggregates, and
// ranks. Each call is a pure function of the tree's current state; nothing
// is cached between runs.
func Scan(root string, opts Options) (*model.RepositoryIndex, error) {
	startedAt := time.Now()
	log := opts.Logger

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &ScanError{Root: root, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &ScanError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &ScanError{Root: root, Err: errNotDirectory}
	}

	cls := classify.New(opts.ExtraExcludes...)
	if opts.UseGitignore {
		cls = cls.WithGitignore(abs)
	}

	res := walk.Tree(abs, cls, opts.MaxDepth)
	log.Debug().
		Int("directories", len(res.Directories)).
		Int("files", len(res.Files)).
		Msg("traversal complete")

	records := batch.Process(res.Files, opts.Workers, opts.Parallel, nil, log)
	log.Debug().Int("records", len(records)).Msg("counting complete")

	idx := aggregate.Build(res.Directories, records)
	idx.RepoName = opts.RepoName
	idx.RepoURL = opts.RepoURL
	idx.IndexedAt = startedAt
	idx.MaxDepthObserved = res.MaxDepth
	idx.FilesByLineCount = ranking.Top(records, ranking.TopFiles)
	return idx, nil
}
