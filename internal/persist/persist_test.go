package persist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phobologic/repoindex/internal/aggregate"
	"github.com/phobologic/repoindex/internal/guide"
	"github.com/phobologic/repoindex/internal/model"
)

func testIndex() *model.RepositoryIndex {
	dirs := []*model.DirectoryNode{
		{Path: ".", Subdirectories: []string{"src"}},
		{Path: "src", Depth: 1},
	}
	records := []model.FileRecord{
		{Path: "src/main.go", LineCount: 10, Extension: ".go"},
	}
	idx := aggregate.Build(dirs, records)
	idx.RepoName = "myrepo"
	return idx
}

func TestWriteAll(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out", "nested")
	written, err := WriteAll(testIndex(), guide.Default(), dir, "myrepo")
	if err != nil {
		t.Fatal(err)
	}

	wantFiles := []string{
		"myrepo_hierarchy.txt",
		"myrepo_summary.txt",
		"myrepo_documentation_guide.txt",
	}
	if len(written) != len(wantFiles) {
		t.Fatalf("wrote %d files, want %d", len(written), len(wantFiles))
	}
	for i, name := range wantFiles {
		if filepath.Base(written[i].Path) != name {
			t.Errorf("written[%d] = %s, want %s", i, written[i].Path, name)
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
		if written[i].Size != len(data) {
			t.Errorf("%s: reported size %d, actual %d", name, written[i].Size, len(data))
		}
	}

	hierarchy, err := os.ReadFile(filepath.Join(dir, "myrepo_hierarchy.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(hierarchy), "myrepo/ (10 lines)") {
		t.Errorf("hierarchy content:\n%s", hierarchy)
	}
}

func TestWriteAllOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stale := filepath.Join(dir, "myrepo_summary.txt")
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteAll(testIndex(), nil, dir, "myrepo"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(stale)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "stale" {
		t.Error("existing report was not overwritten")
	}
}

func TestWriteAllBadOutputDir(t *testing.T) {
	t.Parallel()

	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := WriteAll(testIndex(), nil, filepath.Join(blocker, "out"), "myrepo")
	if err == nil {
		t.Fatal("expected an error")
	}
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("error type %T, want *WriteError", err)
	}
}
