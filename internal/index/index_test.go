package index

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/phobologic/repoindex/internal/model"
)

func TestScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "README.md", "one\ntwo\nthree\n")
	writeFile(t, dir, "src/main.go", lines(10))
	writeFile(t, dir, "src/util/helper.go", lines(5))

	idx, err := Scan(dir, Options{RepoName: "demo", MaxDepth: -1})
	if err != nil {
		t.Fatal(err)
	}

	if idx.TotalFiles != 3 || idx.TotalLines != 18 || idx.TotalDirectories != 3 {
		t.Fatalf("totals = %d files, %d lines, %d dirs", idx.TotalFiles, idx.TotalLines, idx.TotalDirectories)
	}
	wantTotals := map[string]int{".": 18, "src": 15, "src/util": 5}
	for path, want := range wantTotals {
		if got := idx.DirectoryHierarchy[path].TotalLineCount; got != want {
			t.Errorf("%s: TotalLineCount = %d, want %d", path, got, want)
		}
	}
	if idx.RepoName != "demo" {
		t.Errorf("RepoName = %q", idx.RepoName)
	}
	if idx.IndexedAt.IsZero() {
		t.Error("IndexedAt not set")
	}
	if idx.MaxDepthObserved != 2 {
		t.Errorf("MaxDepthObserved = %d, want 2", idx.MaxDepthObserved)
	}
	if len(idx.FilesByLineCount) != 3 || idx.FilesByLineCount[0].Path != "src/main.go" {
		t.Errorf("ranking = %+v", idx.FilesByLineCount)
	}
	if err := model.Validate(idx); err != nil {
		t.Error(err)
	}
}

func TestScanWorkerCountIrrelevant(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.txt", lines(1))
	writeFile(t, dir, "sub/b.txt", lines(2))
	writeFile(t, dir, "sub/c.txt", lines(3))

	one, err := Scan(dir, Options{MaxDepth: -1, Parallel: false, Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	four, err := Scan(dir, Options{MaxDepth: -1, Parallel: true, Workers: 4})
	if err != nil {
		t.Fatal(err)
	}

	if one.TotalLines != four.TotalLines {
		t.Errorf("TotalLines: %d vs %d", one.TotalLines, four.TotalLines)
	}
	if !reflect.DeepEqual(one.FileTypeDistribution, four.FileTypeDistribution) {
		t.Errorf("distributions differ: %v vs %v", one.FileTypeDistribution, four.FileTypeDistribution)
	}
	if !reflect.DeepEqual(one.FilesByLineCount, four.FilesByLineCount) {
		t.Errorf("rankings differ: %v vs %v", one.FilesByLineCount, four.FilesByLineCount)
	}
}

func TestScanMaxDepth(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "README.md", lines(3))
	writeFile(t, dir, "src/main.go", lines(10))
	writeFile(t, dir, "src/util/helper.go", lines(5))

	idx, err := Scan(dir, Options{MaxDepth: 1})
	if err != nil {
		t.Fatal(err)
	}

	for _, rec := range idx.FilesByLineCount {
		if rec.Path == "src/util/helper.go" {
			t.Error("file below the depth limit must not be ranked")
		}
	}
	if idx.TotalLines != 13 {
		t.Errorf("TotalLines = %d, want 13", idx.TotalLines)
	}
	src := idx.DirectoryHierarchy["src"]
	if len(src.Subdirectories) != 1 || src.Subdirectories[0] != "util" {
		t.Errorf("src subdirectories = %v", src.Subdirectories)
	}
}

func TestScanExclusions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "main.go", lines(4))
	writeFile(t, dir, ".git/objects/ab", lines(100))
	writeFile(t, dir, "node_modules/dep/index.js", lines(100))
	writeFile(t, dir, "private/secret.txt", lines(100))

	idx, err := Scan(dir, Options{MaxDepth: -1, ExtraExcludes: []string{"private"}})
	if err != nil {
		t.Fatal(err)
	}

	if idx.TotalFiles != 1 || idx.TotalLines != 4 {
		t.Errorf("totals = %d files, %d lines", idx.TotalFiles, idx.TotalLines)
	}
	if _, ok := idx.DirectoryHierarchy["private"]; ok {
		t.Error("excluded directory present in hierarchy")
	}
}

func TestScanEmpty(t *testing.T) {
	t.Parallel()

	idx, err := Scan(t.TempDir(), Options{MaxDepth: -1})
	if err != nil {
		t.Fatal(err)
	}
	if idx.TotalFiles != 0 || idx.TotalLines != 0 {
		t.Errorf("totals = %d files, %d lines", idx.TotalFiles, idx.TotalLines)
	}
	if idx.DirectoryHierarchy["."] == nil {
		t.Error("root node missing")
	}
}

func TestScanBadRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Scan(filepath.Join(dir, "missing"), Options{})
	var se *ScanError
	if !errors.As(err, &se) {
		t.Fatalf("missing root: error type %T, want *ScanError", err)
	}

	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Scan(file, Options{})
	if !errors.As(err, &se) {
		t.Fatalf("file root: error type %T, want *ScanError", err)
	}
	if !errors.Is(err, errNotDirectory) {
		t.Errorf("file root error = %v, want wrapped errNotDirectory", err)
	}
}

func lines(n int) string {
	var b []byte
	for i := 0; i < n; i++ {
		b = append(b, 'x', '\n')
	}
	return string(b)
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
