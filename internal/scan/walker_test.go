package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	ignore "github.com/sabhiram/go-gitignore"
)

// writeTree creates files under root from relative path -> content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func collect(t *testing.T, w *Walker) []string {
	t.Helper()
	var paths []string
	for p := range w.Files(context.Background()) {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func TestWalkerYieldsAllFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":           "hi",
		"b/c.txt":         "bye",
		"b/d/e.txt":       "deep",
		"f/also here.txt": "spaces",
	})

	w, err := NewWalker(root)
	if err != nil {
		t.Fatalf("NewWalker() unexpected error: %v", err)
	}

	got := collect(t, w)
	want := []string{
		filepath.Join(w.Root(), "a.txt"),
		filepath.Join(w.Root(), "b", "c.txt"),
		filepath.Join(w.Root(), "b", "d", "e.txt"),
		filepath.Join(w.Root(), "f", "also here.txt"),
	}
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("Files() yielded %d paths, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Files()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if w.DirsListed() != 4 { // root, b, b/d, f
		t.Errorf("DirsListed() = %d, want 4", w.DirsListed())
	}
}

func TestWalkerMissingRoot(t *testing.T) {
	_, err := NewWalker(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("NewWalker() expected error for missing root, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("NewWalker() error = %v, want os.ErrNotExist", err)
	}
}

func TestWalkerRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	os.WriteFile(file, []byte("x"), 0644)

	_, err := NewWalker(file)
	if !errors.Is(err, ErrRootNotDirectory) {
		t.Errorf("NewWalker() error = %v, want ErrRootNotDirectory", err)
	}
}

func TestWalkerSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"real.txt":       "data",
		"target/in.txt":  "inside",
		"other/keep.txt": "kept",
	})
	if err := os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "target"), filepath.Join(root, "linkdir")); err != nil {
		t.Fatal(err)
	}

	w, err := NewWalker(root)
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range collect(t, w) {
		base := filepath.Base(p)
		if base == "link.txt" {
			t.Error("Files() yielded a symlinked file")
		}
		if filepath.Base(filepath.Dir(p)) == "linkdir" {
			t.Error("Files() descended into a symlinked directory")
		}
	}
}

func TestWalkerSkipsUnreadableDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"visible/a.txt": "a",
		"hidden/b.txt":  "b",
	})
	hidden := filepath.Join(root, "hidden")
	if err := os.Chmod(hidden, 0000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(hidden, 0755) })

	w, err := NewWalker(root)
	if err != nil {
		t.Fatal(err)
	}

	got := collect(t, w)
	if len(got) != 1 || filepath.Base(got[0]) != "a.txt" {
		t.Errorf("Files() = %v, want only visible/a.txt", got)
	}
	if w.DirsSkipped() != 1 {
		t.Errorf("DirsSkipped() = %d, want 1", w.DirsSkipped())
	}
}

func TestWalkerExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep.txt":          "k",
		"skip.log":          "s",
		"node_modules/x.js": "x",
		"src/app.js":        "a",
	})

	matcher := ignore.CompileIgnoreLines("*.log", "node_modules")
	w, err := NewWalker(root, WithExcludes(matcher))
	if err != nil {
		t.Fatal(err)
	}

	got := collect(t, w)
	var bases []string
	for _, p := range got {
		bases = append(bases, filepath.Base(p))
	}
	sort.Strings(bases)

	want := []string{"app.js", "keep.txt"}
	if len(bases) != len(want) {
		t.Fatalf("Files() with excludes = %v, want %v", bases, want)
	}
	for i := range want {
		if bases[i] != want[i] {
			t.Errorf("Files() with excludes = %v, want %v", bases, want)
			break
		}
	}
}

func TestWalkerCancellation(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/1.txt": "1",
		"b/2.txt": "2",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w, err := NewWalker(root)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for range w.Files(ctx) {
		count++
	}
	if count != 0 {
		t.Errorf("Files() yielded %d paths after cancellation, want 0", count)
	}
}

func TestWalkerFreshIteration(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "x", "b.txt": "y"})

	w, err := NewWalker(root)
	if err != nil {
		t.Fatal(err)
	}

	first := collect(t, w)
	second := collect(t, w)
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("repeat walks yielded %d then %d paths, want 2 and 2", len(first), len(second))
	}
}
