package discovery

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func newTestScanner() *Scanner {
	return NewScanner(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func TestEligibleExtensions(t *testing.T) {
	cases := map[string]bool{
		"a.pdf":      true,
		"a.PDF":      true,
		"a.png":      true,
		"a.jpg":      true,
		"a.JPEG":     true,
		"a.txt":      false,
		"a.pdf.bak":  false,
		"a":          false,
		"archive.gz": false,
	}
	for name, want := range cases {
		if got := Eligible(name); got != want {
			t.Errorf("Eligible(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestListEligibleIsFlatAndOrdered(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.png"))
	touch(t, filepath.Join(dir, "a.PDF"))
	touch(t, filepath.Join(dir, "d.JPEG"))
	touch(t, filepath.Join(dir, "c.txt"))
	touch(t, filepath.Join(dir, "nested", "e.pdf"))

	files, err := newTestScanner().ListEligible(dir)
	if err != nil {
		t.Fatalf("ListEligible() error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.PDF"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "d.JPEG"),
	}
	if !slices.Equal(files, want) {
		t.Fatalf("ListEligible() = %v, want %v", files, want)
	}
}

func TestListEligibleMissingDir(t *testing.T) {
	_, err := newTestScanner().ListEligible(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("ListEligible() on missing dir succeeded, want error")
	}
}

func TestHasEligible(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "notes.txt"))

	s := newTestScanner()
	ok, err := s.HasEligible(dir)
	if err != nil {
		t.Fatalf("HasEligible() error: %v", err)
	}
	if ok {
		t.Fatal("HasEligible() = true for a dir without inputs")
	}

	touch(t, filepath.Join(dir, "scan.jpeg"))
	ok, err = s.HasEligible(dir)
	if err != nil {
		t.Fatalf("HasEligible() error: %v", err)
	}
	if !ok {
		t.Fatal("HasEligible() = false for a dir with a jpeg")
	}
}

func TestWalkVisitsEveryDirectoryOnce(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a", "x.pdf"))
	touch(t, filepath.Join(root, "a", "b", "y.pdf"))
	touch(t, filepath.Join(root, "c", "z.txt"))

	var visited []string
	err := newTestScanner().Walk(root, func(dir string) error {
		visited = append(visited, dir)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	want := []string{
		root,
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "b"),
		filepath.Join(root, "c"),
	}
	slices.Sort(visited)
	slices.Sort(want)
	if !slices.Equal(visited, want) {
		t.Fatalf("Walk() visited %v, want %v", visited, want)
	}
}

func TestWalkSkipsFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "only.pdf"))

	count := 0
	err := newTestScanner().Walk(root, func(string) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if count != 1 {
		t.Fatalf("Walk() visited %d dirs, want 1 (root only)", count)
	}
}

func TestPreflightDisabledIsNoop(t *testing.T) {
	// verifyInputs=false must not even stat the files.
	s := newTestScanner()
	s.Preflight([]string{"/definitely/missing.pdf"})
}
