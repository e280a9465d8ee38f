package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResetCreatesCleanTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	m, err := New(root, "results")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := m.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	assertEmptyDir(t, m.ResultsPath())
}

func TestResetRemovesStaleContent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	m, err := New(root, "results")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := m.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}

	stale := filepath.Join(m.ResultsPath(), "old.jsonl")
	if err := os.WriteFile(stale, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("seed stale file: %v", err)
	}
	scratch := filepath.Join(root, "scratch.bin")
	if err := os.WriteFile(scratch, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed scratch file: %v", err)
	}

	if err := m.Reset(); err != nil {
		t.Fatalf("second Reset() error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale result survived reset")
	}
	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Fatalf("scratch file survived reset")
	}
	assertEmptyDir(t, m.ResultsPath())
}

func TestResetIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	m, err := New(root, "results")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := m.Reset(); err != nil {
		t.Fatalf("first Reset() error: %v", err)
	}
	if err := m.Reset(); err != nil {
		t.Fatalf("second Reset() error: %v", err)
	}
	assertEmptyDir(t, m.ResultsPath())
}

func TestPurgeResultsKeepsWorkspace(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	m, err := New(root, "results")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := m.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}

	keep := filepath.Join(root, "model_cache")
	if err := os.MkdirAll(keep, 0o755); err != nil {
		t.Fatalf("seed workspace dir: %v", err)
	}
	stale := filepath.Join(m.ResultsPath(), "out.jsonl")
	if err := os.WriteFile(stale, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("seed result: %v", err)
	}

	if err := m.PurgeResults(); err != nil {
		t.Fatalf("PurgeResults() error: %v", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("workspace sibling removed by purge: %v", err)
	}
	assertEmptyDir(t, m.ResultsPath())
}

func TestNewRejectsEmptyPath(t *testing.T) {
	if _, err := New("", "results"); err == nil {
		t.Fatal("New(\"\") succeeded, want error")
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	if len(entries) != 0 {
		t.Fatalf("%s not empty: %d entries", dir, len(entries))
	}
}
