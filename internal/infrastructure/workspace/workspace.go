package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Arhosseini77/olmocr-parse/internal/core/domain"
)

// Manager owns the scratch directory tree the OCR pipeline writes into.
// Exactly one processing unit uses it at a time.
type Manager struct {
	path       string
	resultsDir string
}

func New(path, resultsDir string) (*Manager, error) {
	if path == "" {
		return nil, fmt.Errorf("workspace path is empty")
	}
	if resultsDir == "" {
		resultsDir = "results"
	}
	return &Manager{path: path, resultsDir: resultsDir}, nil
}

func (m *Manager) Path() string { return m.path }

func (m *Manager) ResultsPath() string { return filepath.Join(m.path, m.resultsDir) }

// Reset removes the whole workspace tree if present and recreates it with an
// empty results subdirectory.
func (m *Manager) Reset() error {
	if err := os.RemoveAll(m.path); err != nil {
		return domain.WrapError(domain.ErrWorkspace, "remove workspace", err)
	}
	if err := os.MkdirAll(m.ResultsPath(), 0o755); err != nil {
		return domain.WrapError(domain.ErrWorkspace, "create workspace", err)
	}
	return nil
}

// PurgeResults clears only the results subdirectory, keeping the rest of the
// workspace for the next unit.
func (m *Manager) PurgeResults() error {
	if err := os.RemoveAll(m.ResultsPath()); err != nil {
		return domain.WrapError(domain.ErrWorkspace, "remove results", err)
	}
	if err := os.MkdirAll(m.ResultsPath(), 0o755); err != nil {
		return domain.WrapError(domain.ErrWorkspace, "create results", err)
	}
	return nil
}
