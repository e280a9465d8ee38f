package discovery

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Arhosseini77/olmocr-parse/internal/core/domain"
)

var eligibleExts = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// Scanner lists OCR-eligible files and walks source trees.
type Scanner struct {
	log          *slog.Logger
	verifyInputs bool
}

func NewScanner(log *slog.Logger, verifyInputs bool) *Scanner {
	return &Scanner{log: log, verifyInputs: verifyInputs}
}

// Eligible reports whether name carries one of the supported input
// extensions, case-insensitively.
func Eligible(name string) bool {
	_, ok := eligibleExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ListEligible returns the eligible files directly inside dir, in
// lexicographic order. Subdirectories are not descended into.
func (s *Scanner) ListEligible(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDiscovery, "read source dir", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !Eligible(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func (s *Scanner) HasEligible(dir string) (bool, error) {
	files, err := s.ListEligible(dir)
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

// Walk visits every directory under root exactly once, root included.
// Directory symlinks are not followed, so a symlink cycle cannot recurse.
func (s *Scanner) Walk(root string, fn func(dir string) error) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fn(path)
	})
	if err != nil {
		return domain.WrapError(domain.ErrDiscovery, "walk source tree", err)
	}
	return nil
}
