package discovery

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// Preflight sniffs each input's real content type and, for PDFs, reads the
// page count. Advisory only: mismatches and unreadable files are logged and
// the files are still handed to the pipeline, which owns the real parsing.
func (s *Scanner) Preflight(files []string) {
	if !s.verifyInputs {
		return
	}
	for _, f := range files {
		s.preflightFile(f)
	}
}

func (s *Scanner) preflightFile(path string) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		s.log.Warn("input sniff failed", "file", path, "error", err)
		return
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !mimeMatchesExt(mtype, ext) {
		s.log.Warn("input content type does not match extension",
			"file", path, "ext", ext, "detected", mtype.String())
	}
	if ext == ".pdf" {
		s.preflightPDF(path)
	}
}

func mimeMatchesExt(mtype *mimetype.MIME, ext string) bool {
	switch ext {
	case ".pdf":
		return mtype.Is("application/pdf")
	case ".png":
		return mtype.Is("image/png")
	case ".jpg", ".jpeg":
		return mtype.Is("image/jpeg")
	default:
		return false
	}
}

func (s *Scanner) preflightPDF(path string) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("pdf preflight aborted", "file", path, "reason", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		s.log.Warn("pdf preflight failed", "file", path, "error", err)
		return
	}
	defer f.Close()
	s.log.Debug("pdf preflight", "file", path, "pages", r.NumPage())
}
