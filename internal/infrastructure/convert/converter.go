package convert

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Arhosseini77/olmocr-parse/internal/core/domain"
)

// OCR text for a large document arrives as a single JSONL line that can reach
// several megabytes, so the line scanner needs a generous ceiling.
const maxLineBytes = 16 << 20

// Converter maps olmocr JSONL result records to Markdown artifacts. A record
// whose basename collides with an earlier one silently overwrites it.
type Converter struct {
	log *slog.Logger
}

func NewConverter(log *slog.Logger) *Converter {
	return &Converter{log: log}
}

// Convert writes one Markdown artifact per record found in resultsDir into
// destDir, creating destDir as needed. Malformed lines are logged and
// skipped; they never abort the file or the run.
func (c *Converter) Convert(resultsDir, destDir string) (domain.ConvertStats, error) {
	var stats domain.ConvertStats

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return stats, domain.WrapError(domain.ErrConversion, "create destination dir", err)
	}

	files, err := listResultFiles(resultsDir)
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		c.log.Info("no result files found", "dir", resultsDir)
		return stats, nil
	}

	for _, file := range files {
		records, decodeErrs, err := c.convertFile(file, destDir)
		stats.Records += records
		stats.DecodeErrors += decodeErrs
		if err != nil {
			return stats, err
		}
		stats.ResultFiles++
	}
	return stats, nil
}

func listResultFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, domain.WrapError(domain.ErrConversion, "read results dir", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".jsonl") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func (c *Converter) convertFile(path, destDir string) (records, decodeErrs int, err error) {
	c.log.Info("processing result file", "file", path)

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, domain.WrapError(domain.ErrConversion, "open result file", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec domain.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			c.log.Error("skipping malformed result line", "file", path, "line", lineNo, "error", err)
			decodeErrs++
			continue
		}

		artifact := domain.NewArtifact(rec)
		target := filepath.Join(destDir, artifact.Filename())
		if err := os.WriteFile(target, []byte(artifact.Content()), 0o644); err != nil {
			return records, decodeErrs, domain.WrapError(domain.ErrConversion, "write markdown", err)
		}
		c.log.Debug("created markdown", "file", target)
		records++
	}
	if err := scanner.Err(); err != nil {
		return records, decodeErrs, domain.WrapError(domain.ErrConversion, "read result file", err)
	}
	return records, decodeErrs, nil
}
