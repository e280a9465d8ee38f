package domain

import (
	"path/filepath"
	"strings"
)

const metadataSourceFile = "Source-File"

// Record is one JSON object decoded from one line of an olmocr results file.
type Record struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// SourceIdentifier resolves the originating source file of the record:
// metadata Source-File if present, else the document id, else "unknown".
func (r Record) SourceIdentifier() string {
	if v, ok := r.Metadata[metadataSourceFile]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if r.ID != "" {
		return r.ID
	}
	return "unknown"
}

// Artifact is the Markdown rendering of one Record.
type Artifact struct {
	// Source is the basename of the record's source identifier, extension included.
	Source string
	Text   string
}

func NewArtifact(r Record) Artifact {
	return Artifact{
		Source: filepath.Base(r.SourceIdentifier()),
		Text:   r.Text,
	}
}

// Filename is the artifact's file name: the source basename with its
// extension swapped for .md.
func (a Artifact) Filename() string {
	return strings.TrimSuffix(a.Source, filepath.Ext(a.Source)) + ".md"
}

// Content is the full Markdown body: a header naming the source file, a blank
// line, then the OCR text verbatim.
func (a Artifact) Content() string {
	return "# " + a.Source + "\n\n" + a.Text
}

// ConvertStats summarizes one conversion pass over a results directory.
type ConvertStats struct {
	ResultFiles  int
	Records      int
	DecodeErrors int
}

// UnitOutcome is the terminal state of one processing unit (one source
// directory in tree mode, the whole run in single mode).
type UnitOutcome string

const (
	UnitConverted      UnitOutcome = "converted"
	UnitSkippedEmpty   UnitOutcome = "skipped_empty"
	UnitPipelineFailed UnitOutcome = "pipeline_failed"
)
