package ports

import (
	"context"

	"github.com/Arhosseini77/olmocr-parse/internal/core/domain"
)

// Workspace owns the scratch directory tree handed to the OCR pipeline.
type Workspace interface {
	// Reset removes the workspace if present and recreates it with an empty
	// results subdirectory. Idempotent.
	Reset() error
	// PurgeResults clears only the results subdirectory.
	PurgeResults() error
	Path() string
	ResultsPath() string
}

// SourceScanner discovers eligible input files on disk.
type SourceScanner interface {
	// ListEligible returns the eligible files directly inside dir,
	// lexicographically ordered. Subdirectories are not descended into.
	ListEligible(dir string) ([]string, error)
	// HasEligible reports whether dir directly contains at least one
	// eligible file.
	HasEligible(dir string) (bool, error)
	// Walk visits every directory under root exactly once, root included.
	Walk(root string, fn func(dir string) error) error
	// Preflight performs advisory verification of the listed inputs. It only
	// logs; the files are handed to the pipeline regardless.
	Preflight(files []string)
}

// PipelineRunner invokes the external OCR pipeline for one unit. ok is true
// iff the process exited zero; on a nonzero exit the captured stderr is
// returned for the caller to log. Failing to start the process is an error.
type PipelineRunner interface {
	Run(ctx context.Context, workspacePath string, inputs []string) (ok bool, stderr string, err error)
}

// RecordConverter turns pipeline results into Markdown artifacts.
type RecordConverter interface {
	Convert(resultsDir, destDir string) (domain.ConvertStats, error)
}

// CommandRunner executes an external command synchronously, capturing both
// output streams.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (exitCode int, stdout, stderr string, err error)
}

// RunRecorder records per-unit outcomes for observability.
type RunRecorder interface {
	ObserveUnit(outcome domain.UnitOutcome, seconds float64)
	AddRecords(n int)
	AddDecodeErrors(n int)
}
