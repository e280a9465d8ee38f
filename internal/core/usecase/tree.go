package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Arhosseini77/olmocr-parse/internal/core/domain"
	"github.com/Arhosseini77/olmocr-parse/internal/core/ports"
)

// TreeRun walks a source tree and runs the OCR pipeline over every directory
// that directly holds eligible files, mirroring the tree shape under the
// destination root. Directories are processed strictly one at a time because
// they share a single workspace.
type TreeRun struct {
	ws        ports.Workspace
	scanner   ports.SourceScanner
	pipeline  ports.PipelineRunner
	converter ports.RecordConverter
	recorder  ports.RunRecorder
	log       *slog.Logger

	sourceRoot string
	destRoot   string
}

func NewTreeRun(
	ws ports.Workspace,
	scanner ports.SourceScanner,
	pipeline ports.PipelineRunner,
	converter ports.RecordConverter,
	recorder ports.RunRecorder,
	log *slog.Logger,
	sourceRoot, destRoot string,
) *TreeRun {
	return &TreeRun{
		ws:         ws,
		scanner:    scanner,
		pipeline:   pipeline,
		converter:  converter,
		recorder:   recorder,
		log:        log,
		sourceRoot: sourceRoot,
		destRoot:   destRoot,
	}
}

// Execute processes the whole tree. A pipeline failure is contained to its
// directory; filesystem failures abort the walk.
func (uc *TreeRun) Execute(ctx context.Context) error {
	return uc.scanner.Walk(uc.sourceRoot, func(dir string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return uc.processDirectory(ctx, dir)
	})
}

func (uc *TreeRun) processDirectory(ctx context.Context, dir string) error {
	start := time.Now()

	files, err := uc.scanner.ListEligible(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		uc.log.Info("no eligible files, skipping directory", "dir", dir)
		uc.recorder.ObserveUnit(domain.UnitSkippedEmpty, time.Since(start).Seconds())
		return nil
	}

	uc.log.Info("processing directory", "dir", dir, "files", len(files))
	uc.scanner.Preflight(files)

	if err := uc.ws.Reset(); err != nil {
		return err
	}

	ok, stderr, err := uc.pipeline.Run(ctx, uc.ws.Path(), files)
	if err != nil {
		return err
	}
	if !ok {
		uc.log.Error("ocr pipeline failed, skipping conversion", "dir", dir, "stderr", stderr)
		uc.recorder.ObserveUnit(domain.UnitPipelineFailed, time.Since(start).Seconds())
		return nil
	}

	destDir, err := uc.destinationFor(dir)
	if err != nil {
		return err
	}
	stats, err := uc.converter.Convert(uc.ws.ResultsPath(), destDir)
	if err != nil {
		return err
	}
	uc.recorder.AddRecords(stats.Records)
	uc.recorder.AddDecodeErrors(stats.DecodeErrors)

	if err := uc.ws.PurgeResults(); err != nil {
		return err
	}

	uc.recorder.ObserveUnit(domain.UnitConverted, time.Since(start).Seconds())
	uc.log.Info("directory done",
		"dir", dir,
		"records", stats.Records,
		"decode_errors", stats.DecodeErrors,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

func (uc *TreeRun) destinationFor(dir string) (string, error) {
	rel, err := filepath.Rel(uc.sourceRoot, dir)
	if err != nil {
		return "", fmt.Errorf("relativize %s under %s: %w", dir, uc.sourceRoot, err)
	}
	return filepath.Join(uc.destRoot, rel), nil
}
