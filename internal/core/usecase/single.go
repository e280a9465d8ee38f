package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/Arhosseini77/olmocr-parse/internal/core/domain"
	"github.com/Arhosseini77/olmocr-parse/internal/core/ports"
)

// SingleRun runs the OCR pipeline once over one fixed source directory and
// converts the results into one destination directory. Unlike TreeRun it
// resets the workspace before looking at the sources and never purges it
// afterwards, since the process exits right after.
type SingleRun struct {
	ws        ports.Workspace
	scanner   ports.SourceScanner
	pipeline  ports.PipelineRunner
	converter ports.RecordConverter
	recorder  ports.RunRecorder
	log       *slog.Logger

	sourceDir string
	destDir   string
}

func NewSingleRun(
	ws ports.Workspace,
	scanner ports.SourceScanner,
	pipeline ports.PipelineRunner,
	converter ports.RecordConverter,
	recorder ports.RunRecorder,
	log *slog.Logger,
	sourceDir, destDir string,
) *SingleRun {
	return &SingleRun{
		ws:        ws,
		scanner:   scanner,
		pipeline:  pipeline,
		converter: converter,
		recorder:  recorder,
		log:       log,
		sourceDir: sourceDir,
		destDir:   destDir,
	}
}

func (uc *SingleRun) Execute(ctx context.Context) error {
	start := time.Now()

	if err := uc.ws.Reset(); err != nil {
		return err
	}

	files, err := uc.scanner.ListEligible(uc.sourceDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		uc.log.Info("no eligible files found", "dir", uc.sourceDir)
		uc.recorder.ObserveUnit(domain.UnitSkippedEmpty, time.Since(start).Seconds())
		return nil
	}
	uc.scanner.Preflight(files)

	ok, stderr, err := uc.pipeline.Run(ctx, uc.ws.Path(), files)
	if err != nil {
		return err
	}
	if !ok {
		uc.log.Error("ocr pipeline failed, skipping conversion", "stderr", stderr)
		uc.recorder.ObserveUnit(domain.UnitPipelineFailed, time.Since(start).Seconds())
		return nil
	}

	stats, err := uc.converter.Convert(uc.ws.ResultsPath(), uc.destDir)
	if err != nil {
		return err
	}
	uc.recorder.AddRecords(stats.Records)
	uc.recorder.AddDecodeErrors(stats.DecodeErrors)
	uc.recorder.ObserveUnit(domain.UnitConverted, time.Since(start).Seconds())

	uc.log.Info("run done", "records", stats.Records, "decode_errors", stats.DecodeErrors)
	return nil
}
