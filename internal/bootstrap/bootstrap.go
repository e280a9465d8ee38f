package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Arhosseini77/olmocr-parse/internal/config"
	"github.com/Arhosseini77/olmocr-parse/internal/core/ports"
	"github.com/Arhosseini77/olmocr-parse/internal/core/usecase"
	"github.com/Arhosseini77/olmocr-parse/internal/infrastructure/convert"
	"github.com/Arhosseini77/olmocr-parse/internal/infrastructure/discovery"
	"github.com/Arhosseini77/olmocr-parse/internal/infrastructure/pipeline"
	"github.com/Arhosseini77/olmocr-parse/internal/infrastructure/workspace"
	"github.com/Arhosseini77/olmocr-parse/internal/observability/logging"
	"github.com/Arhosseini77/olmocr-parse/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Log     *slog.Logger
	Metrics *metrics.BatchMetrics

	TreeRun   ports.BatchProcessor
	SingleRun ports.BatchProcessor
}

func New(service string, cfg config.Config) (*App, error) {
	log := logging.New(service, cfg.LogLevel, cfg.LogFormat).With("run_id", uuid.NewString())
	batchMetrics := metrics.NewBatchMetrics(service)

	ws, err := workspace.New(cfg.WorkspacePath, cfg.ResultsDirName)
	if err != nil {
		return nil, fmt.Errorf("init workspace: %w", err)
	}
	scanner := discovery.NewScanner(log, cfg.VerifyInputs)
	runner := pipeline.NewRunner(
		pipeline.ExecRunner{},
		cfg.PipelineProgram,
		cfg.PipelineArgs,
		cfg.PipelineInputFlag,
		cfg.PipelineTimeout(),
		log,
	)
	converter := convert.NewConverter(log)

	return &App{
		Config:    cfg,
		Log:       log,
		Metrics:   batchMetrics,
		TreeRun:   usecase.NewTreeRun(ws, scanner, runner, converter, batchMetrics, log, cfg.SourceRoot, cfg.DestRoot),
		SingleRun: usecase.NewSingleRun(ws, scanner, runner, converter, batchMetrics, log, cfg.SourceRoot, cfg.DestRoot),
	}, nil
}

// Close flushes end-of-run observability artifacts.
func (a *App) Close() {
	if a.Config.MetricsTextfile == "" {
		return
	}
	if err := a.Metrics.WriteTextfile(a.Config.MetricsTextfile); err != nil {
		a.Log.Warn("write metrics textfile", "path", a.Config.MetricsTextfile, "error", err)
	}
}
