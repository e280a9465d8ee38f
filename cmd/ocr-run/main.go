package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Arhosseini77/olmocr-parse/internal/bootstrap"
	"github.com/Arhosseini77/olmocr-parse/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New("ocr-run", cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	app.Log.Info("starting single run", "source", cfg.SourceRoot, "dest", cfg.DestRoot)
	if err := app.SingleRun.Execute(ctx); err != nil {
		app.Log.Error("run aborted", "error", err)
		app.Close()
		os.Exit(1)
	}
}
