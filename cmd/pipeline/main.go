package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scorepipe/scorepipe/internal/app"
	"github.com/scorepipe/scorepipe/internal/config"
	"github.com/scorepipe/scorepipe/internal/observability"
	idgen "github.com/scorepipe/scorepipe/internal/platform/id"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
)

func main() {
	task := flag.String("task", "bootstrap", "pipeline task: bootstrap, matches, standings, brackets or index")
	date := flag.String("date", "", "collection day for -task=matches, format YYYY-MM-DD (default today)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	if runID, err := idgen.NewRandomGenerator().NewID(); err == nil {
		logger = logger.With("run_id", runID)
	}
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		logger.Error("open stores", "error", err)
		os.Exit(1)
	}

	pipeline := app.NewPipeline(cfg, stores, logger)

	runErr := run(ctx, pipeline, *task, *date)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := stores.Close(shutdownCtx); err != nil {
		logger.Error("close stores failed", "error", err)
	}
	if err := shutdownUptrace(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace failed", "error", err)
	}

	if runErr != nil {
		logger.Error("pipeline task failed", "task", *task, "error", runErr)
		os.Exit(1)
	}
	logger.Info("pipeline task finished", "task", *task)
}

func run(ctx context.Context, pipeline *app.Pipeline, task, date string) error {
	switch task {
	case "bootstrap":
		return pipeline.Bootstrap.Run(ctx)
	case "matches":
		day := time.Now().UTC()
		if date != "" {
			parsed, err := time.Parse("2006-01-02", date)
			if err != nil {
				return fmt.Errorf("parse -date: %w", err)
			}
			day = parsed
		}
		_, err := pipeline.Ingest.IngestMatches(ctx, day)
		return err
	case "standings":
		_, err := pipeline.Ingest.IngestStandings(ctx)
		return err
	case "brackets":
		_, err := pipeline.Ingest.IngestBrackets(ctx)
		return err
	case "index":
		_, err := pipeline.Index.RebuildClubIndex(ctx)
		return err
	default:
		return fmt.Errorf("unknown task %q", task)
	}
}
