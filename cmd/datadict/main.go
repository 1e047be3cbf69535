package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	"github.com/amritkgill/tariffs-profit-shifting/internal/dataset"
	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/internal/infrastructure"
)

func main() {
	input := flag.String("in", "", "merged panel CSV (defaults to data/processed/merged_panel.csv relative to the executable)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *input == "" {
		*input = paths.MergedPanelCSV
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.Logging.FilePath = paths.GetLogPath("datadict.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger = logger.With(slog.String("run_id", infrastructure.GetRunID(ctx)))

	logger.Info("Starting data dictionary and summary statistics",
		slog.String("input", *input))

	rows, err := dataset.ReadMergedPanel(*input)
	if err != nil {
		logger.Error("Failed to read merged panel", "error", apperrors.Wrap("datadict", "read merged panel", err))
		os.Exit(1)
	}
	fmt.Printf("Loaded %d firm-year rows\n", len(rows))

	if err := dataset.WriteDictionary(paths.DataDictionaryCSV, dataset.Dictionary()); err != nil {
		logger.Error("Failed to write data dictionary", "error", apperrors.Wrap("datadict", "write data dictionary", err))
		os.Exit(1)
	}
	fmt.Printf("Wrote data dictionary: %s\n", paths.DataDictionaryCSV)

	summaries := dataset.Summarize(rows)
	if err := dataset.WriteSummary(paths.SummaryStatisticsCSV, summaries); err != nil {
		logger.Error("Failed to write summary statistics", "error", apperrors.Wrap("datadict", "write summary statistics", err))
		os.Exit(1)
	}
	fmt.Printf("Wrote summary statistics for %d variables\n", len(summaries))

	// Checks are reported, not enforced, at this stage; the merge stage
	// already failed on any fatal condition.
	checks, err := dataset.QualityChecks(rows, cfg.Sample, logger)
	if err != nil {
		logger.Warn("Quality checks reported failures", "error", err)
	}
	report := dataset.ChecksReport(rows, checks)
	if err := dataset.WriteChecksReport(paths.DataChecksTXT, report); err != nil {
		logger.Error("Failed to write checks report", "error", apperrors.Wrap("datadict", "write checks report", err))
		os.Exit(1)
	}
	fmt.Printf("Wrote data checks: %s\n", paths.DataChecksTXT)

	logger.Info("Data dictionary stage complete",
		slog.Int("rows", len(rows)),
		slog.Int("variables", len(summaries)))
	fmt.Println("Data dictionary stage complete")
}
