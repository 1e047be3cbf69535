package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/amritkgill/tariffs-profit-shifting/internal/bloomberg"
	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	"github.com/amritkgill/tariffs-profit-shifting/internal/dataset"
	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/internal/infrastructure"
	"github.com/amritkgill/tariffs-profit-shifting/internal/tariff"
)

func main() {
	workbook := flag.String("universe", "", "firm universe workbook (defaults to firm_variables.xlsx next to the executable)")
	tariffCSV := flag.String("tariff", "", "tariff exposure CSV (defaults to tariff_exposure_naics3.csv next to the executable)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *workbook == "" {
		*workbook = paths.FirmWorkbook
	}
	if *tariffCSV == "" {
		*tariffCSV = paths.TariffCSV
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
	cfg.Logging.FilePath = paths.GetLogPath("merge.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger = logger.With(slog.String("run_id", infrastructure.GetRunID(ctx)))

	logger.Info("Starting clean and merge",
		slog.String("income_panel", paths.IncomePanelCSV),
		slog.String("universe", *workbook),
		slog.String("tariff_csv", *tariffCSV))

	secPanel, err := dataset.ReadIncomePanel(paths.IncomePanelCSV)
	if err != nil {
		logger.Error("Failed to read SEC income panel", "error", apperrors.Wrap("merge", "read income panel", err))
		os.Exit(1)
	}
	fmt.Printf("Loaded %d SEC panel rows\n", len(secPanel))

	cleaned := dataset.CleanSECPanel(secPanel, cfg.Sample, logger)
	fmt.Printf("Cleaned panel: %d rows\n", len(cleaned.Rows))

	mappings, err := dataset.ReadTickerMapping(paths.TickerMappingCSV)
	if err != nil {
		logger.Error("Failed to read ticker mapping", "error", apperrors.Wrap("merge", "read ticker mapping", err))
		os.Exit(1)
	}

	firms, err := bloomberg.LoadUniverse(*workbook, logger)
	if err != nil {
		logger.Error("Failed to load firm universe", "error", apperrors.Wrap("merge", "load firm universe", err))
		os.Exit(1)
	}
	firms = bloomberg.MapToCIK(firms, mappings, logger)
	fmt.Printf("Firm universe: %d firms with CIK\n", len(firms))

	financials, err := bloomberg.LoadTimeSeries(*workbook, cfg.Sample, logger)
	if err != nil {
		logger.Error("Failed to load Bloomberg time series", "error", apperrors.Wrap("merge", "load time series", err))
		os.Exit(1)
	}
	fmt.Printf("Bloomberg time series: %d firm-years\n", len(financials))

	exposures, err := tariff.Load(*tariffCSV, logger)
	if err != nil {
		logger.Error("Failed to load tariff exposure", "error", apperrors.Wrap("merge", "load tariff exposure", err))
		os.Exit(1)
	}
	fmt.Printf("Tariff exposure: %d NAICS-3 industries\n", len(exposures))

	merged, err := dataset.Merge(cleaned, firms, financials, tariff.ByNAICS3(exposures), logger)
	if err != nil {
		logger.Error("Merge failed", "error", apperrors.Wrap("merge", "join panels", err))
		os.Exit(1)
	}

	if _, err := dataset.QualityChecks(merged, cfg.Sample, logger); err != nil {
		logger.Error("Merged panel failed quality checks", "error", apperrors.Wrap("merge", "quality checks", err))
		os.Exit(1)
	}

	if err := dataset.WriteMergedPanel(paths.MergedPanelCSV, merged); err != nil {
		logger.Error("Failed to write merged panel", "error", apperrors.Wrap("merge", "write merged panel", err))
		os.Exit(1)
	}

	logger.Info("Merge complete",
		slog.Int("rows", len(merged)),
		slog.String("output", paths.MergedPanelCSV))
	fmt.Printf("Merge complete: %d firm-year rows\n", len(merged))
}
