package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/amritkgill/tariffs-profit-shifting/internal/bloomberg"
	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	"github.com/amritkgill/tariffs-profit-shifting/internal/dataset"
	"github.com/amritkgill/tariffs-profit-shifting/internal/edgar"
	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/internal/infrastructure"
	"github.com/amritkgill/tariffs-profit-shifting/internal/panel"
)

func main() {
	workbook := flag.String("universe", "", "firm universe workbook (defaults to firm_variables.xlsx next to the executable)")
	limit := flag.Int("limit", 0, "cap on the number of firms to download (0 = all)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *workbook == "" {
		*workbook = paths.FirmWorkbook
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
	cfg.Logging.FilePath = paths.GetLogPath("acquire.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger = logger.With(slog.String("run_id", infrastructure.GetRunID(ctx)))

	logger.Info("Starting SEC EDGAR acquisition",
		slog.String("universe", *workbook),
		slog.String("base_url", cfg.EDGAR.BaseURL),
		slog.Float64("requests_per_sec", cfg.EDGAR.RequestsPerSec),
		slog.Int("fy_min", cfg.Sample.FYMin),
		slog.Int("fy_max", cfg.Sample.FYMax))

	client := edgar.NewClient(cfg.EDGAR, logger)

	fmt.Println("Downloading SEC ticker-CIK mapping...")
	mappings, err := client.FetchTickerMapping(ctx)
	if err != nil {
		logger.Error("Failed to download ticker mapping", "error", apperrors.Wrap("acquire", "fetch ticker mapping", err))
		os.Exit(1)
	}
	if err := dataset.WriteTickerMapping(paths.TickerMappingCSV, mappings); err != nil {
		logger.Error("Failed to write ticker mapping", "error", apperrors.Wrap("acquire", "write ticker mapping", err))
		os.Exit(1)
	}
	fmt.Printf("Found %d ticker-CIK mappings\n", len(mappings))

	firms, err := bloomberg.LoadUniverse(*workbook, logger)
	if err != nil {
		logger.Error("Failed to load firm universe", "error", apperrors.Wrap("acquire", "load firm universe", err))
		os.Exit(1)
	}
	matched := bloomberg.MapToCIK(firms, mappings, logger)

	cikSet := make(map[int]bool, len(matched))
	for _, firm := range matched {
		cikSet[firm.CIK] = true
	}
	ciks := make([]int, 0, len(cikSet))
	for cik := range cikSet {
		ciks = append(ciks, cik)
	}
	sort.Ints(ciks)
	if *limit > 0 && len(ciks) > *limit {
		ciks = ciks[:*limit]
		logger.Warn("Firm list capped", slog.Int("limit", *limit))
	}
	fmt.Printf("Target firms with CIK: %d\n", len(ciks))

	fmt.Printf("Downloading CompanyFacts for %d firms...\n", len(ciks))
	facts, err := client.PullIncomeFacts(ctx, ciks, cfg.Sample)
	if err != nil {
		logger.Error("CompanyFacts download failed", "error", apperrors.Wrap("acquire", "pull companyfacts", err))
		os.Exit(1)
	}
	if err := dataset.WriteRawFacts(paths.RawIncomeCSV, facts); err != nil {
		logger.Error("Failed to write raw income facts", "error", apperrors.Wrap("acquire", "write raw facts", err))
		os.Exit(1)
	}
	fmt.Printf("Extracted %d income facts\n", len(facts))

	names := make(map[int]string, len(mappings))
	for _, m := range mappings {
		if _, ok := names[m.CIK]; !ok {
			names[m.CIK] = m.CompanyName
		}
	}

	rows := panel.Build(facts, names, cfg.Sample, logger)
	if err := dataset.WriteIncomePanel(paths.IncomePanelCSV, rows); err != nil {
		logger.Error("Failed to write income panel", "error", apperrors.Wrap("acquire", "write income panel", err))
		os.Exit(1)
	}

	for _, cov := range panel.CoverageByYear(rows) {
		fmt.Printf("  %d: %d firms, %d with FPS\n", cov.Year, cov.Firms, cov.HasFPS)
	}

	fps := panel.SummarizeFPS(rows)
	logger.Info("Foreign profit share distribution",
		slog.Int("n", fps.N),
		slog.Float64("mean", fps.Mean),
		slog.Float64("median", fps.Median),
		slog.Float64("p5", fps.P5),
		slog.Float64("p95", fps.P95))
	fmt.Printf("FPS distribution: n=%d mean=%.3f median=%.3f p5=%.3f p95=%.3f\n",
		fps.N, fps.Mean, fps.Median, fps.P5, fps.P95)

	logger.Info("Acquisition complete",
		slog.Int("facts", len(facts)),
		slog.Int("panel_rows", len(rows)),
		slog.String("output", paths.IncomePanelCSV))
	fmt.Printf("Acquisition complete: %d panel rows\n", len(rows))
}
