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
	"github.com/amritkgill/tariffs-profit-shifting/internal/regress"
)

func main() {
	input := flag.String("in", "", "merged panel CSV (defaults to data/processed/merged_panel.csv relative to the executable)")
	skipBootstrap := flag.Bool("skip-bootstrap", false, "skip the wild cluster bootstrap (faster, for iteration)")
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
	cfg.Logging.FilePath = paths.GetLogPath("analyze.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithRunID(context.Background())
	logger = logger.With(slog.String("run_id", infrastructure.GetRunID(ctx)))

	logger.Info("Starting regression analysis",
		slog.String("input", *input),
		slog.Int("post_year", cfg.Analysis.PostYear),
		slog.Int("reference_year", cfg.Analysis.ReferenceYear),
		slog.Int("bootstrap_reps", cfg.Analysis.BootstrapReps))

	rows, err := dataset.ReadMergedPanel(*input)
	if err != nil {
		logger.Error("Failed to read merged panel", "error", apperrors.Wrap("analyze", "read merged panel", err))
		os.Exit(1)
	}
	fmt.Printf("Loaded %d firm-year rows\n", len(rows))

	frame, years, err := regress.BuildFrame(rows, regress.BuildOptions{
		PostYear:      cfg.Analysis.PostYear,
		ReferenceYear: cfg.Analysis.ReferenceYear,
		PlaceboYear:   cfg.Analysis.PlaceboYear,
		WinsorLower:   cfg.Sample.WinsorLower,
		WinsorUpper:   cfg.Sample.WinsorUpper,
	})
	if err != nil {
		logger.Error("Variable construction failed", "error", apperrors.Wrap("analyze", "build regression frame", err))
		os.Exit(1)
	}
	fmt.Printf("Regression frame: %d rows, %d sample years\n", frame.Len(), len(years))

	reps := cfg.Analysis.BootstrapReps
	if *skipBootstrap {
		// One replication keeps the output shape without the cost.
		reps = 1
		logger.Warn("Bootstrap skipped")
	}

	suite, err := regress.RunSuite(frame, regress.SuiteOptions{
		Years:         years,
		ReferenceYear: cfg.Analysis.ReferenceYear,
		PostYear:      cfg.Analysis.PostYear,
		BootstrapReps: reps,
		BootstrapSeed: cfg.Analysis.BootstrapSeed,
	}, logger)
	if err != nil {
		logger.Error("Estimation failed", "error", apperrors.Wrap("analyze", "estimate models", err))
		os.Exit(1)
	}

	printSummary(suite)

	if err := regress.WriteResults(paths.RegressionResultsCSV, suite.Results, suite.Bootstrap); err != nil {
		logger.Error("Failed to write regression results", "error", apperrors.Wrap("analyze", "write results", err))
		os.Exit(1)
	}
	if err := regress.WriteEventStudy(paths.EventStudyCSV, suite.EventPoints); err != nil {
		logger.Error("Failed to write event study table", "error", apperrors.Wrap("analyze", "write event study", err))
		os.Exit(1)
	}
	if err := regress.WriteEventStudyPlot(suite.EventPoints, cfg.Analysis.PostYear-1, paths.EventStudyHTML); err != nil {
		logger.Error("Failed to write event study plot", "error", apperrors.Wrap("analyze", "write event study plot", err))
		os.Exit(1)
	}

	logger.Info("Analysis complete",
		slog.Int("specifications", len(suite.Results)),
		slog.String("results", paths.RegressionResultsCSV),
		slog.String("event_study", paths.EventStudyCSV),
		slog.String("plot", paths.EventStudyHTML))
	fmt.Println("Analysis complete")
}

// printSummary renders the coefficient tables on the console, one row per
// specification plus the event study.
func printSummary(suite *regress.Suite) {
	fmt.Println()
	fmt.Printf("Wild cluster bootstrap (%d reps, seed %d): t = %.3f, p = %.4f\n",
		suite.Bootstrap.Reps, suite.Bootstrap.Seed, suite.Bootstrap.TStat, suite.Bootstrap.PValue)

	fmt.Println("\nEvent study coefficients (NAICS-3 clustered SEs):")
	fmt.Printf("%6s  %10s  %10s  %10s\n", "Year", "Coef", "SE", "p-value")
	for _, p := range suite.EventPoints {
		if p.Reference {
			fmt.Printf("%6d  %10.3f  %10s  %10s\n", p.Year, p.Coef, "-", "ref")
			continue
		}
		fmt.Printf("%6d  %10.3f  %10.3f  %10.3f\n", p.Year, p.Coef, p.SE, p.PValue)
	}

	fmt.Println("\nAll specifications (NAICS-3 clustered SEs):")
	fmt.Printf("%-30s %8s %8s %8s %7s\n", "Specification", "Coef", "SE", "p-val", "N")
	for _, r := range suite.Results {
		fmt.Printf("%-30s %8.3f %8.3f %8.3f %7d\n", r.Spec, r.Coef, r.SE, r.PValue, r.N)
	}
}
