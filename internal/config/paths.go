package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the pipeline paths.
// This is the single source of truth for every file a stage reads or writes.
type Paths struct {
	ExecutableDir string
	DataDir       string
	RawDir        string
	ProcessedDir  string
	OutputDir     string
	LogsDir       string

	// Stage inputs shipped alongside the binaries
	FirmWorkbook string
	TariffCSV    string

	// Stage 1 outputs
	TickerMappingCSV string
	RawIncomeCSV     string
	IncomePanelCSV   string

	// Stage 2 output: the frozen analysis dataset
	MergedPanelCSV string

	// Stage 3 outputs
	DataDictionaryCSV    string
	SummaryStatisticsCSV string
	DataChecksTXT        string

	// Stage 4 outputs
	RegressionResultsCSV string
	EventStudyCSV        string
	EventStudyHTML       string
}

// GetPaths returns the pipeline paths relative to the executable location.
// All paths are relative to the executable directory, never the current
// working directory, so the stages behave the same wherever they are invoked
// from.
//
// Directory structure:
//
//	<exe dir>/
//	  ├── firm_variables.xlsx
//	  ├── tariff_exposure_naics3.csv
//	  ├── data/
//	  │   ├── raw/        (acquisition stage outputs)
//	  │   └── processed/  (panel and merged dataset)
//	  ├── output/         (dictionary, stats, regression tables, plots)
//	  └── logs/
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return PathsAt(filepath.Dir(exe)), nil
}

// PathsAt builds the path set rooted at the given base directory.
// Split out from GetPaths so tests can point the pipeline at a temp dir.
func PathsAt(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	rawDir := filepath.Join(dataDir, "raw")
	processedDir := filepath.Join(dataDir, "processed")
	outputDir := filepath.Join(baseDir, "output")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		RawDir:        rawDir,
		ProcessedDir:  processedDir,
		OutputDir:     outputDir,
		LogsDir:       filepath.Join(baseDir, "logs"),

		FirmWorkbook: filepath.Join(baseDir, "firm_variables.xlsx"),
		TariffCSV:    filepath.Join(baseDir, "tariff_exposure_naics3.csv"),

		TickerMappingCSV: filepath.Join(rawDir, "sec_ticker_cik_mapping.csv"),
		RawIncomeCSV:     filepath.Join(rawDir, "sec_pretax_income_raw.csv"),
		IncomePanelCSV:   filepath.Join(processedDir, "sec_pretax_income_panel.csv"),

		MergedPanelCSV: filepath.Join(processedDir, "merged_panel.csv"),

		DataDictionaryCSV:    filepath.Join(outputDir, "data_dictionary.csv"),
		SummaryStatisticsCSV: filepath.Join(outputDir, "summary_statistics.csv"),
		DataChecksTXT:        filepath.Join(outputDir, "data_checks.txt"),

		RegressionResultsCSV: filepath.Join(outputDir, "regression_results.csv"),
		EventStudyCSV:        filepath.Join(outputDir, "event_study_etr.csv"),
		EventStudyHTML:       filepath.Join(outputDir, "event_study_etr.html"),
	}
}

// EnsureDirectories creates all directories the pipeline writes into
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.RawDir, p.ProcessedDir, p.OutputDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns a path for a log file in the logs directory
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetRawPath returns a path in the raw data directory
func (p *Paths) GetRawPath(filename string) string {
	return filepath.Join(p.RawDir, filename)
}

// GetProcessedPath returns a path in the processed data directory
func (p *Paths) GetProcessedPath(filename string) string {
	return filepath.Join(p.ProcessedDir, filename)
}

// GetOutputPath returns a path in the output directory
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}
