package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/amritkgill/tariffs-profit-shifting/internal/exporter"
)

// WriteDictionary exports the data dictionary.
func WriteDictionary(path string, entries []DictionaryEntry) error {
	headers := []string{"variable", "description", "source", "type"}
	records := make([][]string, 0, len(entries))
	for _, e := range entries {
		records = append(records, []string{e.Variable, e.Description, e.Source, e.Type})
	}

	writer := exporter.NewCSVWriter()
	if err := writer.WriteSimpleCSV(path, headers, records); err != nil {
		return fmt.Errorf("failed to write data dictionary: %w", err)
	}
	return nil
}

// WriteSummary exports the descriptive statistics table.
func WriteSummary(path string, summaries []VariableSummary) error {
	headers := []string{
		"variable", "n", "missing", "mean", "std",
		"min", "p25", "median", "p75", "max",
	}
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, []string{
			s.Variable,
			strconv.Itoa(s.N),
			strconv.Itoa(s.Missing),
			exporter.FormatFloat(s.Mean),
			exporter.FormatFloat(s.StdDev),
			exporter.FormatFloat(s.Min),
			exporter.FormatFloat(s.P25),
			exporter.FormatFloat(s.Median),
			exporter.FormatFloat(s.P75),
			exporter.FormatFloat(s.Max),
		})
	}

	writer := exporter.NewCSVWriter()
	if err := writer.WriteSimpleCSV(path, headers, records); err != nil {
		return fmt.Errorf("failed to write summary statistics: %w", err)
	}
	return nil
}

// WriteChecksReport writes the plain-text data check report.
func WriteChecksReport(path, report string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to write checks report: %w", err)
	}
	return nil
}
