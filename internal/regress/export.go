package regress

import (
	"fmt"
	"strconv"

	"github.com/amritkgill/tariffs-profit-shifting/internal/exporter"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// WriteResults exports the headline coefficient table, one row per
// specification, with the bootstrap p-value attached to the main model row.
func WriteResults(path string, results []domain.RegressionResult, boot domain.BootstrapResult) error {
	headers := []string{
		"spec", "param", "coef", "se", "t_stat", "pvalue",
		"bootstrap_pvalue", "n_obs", "n_clusters",
	}
	records := make([][]string, 0, len(results))
	for i, r := range results {
		bootP := ""
		if i == 0 && r.Param == boot.Param {
			bootP = exporter.FormatFloat(boot.PValue)
		}
		records = append(records, []string{
			r.Spec,
			r.Param,
			exporter.FormatFloat(r.Coef),
			exporter.FormatFloat(r.SE),
			exporter.FormatFloat(r.TStat),
			exporter.FormatFloat(r.PValue),
			bootP,
			strconv.Itoa(r.N),
			strconv.Itoa(r.NClusters),
		})
	}

	writer := exporter.NewCSVWriter()
	if err := writer.WriteSimpleCSV(path, headers, records); err != nil {
		return fmt.Errorf("failed to write regression results: %w", err)
	}
	return nil
}

// WriteEventStudy exports the event study coefficient table. The reference
// year row carries a zero coefficient and an empty p-value.
func WriteEventStudy(path string, points []domain.EventStudyPoint) error {
	headers := []string{"year", "coef", "se", "pvalue", "ci_low", "ci_high", "reference"}
	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{
			strconv.Itoa(p.Year),
			exporter.FormatFloat(p.Coef),
			exporter.FormatFloat(p.SE),
			exporter.FormatFloat(p.PValue),
			exporter.FormatFloat(p.CILow),
			exporter.FormatFloat(p.CIHigh),
			exporter.FormatBool(p.Reference),
		})
	}

	writer := exporter.NewCSVWriter()
	if err := writer.WriteSimpleCSV(path, headers, records); err != nil {
		return fmt.Errorf("failed to write event study table: %w", err)
	}
	return nil
}
