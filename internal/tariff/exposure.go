// Package tariff loads the Section 301 tariff exposure table.
package tariff

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// Load reads tariff_exposure_naics3.csv into exposure entries keyed by
// NAICS-3 industry. Exposure is time-invariant: exactly one row per industry,
// duplicates are rejected. The z-scored exposure is computed across
// industries.
func Load(path string, logger *slog.Logger) ([]domain.TariffExposure, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, apperrors.ErrMissingInput)
		}
		return nil, fmt.Errorf("failed to open tariff file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse tariff CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("tariff file has no data rows")
	}

	cols := make(map[string]int)
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"naics3", "mean_tariff_increase"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("tariff file missing column %q", required)
		}
	}

	seen := make(map[int]bool)
	var exposures []domain.TariffExposure
	for i, row := range records[1:] {
		naics3, err := strconv.Atoi(strings.TrimSpace(row[cols["naics3"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad naics3 %q", i+2, row[cols["naics3"]])
		}
		if seen[naics3] {
			return nil, fmt.Errorf("naics3 %d appears twice: %w", naics3, apperrors.ErrDuplicateKey)
		}
		seen[naics3] = true

		exposures = append(exposures, domain.TariffExposure{
			NAICS3:             naics3,
			SectorName:         field(row, cols, "sector_name"),
			NProductsTargeted:  intField(row, cols, "n_products_targeted"),
			NVarietiesTargeted: intField(row, cols, "n_varieties_targeted"),
			MeanTariffIncrease: floatField(row, cols, "mean_tariff_increase"),
			SDTariffIncrease:   floatField(row, cols, "sd_tariff_increase"),
		})
	}

	computeZScores(exposures)

	sort.Slice(exposures, func(i, j int) bool {
		return exposures[i].NAICS3 < exposures[j].NAICS3
	})

	logger.Info("Tariff exposure loaded",
		slog.String("path", path),
		slog.Int("industries", len(exposures)))
	return exposures, nil
}

// ByNAICS3 indexes exposures by industry code
func ByNAICS3(exposures []domain.TariffExposure) map[int]domain.TariffExposure {
	m := make(map[int]domain.TariffExposure, len(exposures))
	for _, e := range exposures {
		m[e.NAICS3] = e
	}
	return m
}

// computeZScores standardizes mean tariff increase across industries
func computeZScores(exposures []domain.TariffExposure) {
	values := make([]float64, 0, len(exposures))
	for _, e := range exposures {
		if !domain.IsMissing(e.MeanTariffIncrease) {
			values = append(values, e.MeanTariffIncrease)
		}
	}
	if len(values) < 2 {
		for i := range exposures {
			exposures[i].MeanTariffIncreaseZ = domain.Missing()
		}
		return
	}

	mean, sd := stat.MeanStdDev(values, nil)
	for i := range exposures {
		if domain.IsMissing(exposures[i].MeanTariffIncrease) || sd == 0 {
			exposures[i].MeanTariffIncreaseZ = domain.Missing()
			continue
		}
		exposures[i].MeanTariffIncreaseZ = (exposures[i].MeanTariffIncrease - mean) / sd
	}
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func floatField(row []string, cols map[string]int, name string) float64 {
	s := field(row, cols, name)
	if s == "" {
		return domain.Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Missing()
	}
	return v
}

func intField(row []string, cols map[string]int, name string) int {
	s := field(row, cols, name)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int(f)
		}
		return 0
	}
	return v
}
