// Package panel builds the firm-year pre-tax income panel from raw XBRL
// fact rows.
package panel

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

type firmYearKey struct {
	cik  int
	year int
}

type tagKey struct {
	cik  int
	year int
	tag  domain.TagLabel
}

// Build assembles the firm-year income panel from raw fact rows.
//
// Per (cik, year, tag) the most recently filed value wins: later filings
// restate earlier ones. When both total-income tag variants exist for a
// firm-year only total_v1 is kept (the modern standard). Missing foreign
// income is recovered from the accounting identity Foreign = Total - Domestic
// when the other two legs are present. The foreign profit share is nulled
// where the identity fails by more than the configured tolerance, since a
// breakdown that does not add up is unreliable (restatements, sign errors,
// tag mismatches).
func Build(rows []domain.FactRow, names map[int]string, sample config.SampleConfig, logger *slog.Logger) []domain.IncomePanelRow {
	if logger == nil {
		logger = slog.Default()
	}

	// Most recently filed value per (cik, year, tag)
	latest := make(map[tagKey]domain.FactRow)
	for _, row := range rows {
		k := tagKey{row.CIK, row.Year, row.Tag}
		if prev, ok := latest[k]; !ok || row.Filed > prev.Filed {
			latest[k] = row
		}
	}

	// Prefer total_v1 over total_v2 for the same firm-year
	v2Dropped := 0
	for k := range latest {
		if k.tag != domain.TagTotalV2 {
			continue
		}
		if _, hasV1 := latest[tagKey{k.cik, k.year, domain.TagTotalV1}]; hasV1 {
			delete(latest, k)
			v2Dropped++
		}
	}
	if v2Dropped > 0 {
		logger.Info("Preferred total_v1 over total_v2",
			slog.Int("dropped_v2_values", v2Dropped))
	}

	// Pivot to wide firm-year rows
	byFirmYear := make(map[firmYearKey]*domain.IncomePanelRow)
	for k, row := range latest {
		fy := firmYearKey{k.cik, k.year}
		out, ok := byFirmYear[fy]
		if !ok {
			out = &domain.IncomePanelRow{
				CIK:                  k.cik,
				CompanyName:          names[k.cik],
				Year:                 k.year,
				ForeignPretaxIncome:  domain.Missing(),
				DomesticPretaxIncome: domain.Missing(),
				TotalPretaxIncome:    domain.Missing(),
				ForeignProfitShare:   domain.Missing(),
			}
			byFirmYear[fy] = out
		}
		switch k.tag {
		case domain.TagForeign:
			out.ForeignPretaxIncome = row.Value
		case domain.TagDomestic:
			out.DomesticPretaxIncome = row.Value
		case domain.TagTotalV1, domain.TagTotalV2, domain.TagTotal:
			out.TotalPretaxIncome = row.Value
		}
	}

	residualFilled := 0
	identityFails := 0
	result := make([]domain.IncomePanelRow, 0, len(byFirmYear))
	for _, row := range byFirmYear {
		// Fill missing foreign income from the identity
		if domain.IsMissing(row.ForeignPretaxIncome) &&
			!domain.IsMissing(row.TotalPretaxIncome) &&
			!domain.IsMissing(row.DomesticPretaxIncome) {
			row.ForeignPretaxIncome = row.TotalPretaxIncome - row.DomesticPretaxIncome
			residualFilled++
		}

		// Foreign profit share where total is present and nonzero
		if !domain.IsMissing(row.ForeignPretaxIncome) &&
			!domain.IsMissing(row.TotalPretaxIncome) &&
			row.TotalPretaxIncome != 0 {
			row.ForeignProfitShare = row.ForeignPretaxIncome / row.TotalPretaxIncome
		}

		// Accounting identity check: Foreign + Domestic should equal Total
		if !domain.IsMissing(row.ForeignPretaxIncome) &&
			!domain.IsMissing(row.DomesticPretaxIncome) &&
			!domain.IsMissing(row.TotalPretaxIncome) &&
			row.TotalPretaxIncome != 0 {
			residual := row.ForeignPretaxIncome + row.DomesticPretaxIncome - row.TotalPretaxIncome
			if math.Abs(residual)/math.Abs(row.TotalPretaxIncome) > sample.IdentityTolerance {
				row.ForeignProfitShare = domain.Missing()
				identityFails++
			}
		}

		result = append(result, *row)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CIK != result[j].CIK {
			return result[i].CIK < result[j].CIK
		}
		return result[i].Year < result[j].Year
	})

	logger.Info("Firm-year panel built",
		slog.Int("firm_years", len(result)),
		slog.Int("residual_filled_foreign", residualFilled),
		slog.Int("identity_failures_nulled", identityFails))

	return result
}

// Coverage summarizes per-year observation counts for logging
type Coverage struct {
	Year       int
	Firms      int
	HasForeign int
	HasTotal   int
	HasFPS     int
}

// CoverageByYear computes per-year coverage of the income panel
func CoverageByYear(rows []domain.IncomePanelRow) []Coverage {
	byYear := make(map[int]*Coverage)
	for _, row := range rows {
		c, ok := byYear[row.Year]
		if !ok {
			c = &Coverage{Year: row.Year}
			byYear[row.Year] = c
		}
		c.Firms++
		if !domain.IsMissing(row.ForeignPretaxIncome) {
			c.HasForeign++
		}
		if !domain.IsMissing(row.TotalPretaxIncome) {
			c.HasTotal++
		}
		if !domain.IsMissing(row.ForeignProfitShare) {
			c.HasFPS++
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]Coverage, 0, len(years))
	for _, y := range years {
		out = append(out, *byYear[y])
	}
	return out
}

// FPSDistribution describes the observed foreign profit shares.
type FPSDistribution struct {
	N      int
	Mean   float64
	Median float64
	P5     float64
	P95    float64
}

// SummarizeFPS computes the distribution of non-missing foreign profit
// shares, for the acquisition log.
func SummarizeFPS(rows []domain.IncomePanelRow) FPSDistribution {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if !domain.IsMissing(row.ForeignProfitShare) {
			values = append(values, row.ForeignProfitShare)
		}
	}
	d := FPSDistribution{N: len(values)}
	if len(values) == 0 {
		return d
	}
	sort.Float64s(values)
	d.Mean = stat.Mean(values, nil)
	d.Median = stat.Quantile(0.5, stat.LinInterp, values, nil)
	d.P5 = stat.Quantile(0.05, stat.LinInterp, values, nil)
	d.P95 = stat.Quantile(0.95, stat.LinInterp, values, nil)
	return d
}
