package dataset

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// CheckResult is one data quality check outcome
type CheckResult struct {
	Name    string
	Passed  bool
	Fatal   bool
	Message string
}

// QualityChecks validates the merged dataset before it is frozen.
// Fatal failures (duplicate keys, window violations, null identifiers) return
// an error; soft checks only report.
func QualityChecks(rows []domain.FirmYear, sample config.SampleConfig, logger *slog.Logger) ([]CheckResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var results []CheckResult
	add := func(name string, passed, fatal bool, format string, args ...any) {
		results = append(results, CheckResult{
			Name:    name,
			Passed:  passed,
			Fatal:   fatal,
			Message: fmt.Sprintf(format, args...),
		})
	}

	// Check 1: unique firm-year key
	seen := make(map[[2]int]bool, len(rows))
	dups := 0
	for _, r := range rows {
		k := [2]int{r.CIK, r.Year}
		if seen[k] {
			dups++
		}
		seen[k] = true
	}
	add("unique_firm_year", dups == 0, true, "%d duplicate firm-year rows", dups)

	// Check 2: year range inside the sample window
	outOfWindow := 0
	for _, r := range rows {
		if !sample.InWindow(r.Year) {
			outOfWindow++
		}
	}
	add("year_window", outOfWindow == 0, true,
		"%d rows outside %d-%d", outOfWindow, sample.FYMin, sample.FYMax)

	// Check 3: identifiers present
	badIDs := 0
	for _, r := range rows {
		if r.CIK == 0 || r.Ticker == "" || r.Year == 0 {
			badIDs++
		}
	}
	add("identifiers_present", badIDs == 0, true, "%d rows with null identifiers", badIDs)

	// Check 4: income looks like millions, not raw dollars
	maxIncome := 0.0
	for _, r := range rows {
		if !domain.IsMissing(r.TotalPretaxIncome) {
			if abs := math.Abs(r.TotalPretaxIncome); abs > maxIncome {
				maxIncome = abs
			}
		}
	}
	add("income_scale", maxIncome <= 1e6, false,
		"max |total_pretax_income| = %.0f (values above 1e6 look like raw dollars)", maxIncome)

	// Check 5: Bloomberg coverage
	for _, check := range []struct {
		name string
		get  func(*domain.FirmYear) float64
	}{
		{"total_revenue", func(r *domain.FirmYear) float64 { return r.TotalRevenue }},
		{"effective_tax_rate", func(r *domain.FirmYear) float64 { return r.EffectiveTaxRate }},
		{"total_assets", func(r *domain.FirmYear) float64 { return r.TotalAssets }},
	} {
		n := 0
		for i := range rows {
			if !domain.IsMissing(check.get(&rows[i])) {
				n++
			}
		}
		pct := 0.0
		if len(rows) > 0 {
			pct = float64(n) / float64(len(rows)) * 100
		}
		add("coverage_"+check.name, pct > 50, false,
			"%s: %d non-null (%.1f%%)", check.name, n, pct)
	}

	// Check 6: firms with no Bloomberg time-series data at all (source gap)
	firmsAny := make(map[string]bool)
	firmsWithData := make(map[string]bool)
	for i := range rows {
		r := &rows[i]
		firmsAny[r.Ticker] = true
		hasData := !domain.IsMissing(r.TotalRevenue) ||
			!domain.IsMissing(r.PretaxIncomeBloomberg) ||
			!domain.IsMissing(r.RDExpense) ||
			!domain.IsMissing(r.TotalAssets) ||
			!domain.IsMissing(r.TotalDebt) ||
			!domain.IsMissing(r.CapitalExpenditure) ||
			!domain.IsMissing(r.EffectiveTaxRate) ||
			!domain.IsMissing(r.OperatingExpenses)
		if hasData {
			firmsWithData[r.Ticker] = true
		}
	}
	gapFirms := len(firmsAny) - len(firmsWithData)
	add("bloomberg_source_gap", true, false,
		"%d of %d firms have zero Bloomberg time-series coverage", gapFirms, len(firmsAny))

	var failed []string
	for _, res := range results {
		if res.Passed {
			logger.Info("Quality check passed",
				slog.String("check", res.Name),
				slog.String("detail", res.Message))
			continue
		}
		if res.Fatal {
			failed = append(failed, res.Name)
			logger.Error("Quality check failed",
				slog.String("check", res.Name),
				slog.String("detail", res.Message))
		} else {
			logger.Warn("Quality check warning",
				slog.String("check", res.Name),
				slog.String("detail", res.Message))
		}
	}

	if len(failed) > 0 {
		return results, fmt.Errorf("%s: %w", strings.Join(failed, ", "), apperrors.ErrQualityCheck)
	}
	return results, nil
}

// FirmsPerYear counts distinct firms per panel year
func FirmsPerYear(rows []domain.FirmYear) map[int]int {
	firms := make(map[int]map[int]bool)
	for _, r := range rows {
		if firms[r.Year] == nil {
			firms[r.Year] = make(map[int]bool)
		}
		firms[r.Year][r.CIK] = true
	}
	out := make(map[int]int, len(firms))
	for year, set := range firms {
		out[year] = len(set)
	}
	return out
}

// Years returns the sorted distinct years present in the dataset
func Years(rows []domain.FirmYear) []int {
	set := make(map[int]bool)
	for _, r := range rows {
		set[r.Year] = true
	}
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
