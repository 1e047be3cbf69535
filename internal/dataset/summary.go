package dataset

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// VariableSummary holds descriptive statistics for one numeric variable
type VariableSummary struct {
	Variable string
	N        int
	Missing  int
	Mean     float64
	StdDev   float64
	Min      float64
	P25      float64
	Median   float64
	P75      float64
	Max      float64
}

// numericColumns lists the numeric dataset columns in output order
var numericColumns = []struct {
	name string
	get  func(*domain.FirmYear) float64
}{
	{"market_cap", func(r *domain.FirmYear) float64 { return r.MarketCap }},
	{"price", func(r *domain.FirmYear) float64 { return r.Price }},
	{"foreign_pretax_income", func(r *domain.FirmYear) float64 { return r.ForeignPretaxIncome }},
	{"domestic_pretax_income", func(r *domain.FirmYear) float64 { return r.DomesticPretaxIncome }},
	{"total_pretax_income", func(r *domain.FirmYear) float64 { return r.TotalPretaxIncome }},
	{"foreign_profit_share", func(r *domain.FirmYear) float64 { return r.ForeignProfitShare }},
	{"foreign_profit_share_winsorized", func(r *domain.FirmYear) float64 { return r.ForeignProfitShareWinsorized }},
	{"total_revenue", func(r *domain.FirmYear) float64 { return r.TotalRevenue }},
	{"pretax_income_bloomberg", func(r *domain.FirmYear) float64 { return r.PretaxIncomeBloomberg }},
	{"rd_expense", func(r *domain.FirmYear) float64 { return r.RDExpense }},
	{"total_assets", func(r *domain.FirmYear) float64 { return r.TotalAssets }},
	{"total_debt", func(r *domain.FirmYear) float64 { return r.TotalDebt }},
	{"capital_expenditure", func(r *domain.FirmYear) float64 { return r.CapitalExpenditure }},
	{"effective_tax_rate", func(r *domain.FirmYear) float64 { return r.EffectiveTaxRate }},
	{"operating_expenses", func(r *domain.FirmYear) float64 { return r.OperatingExpenses }},
	{"mean_tariff_increase", func(r *domain.FirmYear) float64 { return r.MeanTariffIncrease }},
	{"mean_tariff_increase_z", func(r *domain.FirmYear) float64 { return r.MeanTariffIncreaseZ }},
}

// Summarize computes descriptive statistics for every numeric variable of
// the merged dataset, over non-missing values only.
func Summarize(rows []domain.FirmYear) []VariableSummary {
	summaries := make([]VariableSummary, 0, len(numericColumns))
	for _, col := range numericColumns {
		values := make([]float64, 0, len(rows))
		for i := range rows {
			if v := col.get(&rows[i]); !domain.IsMissing(v) {
				values = append(values, v)
			}
		}

		s := VariableSummary{
			Variable: col.name,
			N:        len(values),
			Missing:  len(rows) - len(values),
		}
		if len(values) > 0 {
			sort.Float64s(values)
			s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
			s.Min = values[0]
			s.Max = values[len(values)-1]
			s.P25 = stat.Quantile(0.25, stat.LinInterp, values, nil)
			s.Median = stat.Quantile(0.5, stat.LinInterp, values, nil)
			s.P75 = stat.Quantile(0.75, stat.LinInterp, values, nil)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// ChecksReport renders a plain-text quality report: firms per year, coverage,
// and the check outcomes.
func ChecksReport(rows []domain.FirmYear, checks []CheckResult) string {
	var b strings.Builder

	b.WriteString("DATA QUALITY REPORT\n")
	b.WriteString(strings.Repeat("=", 65) + "\n\n")

	firms := make(map[int]bool)
	for _, r := range rows {
		firms[r.CIK] = true
	}
	years := Years(rows)
	fmt.Fprintf(&b, "Total observations: %d\n", len(rows))
	fmt.Fprintf(&b, "Unique firms:       %d\n", len(firms))
	if len(years) > 0 {
		fmt.Fprintf(&b, "Year range:         %d - %d\n", years[0], years[len(years)-1])
	}
	b.WriteString("\nFirms per year:\n")
	perYear := FirmsPerYear(rows)
	for _, year := range years {
		fmt.Fprintf(&b, "  %d: %d\n", year, perYear[year])
	}

	b.WriteString("\nChecks:\n")
	for _, c := range checks {
		status := "PASS"
		if !c.Passed {
			if c.Fatal {
				status = "FAIL"
			} else {
				status = "WARN"
			}
		}
		fmt.Fprintf(&b, "  [%s] %s: %s\n", status, c.Name, c.Message)
	}

	b.WriteString("\nMissing rates:\n")
	for _, s := range Summarize(rows) {
		total := s.N + s.Missing
		pct := 0.0
		if total > 0 {
			pct = float64(s.Missing) / float64(total) * 100
		}
		fmt.Fprintf(&b, "  %-32s %6d missing (%.1f%%)\n", s.Variable, s.Missing, pct)
	}

	return b.String()
}
