package bloomberg

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

type tickerYear struct {
	ticker string
	year   int
}

// LoadTimeSeries reads every wide-format time-series sheet and melts the
// year columns into long firm-year observations, restricted to the sample
// window. Duplicate ticker rows within a sheet violate the merge invariant
// downstream and are rejected here.
func LoadTimeSeries(path string, sample config.SampleConfig, logger *slog.Logger) ([]domain.FirmFinancials, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	combined := make(map[tickerYear]*domain.FirmFinancials)

	// Stable sheet order for deterministic logs
	sheets := make([]string, 0, len(config.TimeSeriesSheets))
	for sheet := range config.TimeSeriesSheets {
		sheets = append(sheets, sheet)
	}
	sort.Strings(sheets)

	for _, sheet := range sheets {
		column := config.TimeSeriesSheets[sheet]
		count, err := loadSheet(f, sheet, column, sample, combined)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		logger.Info("Time-series sheet loaded",
			slog.String("sheet", sheet),
			slog.String("variable", column),
			slog.Int("non_null_obs", count))
	}

	result := make([]domain.FirmFinancials, 0, len(combined))
	for _, fin := range combined {
		result = append(result, *fin)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Ticker != result[j].Ticker {
			return result[i].Ticker < result[j].Ticker
		}
		return result[i].Year < result[j].Year
	})

	tickers := make(map[string]bool)
	for _, fin := range result {
		tickers[fin.Ticker] = true
	}
	logger.Info("Combined Bloomberg time series",
		slog.Int("rows", len(result)),
		slog.Int("tickers", len(tickers)))

	return result, nil
}

// loadSheet melts one wide sheet into the combined map and returns the number
// of non-missing observations it contributed. Unlike the universe sheet,
// time-series sheets have no junk row: row 1 is real data.
func loadSheet(f *excelize.File, sheet, column string, sample config.SampleConfig, combined map[tickerYear]*domain.FirmFinancials) (int, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return 0, fmt.Errorf("no data rows")
	}

	header := rows[0]
	tickerCol := -1
	yearCols := make(map[int]int) // column index -> year
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "Ticker" {
			tickerCol = i
			continue
		}
		if year, err := strconv.Atoi(name); err == nil && sample.InWindow(year) {
			yearCols[i] = year
		}
	}
	if tickerCol < 0 {
		return 0, fmt.Errorf("missing Ticker column")
	}

	seen := make(map[string]bool)
	count := 0
	for _, row := range rows[1:] {
		ticker := CleanTicker(cell(row, tickerCol))
		if ticker == "" {
			continue
		}
		if seen[ticker] {
			// A duplicated ticker would fan out the (ticker, year) join.
			return 0, fmt.Errorf("ticker %s appears twice: %w", ticker, apperrors.ErrRowCountChanged)
		}
		seen[ticker] = true

		for i, year := range yearCols {
			value := parseNumeric(cell(row, i))
			if domain.IsMissing(value) {
				continue
			}

			k := tickerYear{ticker, year}
			fin, ok := combined[k]
			if !ok {
				fin = newFinancials(ticker, year)
				combined[k] = fin
			}
			setVariable(fin, column, value)
			count++
		}
	}
	return count, nil
}

// newFinancials starts a firm-year observation with every variable missing
func newFinancials(ticker string, year int) *domain.FirmFinancials {
	return &domain.FirmFinancials{
		Ticker:                ticker,
		Year:                  year,
		TotalRevenue:          domain.Missing(),
		PretaxIncomeBloomberg: domain.Missing(),
		RDExpense:             domain.Missing(),
		TotalAssets:           domain.Missing(),
		TotalDebt:             domain.Missing(),
		CapitalExpenditure:    domain.Missing(),
		EffectiveTaxRate:      domain.Missing(),
		OperatingExpenses:     domain.Missing(),
	}
}

func setVariable(fin *domain.FirmFinancials, column string, value float64) {
	switch column {
	case "total_revenue":
		fin.TotalRevenue = value
	case "pretax_income_bloomberg":
		fin.PretaxIncomeBloomberg = value
	case "rd_expense":
		fin.RDExpense = value
	case "total_assets":
		fin.TotalAssets = value
	case "total_debt":
		fin.TotalDebt = value
	case "capital_expenditure":
		fin.CapitalExpenditure = value
	case "effective_tax_rate":
		fin.EffectiveTaxRate = value
	case "operating_expenses":
		fin.OperatingExpenses = value
	}
}
