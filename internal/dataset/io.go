package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/amritkgill/tariffs-profit-shifting/internal/exporter"
	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// Column order of the frozen analysis dataset. Stage 3 and 4 rely on these
// names; reordering is a breaking change.
var mergedPanelHeader = []string{
	"cik", "clean_ticker", "company_name", "company_name_bloomberg", "year",
	"sic_code", "naics_code", "naics3", "icb_subsector", "market_cap", "price",
	"foreign_pretax_income", "domestic_pretax_income", "total_pretax_income",
	"foreign_profit_share", "foreign_profit_share_winsorized", "fps_extreme",
	"total_revenue", "pretax_income_bloomberg", "rd_expense", "total_assets",
	"total_debt", "capital_expenditure", "effective_tax_rate", "operating_expenses",
	"sector_name", "n_products_targeted", "n_varieties_targeted",
	"mean_tariff_increase", "sd_tariff_increase", "mean_tariff_increase_z",
}

var tickerMappingHeader = []string{"cik", "ticker", "company_name"}

var rawFactsHeader = []string{"cik", "data_year", "tag_label", "value", "filed", "accn", "end"}

var incomePanelHeader = []string{
	"cik", "company_name", "year",
	"foreign_pretax_income", "domestic_pretax_income", "total_pretax_income",
	"foreign_profit_share",
}

// WriteTickerMapping persists the SEC ticker-to-CIK mapping
func WriteTickerMapping(path string, mappings []domain.TickerMapping) error {
	records := make([][]string, 0, len(mappings))
	for _, m := range mappings {
		records = append(records, []string{
			strconv.Itoa(m.CIK), m.Ticker, m.CompanyName,
		})
	}
	return exporter.NewCSVWriter().WriteSimpleCSV(path, tickerMappingHeader, records)
}

// ReadTickerMapping loads the SEC ticker-to-CIK mapping written by stage 1
func ReadTickerMapping(path string) ([]domain.TickerMapping, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, err
	}

	var mappings []domain.TickerMapping
	for _, row := range records[1:] {
		if len(row) < 3 {
			continue
		}
		cik, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		mappings = append(mappings, domain.TickerMapping{
			CIK:         cik,
			Ticker:      row[1],
			CompanyName: row[2],
		})
	}
	return mappings, nil
}

// WriteRawFacts persists the raw per-tag fact rows for audit
func WriteRawFacts(path string, rows []domain.FactRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.CIK),
			strconv.Itoa(r.Year),
			string(r.Tag),
			exporter.FormatFloat(r.Value),
			r.Filed,
			r.Accession,
			r.End,
		})
	}
	return exporter.NewCSVWriter().WriteSimpleCSV(path, rawFactsHeader, records)
}

// WriteIncomePanel persists the firm-year income panel from stage 1
func WriteIncomePanel(path string, rows []domain.IncomePanelRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.CIK),
			r.CompanyName,
			strconv.Itoa(r.Year),
			exporter.FormatFloat(r.ForeignPretaxIncome),
			exporter.FormatFloat(r.DomesticPretaxIncome),
			exporter.FormatFloat(r.TotalPretaxIncome),
			exporter.FormatFloat(r.ForeignProfitShare),
		})
	}
	return exporter.NewCSVWriter().WriteSimpleCSV(path, incomePanelHeader, records)
}

// ReadIncomePanel loads the firm-year income panel written by stage 1
func ReadIncomePanel(path string) ([]domain.IncomePanelRow, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, err
	}

	var rows []domain.IncomePanelRow
	for _, rec := range records[1:] {
		if len(rec) < len(incomePanelHeader) {
			continue
		}
		cik, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		year, err := strconv.Atoi(rec[2])
		if err != nil {
			continue
		}
		rows = append(rows, domain.IncomePanelRow{
			CIK:                  cik,
			CompanyName:          rec[1],
			Year:                 year,
			ForeignPretaxIncome:  exporter.ParseFloat(rec[3]),
			DomesticPretaxIncome: exporter.ParseFloat(rec[4]),
			TotalPretaxIncome:    exporter.ParseFloat(rec[5]),
			ForeignProfitShare:   exporter.ParseFloat(rec[6]),
		})
	}
	return rows, nil
}

// WriteMergedPanel freezes the analysis dataset to disk
func WriteMergedPanel(path string, rows []domain.FirmYear) error {
	records := make([][]string, 0, len(rows))
	for i := range rows {
		records = append(records, mergedPanelRecord(&rows[i]))
	}
	return exporter.NewCSVWriter().WriteSimpleCSV(path, mergedPanelHeader, records)
}

func mergedPanelRecord(fy *domain.FirmYear) []string {
	return []string{
		strconv.Itoa(fy.CIK),
		fy.Ticker,
		fy.CompanyName,
		fy.CompanyNameBloomberg,
		strconv.Itoa(fy.Year),
		exporter.FormatCode(fy.SICCode),
		exporter.FormatCode(fy.NAICSCode),
		exporter.FormatCode(fy.NAICS3),
		fy.ICBSubsector,
		exporter.FormatFloat(fy.MarketCap),
		exporter.FormatFloat(fy.Price),
		exporter.FormatFloat(fy.ForeignPretaxIncome),
		exporter.FormatFloat(fy.DomesticPretaxIncome),
		exporter.FormatFloat(fy.TotalPretaxIncome),
		exporter.FormatFloat(fy.ForeignProfitShare),
		exporter.FormatFloat(fy.ForeignProfitShareWinsorized),
		exporter.FormatBool(fy.FPSExtreme),
		exporter.FormatFloat(fy.TotalRevenue),
		exporter.FormatFloat(fy.PretaxIncomeBloomberg),
		exporter.FormatFloat(fy.RDExpense),
		exporter.FormatFloat(fy.TotalAssets),
		exporter.FormatFloat(fy.TotalDebt),
		exporter.FormatFloat(fy.CapitalExpenditure),
		exporter.FormatFloat(fy.EffectiveTaxRate),
		exporter.FormatFloat(fy.OperatingExpenses),
		fy.SectorName,
		exporter.FormatCode(fy.NProductsTargeted),
		exporter.FormatCode(fy.NVarietiesTargeted),
		exporter.FormatFloat(fy.MeanTariffIncrease),
		exporter.FormatFloat(fy.SDTariffIncrease),
		exporter.FormatFloat(fy.MeanTariffIncreaseZ),
	}
}

// ReadMergedPanel loads the frozen analysis dataset
func ReadMergedPanel(path string) ([]domain.FirmYear, error) {
	records, err := readAll(path)
	if err != nil {
		return nil, err
	}

	header := records[0]
	if len(header) != len(mergedPanelHeader) {
		return nil, fmt.Errorf("merged panel has %d columns, want %d", len(header), len(mergedPanelHeader))
	}
	for i, name := range mergedPanelHeader {
		if header[i] != name {
			return nil, fmt.Errorf("merged panel column %d is %q, want %q", i, header[i], name)
		}
	}

	rows := make([]domain.FirmYear, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < len(mergedPanelHeader) {
			continue
		}
		cik, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		year, err := strconv.Atoi(rec[4])
		if err != nil {
			continue
		}
		rows = append(rows, domain.FirmYear{
			CIK:                          cik,
			Ticker:                       rec[1],
			CompanyName:                  rec[2],
			CompanyNameBloomberg:         rec[3],
			Year:                         year,
			SICCode:                      exporter.ParseInt(rec[5]),
			NAICSCode:                    exporter.ParseInt(rec[6]),
			NAICS3:                       exporter.ParseInt(rec[7]),
			ICBSubsector:                 rec[8],
			MarketCap:                    exporter.ParseFloat(rec[9]),
			Price:                        exporter.ParseFloat(rec[10]),
			ForeignPretaxIncome:          exporter.ParseFloat(rec[11]),
			DomesticPretaxIncome:         exporter.ParseFloat(rec[12]),
			TotalPretaxIncome:            exporter.ParseFloat(rec[13]),
			ForeignProfitShare:           exporter.ParseFloat(rec[14]),
			ForeignProfitShareWinsorized: exporter.ParseFloat(rec[15]),
			FPSExtreme:                   exporter.ParseBool(rec[16]),
			TotalRevenue:                 exporter.ParseFloat(rec[17]),
			PretaxIncomeBloomberg:        exporter.ParseFloat(rec[18]),
			RDExpense:                    exporter.ParseFloat(rec[19]),
			TotalAssets:                  exporter.ParseFloat(rec[20]),
			TotalDebt:                    exporter.ParseFloat(rec[21]),
			CapitalExpenditure:           exporter.ParseFloat(rec[22]),
			EffectiveTaxRate:             exporter.ParseFloat(rec[23]),
			OperatingExpenses:            exporter.ParseFloat(rec[24]),
			SectorName:                   rec[25],
			NProductsTargeted:            exporter.ParseInt(rec[26]),
			NVarietiesTargeted:           exporter.ParseInt(rec[27]),
			MeanTariffIncrease:           exporter.ParseFloat(rec[28]),
			SDTariffIncrease:             exporter.ParseFloat(rec[29]),
			MeanTariffIncreaseZ:          exporter.ParseFloat(rec[30]),
		})
	}
	return rows, nil
}

// readAll opens and fully reads a CSV file, requiring at least a header row
func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, apperrors.ErrMissingInput)
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	return records, nil
}
