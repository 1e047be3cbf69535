package config

// XBRL tags pulled from the SEC CompanyFacts API. The two total-income
// variants measure slightly different things; when both exist for a firm-year
// the panel builder prefers V1.
const (
	XBRLTagForeign  = "IncomeLossFromContinuingOperationsBeforeIncomeTaxesForeign"
	XBRLTagDomestic = "IncomeLossFromContinuingOperationsBeforeIncomeTaxesDomestic"
	XBRLTagTotalV1  = "IncomeLossFromContinuingOperationsBeforeIncomeTaxesExtraordinaryItemsNoncontrollingInterest"
	XBRLTagTotalV2  = "IncomeLossFromContinuingOperationsBeforeIncomeTaxesMinorityInterestAndIncomeLossFromEquityMethodInvestments"
)

// Bloomberg workbook layout
const (
	// FirmUniverseSheet holds the static firm attributes. Its first data row
	// is a header/count row and must be skipped.
	FirmUniverseSheet = "firm_universe"

	// BloombergTickerSuffix is stripped from tickers in every sheet
	BloombergTickerSuffix = " US Equity"
)

// TimeSeriesSheets maps Bloomberg workbook sheet names to the dataset column
// each one feeds. Each sheet is wide format: Ticker x year columns. Unlike
// the universe sheet, time-series sheets have no junk header row.
var TimeSeriesSheets = map[string]string{
	"total_revenue":      "total_revenue",
	"pretax_income":      "pretax_income_bloomberg",
	"rd_expense":         "rd_expense",
	"total_assets":       "total_assets",
	"total_debt":         "total_debt",
	"capital_expend":     "capital_expenditure",
	"effective_tax_rate": "effective_tax_rate",
	"operating_expenses": "operating_expenses",
}
