package dataset

// DictionaryEntry documents one variable of the merged dataset
type DictionaryEntry struct {
	Variable    string
	Description string
	Source      string
	Type        string
}

// Dictionary returns the data dictionary for the frozen analysis dataset,
// one entry per column in column order.
func Dictionary() []DictionaryEntry {
	return []DictionaryEntry{
		{"cik", "SEC Central Index Key - unique firm identifier", "SEC EDGAR", "identifier"},
		{"clean_ticker", "Stock ticker symbol (e.g., AAPL, NVDA)", "Bloomberg Terminal / SEC EDGAR", "identifier"},
		{"company_name", "Company name from SEC EDGAR filings", "SEC EDGAR XBRL", "identifier"},
		{"company_name_bloomberg", "Company name from Bloomberg Terminal", "Bloomberg Terminal", "identifier"},
		{"year", "Fiscal year of financial data", "SEC EDGAR XBRL", "time"},
		{"sic_code", "Standard Industrial Classification code (4-digit)", "Bloomberg Terminal", "classification"},
		{"naics_code", "North American Industry Classification System code (6-digit)", "Bloomberg Terminal", "classification"},
		{"naics3", "NAICS 3-digit industry code (merge key for tariff data)", "Derived from naics_code", "classification"},
		{"icb_subsector", "Industry Classification Benchmark subsector name", "Bloomberg Terminal", "classification"},
		{"market_cap", "Market capitalization in USD (raw dollars, most recent available)", "Bloomberg Terminal", "firm characteristic"},
		{"price", "Most recent stock price in USD", "Bloomberg Terminal", "firm characteristic"},
		{"foreign_pretax_income", "Pre-tax income from foreign operations (USD millions); direct from XBRL or computed as Total - Domestic", "SEC EDGAR XBRL", "key variable"},
		{"domestic_pretax_income", "Pre-tax income from domestic (US) operations (USD millions)", "SEC EDGAR XBRL", "key variable"},
		{"total_pretax_income", "Total pre-tax income from all operations (USD millions)", "SEC EDGAR XBRL", "key variable"},
		{"foreign_profit_share", "Foreign pre-tax income / total pre-tax income", "Computed from SEC EDGAR data", "key variable"},
		{"foreign_profit_share_winsorized", "Foreign profit share winsorized at the 1st and 99th percentiles", "Computed", "key variable"},
		{"fps_extreme", "Flag: original foreign profit share outside the 1st-99th percentile range", "Computed", "flag"},
		{"total_revenue", "Total revenue (USD millions)", "Bloomberg Terminal", "financial control"},
		{"pretax_income_bloomberg", "Pre-tax income per Bloomberg (USD millions), cross-check for SEC figures", "Bloomberg Terminal", "financial control"},
		{"rd_expense", "Research and development expense (USD millions)", "Bloomberg Terminal", "financial control"},
		{"total_assets", "Total assets (USD millions)", "Bloomberg Terminal", "financial control"},
		{"total_debt", "Total debt (USD millions)", "Bloomberg Terminal", "financial control"},
		{"capital_expenditure", "Capital expenditure (USD millions)", "Bloomberg Terminal", "financial control"},
		{"effective_tax_rate", "Effective tax rate (percent); main regression outcome", "Bloomberg Terminal", "key variable"},
		{"operating_expenses", "Operating expenses (USD millions)", "Bloomberg Terminal", "financial control"},
		{"sector_name", "NAICS-3 sector name from the tariff exposure table", "Section 301 tariff data", "tariff variable"},
		{"n_products_targeted", "Number of HS products in the industry targeted by Section 301 lists", "Section 301 tariff data", "tariff variable"},
		{"n_varieties_targeted", "Number of product varieties targeted", "Section 301 tariff data", "tariff variable"},
		{"mean_tariff_increase", "Mean Section 301 tariff increase across the industry's targeted products", "Section 301 tariff data", "tariff variable"},
		{"sd_tariff_increase", "Standard deviation of the tariff increase within the industry", "Section 301 tariff data", "tariff variable"},
		{"mean_tariff_increase_z", "Mean tariff increase standardized across industries", "Computed", "tariff variable"},
	}
}
