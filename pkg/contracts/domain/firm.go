package domain

// FirmRef holds the static firm attributes from the Bloomberg firm universe.
// These never vary across the panel; they are joined onto every firm-year row.
// Classification codes use 0 for "not reported" (no valid SIC or NAICS code
// is 0).
type FirmRef struct {
	Ticker       string  `json:"clean_ticker" validate:"required"`
	CompanyName  string  `json:"company_name_bloomberg"`
	CIK          int     `json:"cik"`
	SICCode      int     `json:"sic_code"`
	NAICSCode    int     `json:"naics_code"`
	NAICS3       int     `json:"naics3"`
	ICBSubsector string  `json:"icb_subsector"`
	MarketCap    float64 `json:"market_cap"`
	Price        float64 `json:"price"`
}

// FirmFinancials is one firm-year of Bloomberg time-series financials,
// melted from the wide per-variable workbook sheets. All values are USD
// millions except EffectiveTaxRate (percent).
type FirmFinancials struct {
	Ticker                string  `json:"clean_ticker"`
	Year                  int     `json:"year"`
	TotalRevenue          float64 `json:"total_revenue"`
	PretaxIncomeBloomberg float64 `json:"pretax_income_bloomberg"`
	RDExpense             float64 `json:"rd_expense"`
	TotalAssets           float64 `json:"total_assets"`
	TotalDebt             float64 `json:"total_debt"`
	CapitalExpenditure    float64 `json:"capital_expenditure"`
	EffectiveTaxRate      float64 `json:"effective_tax_rate"`
	OperatingExpenses     float64 `json:"operating_expenses"`
}

// TariffExposure is the Section 301 exposure for one NAICS 3-digit industry.
// Time-invariant by construction; joined onto firm-year rows by NAICS3.
type TariffExposure struct {
	NAICS3              int     `json:"naics3" validate:"required"`
	SectorName          string  `json:"sector_name"`
	NProductsTargeted   int     `json:"n_products_targeted"`
	NVarietiesTargeted  int     `json:"n_varieties_targeted"`
	MeanTariffIncrease  float64 `json:"mean_tariff_increase"`
	SDTariffIncrease    float64 `json:"sd_tariff_increase"`
	MeanTariffIncreaseZ float64 `json:"mean_tariff_increase_z"`
}

// FirmYear is one row of the frozen analysis dataset: the unique
// (CIK, Year) key plus everything the regressions consume. Rows are
// immutable once merged_panel.csv is written.
type FirmYear struct {
	// Identifiers
	CIK                  int    `json:"cik"`
	Ticker               string `json:"clean_ticker"`
	CompanyName          string `json:"company_name"`
	CompanyNameBloomberg string `json:"company_name_bloomberg"`
	Year                 int    `json:"year"`

	// Static firm characteristics
	SICCode      int     `json:"sic_code"`
	NAICSCode    int     `json:"naics_code"`
	NAICS3       int     `json:"naics3"`
	ICBSubsector string  `json:"icb_subsector"`
	MarketCap    float64 `json:"market_cap"`
	Price        float64 `json:"price"`

	// SEC income variables (USD millions)
	ForeignPretaxIncome          float64 `json:"foreign_pretax_income"`
	DomesticPretaxIncome         float64 `json:"domestic_pretax_income"`
	TotalPretaxIncome            float64 `json:"total_pretax_income"`
	ForeignProfitShare           float64 `json:"foreign_profit_share"`
	ForeignProfitShareWinsorized float64 `json:"foreign_profit_share_winsorized"`
	FPSExtreme                   bool    `json:"fps_extreme"`

	// Bloomberg time-series financials
	TotalRevenue          float64 `json:"total_revenue"`
	PretaxIncomeBloomberg float64 `json:"pretax_income_bloomberg"`
	RDExpense             float64 `json:"rd_expense"`
	TotalAssets           float64 `json:"total_assets"`
	TotalDebt             float64 `json:"total_debt"`
	CapitalExpenditure    float64 `json:"capital_expenditure"`
	EffectiveTaxRate      float64 `json:"effective_tax_rate"`
	OperatingExpenses     float64 `json:"operating_expenses"`

	// Tariff exposure (by NAICS3)
	SectorName          string  `json:"sector_name"`
	NProductsTargeted   int     `json:"n_products_targeted"`
	NVarietiesTargeted  int     `json:"n_varieties_targeted"`
	MeanTariffIncrease  float64 `json:"mean_tariff_increase"`
	SDTariffIncrease    float64 `json:"sd_tariff_increase"`
	MeanTariffIncreaseZ float64 `json:"mean_tariff_increase_z"`
}

// HasTariffExposure reports whether the row matched the tariff exposure table.
func (fy *FirmYear) HasTariffExposure() bool {
	return !IsMissing(fy.MeanTariffIncrease)
}
