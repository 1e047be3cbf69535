// Package domain contains the core domain models for the tariff
// profit-shifting pipeline. These types are the single source of truth for
// every stage: the raw SEC facts, the firm-year panel, and the estimation
// outputs.
package domain

import "math"

// TagLabel identifies an XBRL income tag variant tracked by the acquisition stage.
type TagLabel string

const (
	TagForeign  TagLabel = "foreign"
	TagDomestic TagLabel = "domestic"
	// TagTotalV1 is the modern standard total pre-tax income tag
	// (...ExtraordinaryItemsNoncontrollingInterest).
	TagTotalV1 TagLabel = "total_v1"
	// TagTotalV2 is the older variant
	// (...MinorityInterestAndIncomeLossFromEquityMethodInvestments).
	TagTotalV2 TagLabel = "total_v2"
	// TagTotal is the merged label after the v1/v2 preference is applied.
	TagTotal TagLabel = "total"
)

// Missing returns the sentinel used for absent numeric values throughout the
// pipeline. Values are NaN until a source provides them; absence is never
// imputed.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether a numeric value is absent.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// FactRow is a single annual XBRL fact extracted from a companyfacts response.
type FactRow struct {
	CIK       int      `json:"cik"`
	Year      int      `json:"data_year"`
	Tag       TagLabel `json:"tag_label"`
	Value     float64  `json:"value"`
	Filed     string   `json:"filed"`
	Accession string   `json:"accn"`
	End       string   `json:"end"`
}

// IncomePanelRow is one firm-year of the SEC pre-tax income panel built from
// raw fact rows. Income fields are raw USD until the merge stage rescales
// them to millions.
type IncomePanelRow struct {
	CIK                  int     `json:"cik"`
	CompanyName          string  `json:"company_name"`
	Year                 int     `json:"year"`
	ForeignPretaxIncome  float64 `json:"foreign_pretax_income"`
	DomesticPretaxIncome float64 `json:"domestic_pretax_income"`
	TotalPretaxIncome    float64 `json:"total_pretax_income"`
	ForeignProfitShare   float64 `json:"foreign_profit_share"`
}

// TickerMapping is one entry of the SEC ticker-to-CIK mapping file.
type TickerMapping struct {
	CIK         int    `json:"cik"`
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
}
