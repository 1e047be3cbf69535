package edgar

import (
	"time"

	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// CompanyFacts mirrors the companyfacts API response, limited to the pieces
// the pipeline consumes.
type CompanyFacts struct {
	CIK        int                        `json:"cik"`
	EntityName string                     `json:"entityName"`
	Facts      map[string]map[string]Fact `json:"facts"`
}

// Fact is one XBRL concept with its reported units
type Fact struct {
	Label string                `json:"label"`
	Units map[string][]FactUnit `json:"units"`
}

// FactUnit is a single reported value for a concept
type FactUnit struct {
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Value     float64 `json:"val"`
	Accession string  `json:"accn"`
	FY        int     `json:"fy"`
	FP        string  `json:"fp"`
	Form      string  `json:"form"`
	Filed     string  `json:"filed"`
}

// incomeTags maps the pipeline's tag labels to us-gaap concept names
var incomeTags = map[domain.TagLabel]string{
	domain.TagForeign:  config.XBRLTagForeign,
	domain.TagDomestic: config.XBRLTagDomestic,
	domain.TagTotalV1:  config.XBRLTagTotalV1,
	domain.TagTotalV2:  config.XBRLTagTotalV2,
}

// ExtractIncomeFacts pulls the annual pre-tax income facts for all four tag
// variants out of one companyfacts document.
func ExtractIncomeFacts(facts *CompanyFacts, cik int, sample config.SampleConfig) []domain.FactRow {
	var rows []domain.FactRow
	for label, tag := range incomeTags {
		rows = append(rows, extractTag(facts, tag, label, cik, sample)...)
	}
	return rows
}

// extractTag extracts annual (10-K, USD, full fiscal year) values for one
// concept. The fiscal year is taken from the period end date, NOT the fy
// field: fy is the filing year and includes comparative restatements of
// earlier periods.
func extractTag(facts *CompanyFacts, tag string, label domain.TagLabel, cik int, sample config.SampleConfig) []domain.FactRow {
	usGAAP, ok := facts.Facts["us-gaap"]
	if !ok {
		return nil
	}
	fact, ok := usGAAP[tag]
	if !ok {
		return nil
	}
	usd := fact.Units["USD"]
	if len(usd) == 0 {
		return nil
	}

	var rows []domain.FactRow
	for _, entry := range usd {
		// Only annual 10-K filings
		if entry.Form != "10-K" {
			continue
		}

		if len(entry.End) < 4 {
			continue
		}
		end, err := time.Parse("2006-01-02", entry.End)
		if err != nil {
			continue
		}
		dataYear := end.Year()

		// Income items must cover a full fiscal year; quarterly and
		// multi-year cumulative periods are dropped.
		if entry.Start != "" {
			start, err := time.Parse("2006-01-02", entry.Start)
			if err != nil {
				continue
			}
			days := int(end.Sub(start).Hours() / 24)
			if days < sample.MinDurationDays || days > sample.MaxDurationDays {
				continue
			}
		}

		if !sample.InWindow(dataYear) {
			continue
		}

		rows = append(rows, domain.FactRow{
			CIK:       cik,
			Year:      dataYear,
			Tag:       label,
			Value:     entry.Value,
			Filed:     entry.Filed,
			Accession: entry.Accession,
			End:       entry.End,
		})
	}
	return rows
}
