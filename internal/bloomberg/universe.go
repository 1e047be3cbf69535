package bloomberg

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// CleanTicker normalizes a Bloomberg ticker ("NVDA US Equity" -> "NVDA")
func CleanTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(raw, config.BloombergTickerSuffix, "")))
}

// LoadUniverse reads the firm_universe sheet into static firm attributes.
// The first data row under the header is a Bloomberg count/label row and is
// skipped; firms without a usable ticker are dropped.
func LoadUniverse(path string, logger *slog.Logger) ([]domain.FirmRef, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.FirmUniverseSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", config.FirmUniverseSheet, err)
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("sheet %q has no data rows", config.FirmUniverseSheet)
	}

	cols, err := mapColumns(rows[0], []string{"Ticker"})
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", config.FirmUniverseSheet, err)
	}

	var firms []domain.FirmRef
	// rows[1] is the junk header/count row
	for _, row := range rows[2:] {
		ticker := CleanTicker(cell(row, colIdx(cols, "Ticker")))
		if ticker == "" {
			continue
		}

		naics := parseCode(cell(row, colIdx(cols, "NAICS Code")))
		firm := domain.FirmRef{
			Ticker:       ticker,
			CompanyName:  strings.TrimSpace(cell(row, colIdx(cols, "Short Name"))),
			SICCode:      parseCode(cell(row, colIdx(cols, "SIC Code"))),
			NAICSCode:    naics,
			NAICS3:       naics3Of(naics),
			ICBSubsector: strings.TrimSpace(cell(row, colIdx(cols, "ICB Subsector Name"))),
			MarketCap:    parseNumeric(cell(row, colIdx(cols, "Market Cap"))),
			Price:        parseNumeric(cell(row, colIdx(cols, "Price:D-1"))),
		}
		firms = append(firms, firm)
	}

	withNAICS := 0
	withSIC := 0
	for _, firm := range firms {
		if firm.NAICSCode != 0 {
			withNAICS++
		}
		if firm.SICCode != 0 {
			withSIC++
		}
	}
	logger.Info("Firm universe loaded",
		slog.Int("firms", len(firms)),
		slog.Int("with_naics", withNAICS),
		slog.Int("with_sic", withSIC))

	return firms, nil
}

// MapToCIK joins the universe against the SEC ticker mapping, dropping firms
// without a CIK (typically ETFs and funds with no EDGAR filings).
func MapToCIK(firms []domain.FirmRef, mappings []domain.TickerMapping, logger *slog.Logger) []domain.FirmRef {
	if logger == nil {
		logger = slog.Default()
	}

	cikByTicker := make(map[string]int, len(mappings))
	for _, m := range mappings {
		if _, exists := cikByTicker[m.Ticker]; !exists {
			cikByTicker[m.Ticker] = m.CIK
		}
	}

	var matched []domain.FirmRef
	for _, firm := range firms {
		cik, ok := cikByTicker[firm.Ticker]
		if !ok {
			continue
		}
		firm.CIK = cik
		matched = append(matched, firm)
	}

	logger.Info("Mapped Bloomberg tickers to CIK",
		slog.Int("matched", len(matched)),
		slog.Int("unmatched", len(firms)-len(matched)))

	return matched
}

// naics3Of extracts the 3-digit industry prefix from a full NAICS code
func naics3Of(naics int) int {
	if naics == 0 {
		return 0
	}
	s := strconv.Itoa(naics)
	if len(s) < 3 {
		return 0
	}
	n3, err := strconv.Atoi(s[:3])
	if err != nil {
		return 0
	}
	return n3
}

// parseCode parses a classification code cell; Bloomberg sometimes exports
// codes as floats ("334413.0").
func parseCode(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// parseNumeric parses a numeric cell, mapping blanks and Bloomberg
// placeholders to missing.
func parseNumeric(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	switch s {
	case "", "#N/A", "#N/A N/A", "N/A", "--":
		return domain.Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Missing()
	}
	return v
}

// mapColumns maps header names to column indices, verifying required columns
func mapColumns(header []string, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

// colIdx returns the index of a named column, -1 when absent
func colIdx(cols map[string]int, name string) int {
	if i, ok := cols[name]; ok {
		return i
	}
	return -1
}

// cell returns the cell at idx, empty when the row is short or the column
// absent (excelize drops trailing empty cells).
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
