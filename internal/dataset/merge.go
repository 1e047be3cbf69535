package dataset

import (
	"fmt"
	"log/slog"
	"sort"

	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// Merge joins the cleaned SEC income panel with the firm universe, the
// Bloomberg time-series financials, and the tariff exposure table into the
// final firm-year dataset.
//
// The firm join is inner (an SEC firm outside the Bloomberg universe carries
// no controls and drops out). The time-series and tariff joins are left joins
// on keys that are unique by construction, so they can never change the row
// count; uniqueness violations surface as errors before any row is built.
func Merge(
	cleaned *CleanedPanel,
	firms []domain.FirmRef,
	financials []domain.FirmFinancials,
	exposures map[int]domain.TariffExposure,
	logger *slog.Logger,
) ([]domain.FirmYear, error) {
	if logger == nil {
		logger = slog.Default()
	}

	firmByCIK := make(map[int]domain.FirmRef, len(firms))
	for _, firm := range firms {
		if _, dup := firmByCIK[firm.CIK]; dup {
			// Two Bloomberg tickers can map to one CIK (share classes);
			// keep the first, deterministically.
			continue
		}
		firmByCIK[firm.CIK] = firm
	}

	type finKey struct {
		ticker string
		year   int
	}
	finByKey := make(map[finKey]domain.FirmFinancials, len(financials))
	for _, fin := range financials {
		k := finKey{fin.Ticker, fin.Year}
		if _, dup := finByKey[k]; dup {
			// A duplicate (ticker, year) would fan out the left join.
			return nil, fmt.Errorf("time series for %s/%d duplicated: %w",
				fin.Ticker, fin.Year, apperrors.ErrRowCountChanged)
		}
		finByKey[k] = fin
	}

	secFirmsBefore := countFirms(cleaned.Rows)

	merged := make([]domain.FirmYear, 0, len(cleaned.Rows))
	withFinancials := 0
	withTariff := 0
	for i, row := range cleaned.Rows {
		firm, ok := firmByCIK[row.CIK]
		if !ok {
			continue // inner join with the Bloomberg universe
		}

		fy := domain.FirmYear{
			CIK:                  row.CIK,
			Ticker:               firm.Ticker,
			CompanyName:          row.CompanyName,
			CompanyNameBloomberg: firm.CompanyName,
			Year:                 row.Year,

			SICCode:      firm.SICCode,
			NAICSCode:    firm.NAICSCode,
			NAICS3:       firm.NAICS3,
			ICBSubsector: firm.ICBSubsector,
			MarketCap:    firm.MarketCap,
			Price:        firm.Price,

			ForeignPretaxIncome:          row.ForeignPretaxIncome,
			DomesticPretaxIncome:         row.DomesticPretaxIncome,
			TotalPretaxIncome:            row.TotalPretaxIncome,
			ForeignProfitShare:           row.ForeignProfitShare,
			ForeignProfitShareWinsorized: cleaned.FPSWinsorized[i],
			FPSExtreme:                   cleaned.FPSExtreme[i],

			TotalRevenue:          domain.Missing(),
			PretaxIncomeBloomberg: domain.Missing(),
			RDExpense:             domain.Missing(),
			TotalAssets:           domain.Missing(),
			TotalDebt:             domain.Missing(),
			CapitalExpenditure:    domain.Missing(),
			EffectiveTaxRate:      domain.Missing(),
			OperatingExpenses:     domain.Missing(),

			NProductsTargeted:   0,
			NVarietiesTargeted:  0,
			MeanTariffIncrease:  domain.Missing(),
			SDTariffIncrease:    domain.Missing(),
			MeanTariffIncreaseZ: domain.Missing(),
		}

		if fin, ok := finByKey[finKey{firm.Ticker, row.Year}]; ok {
			fy.TotalRevenue = fin.TotalRevenue
			fy.PretaxIncomeBloomberg = fin.PretaxIncomeBloomberg
			fy.RDExpense = fin.RDExpense
			fy.TotalAssets = fin.TotalAssets
			fy.TotalDebt = fin.TotalDebt
			fy.CapitalExpenditure = fin.CapitalExpenditure
			fy.EffectiveTaxRate = fin.EffectiveTaxRate
			fy.OperatingExpenses = fin.OperatingExpenses
			withFinancials++
		}

		if exposure, ok := exposures[firm.NAICS3]; ok {
			fy.SectorName = exposure.SectorName
			fy.NProductsTargeted = exposure.NProductsTargeted
			fy.NVarietiesTargeted = exposure.NVarietiesTargeted
			fy.MeanTariffIncrease = exposure.MeanTariffIncrease
			fy.SDTariffIncrease = exposure.SDTariffIncrease
			fy.MeanTariffIncreaseZ = exposure.MeanTariffIncreaseZ
			withTariff++
		}

		merged = append(merged, fy)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CIK != merged[j].CIK {
			return merged[i].CIK < merged[j].CIK
		}
		return merged[i].Year < merged[j].Year
	})

	secFirmsAfter := countFirmYears(merged)
	logger.Info("Datasets merged",
		slog.Int("observations", len(merged)),
		slog.Int("firms", secFirmsAfter),
		slog.Int("with_bloomberg_financials", withFinancials),
		slog.Int("with_tariff_exposure", withTariff))
	if secFirmsAfter < secFirmsBefore {
		logger.Warn("Inner join with firm universe dropped SEC firms",
			slog.Int("lost_firms", secFirmsBefore-secFirmsAfter))
	}

	return merged, nil
}

func countFirms(rows []domain.IncomePanelRow) int {
	firms := make(map[int]bool)
	for _, r := range rows {
		firms[r.CIK] = true
	}
	return len(firms)
}

func countFirmYears(rows []domain.FirmYear) int {
	firms := make(map[int]bool)
	for _, r := range rows {
		firms[r.CIK] = true
	}
	return len(firms)
}
