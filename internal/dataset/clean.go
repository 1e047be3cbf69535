package dataset

import (
	"log/slog"

	"github.com/amritkgill/tariffs-profit-shifting/internal/config"
	"github.com/amritkgill/tariffs-profit-shifting/internal/panel"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// CleanedPanel is the SEC income panel after the merge-stage cleaning pass
type CleanedPanel struct {
	Rows []domain.IncomePanelRow
	// Winsorized FPS and extreme flags, aligned with Rows
	FPSWinsorized []float64
	FPSExtreme    []bool
	Bounds        panel.Bounds
}

// CleanSECPanel prepares the stage-1 income panel for merging:
// restricts to the sample window, drops duplicate firm-year rows (keeping the
// first, which carries the higher-priority tag), rescales income from raw
// dollars to USD millions to match the Bloomberg scale, and winsorizes the
// foreign profit share.
func CleanSECPanel(rows []domain.IncomePanelRow, sample config.SampleConfig, logger *slog.Logger) *CleanedPanel {
	if logger == nil {
		logger = slog.Default()
	}

	seen := make(map[[2]int]bool)
	cleaned := make([]domain.IncomePanelRow, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if !sample.InWindow(row.Year) {
			continue
		}
		key := [2]int{row.CIK, row.Year}
		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true

		// Raw dollars -> USD millions
		row.ForeignPretaxIncome /= 1e6
		row.DomesticPretaxIncome /= 1e6
		row.TotalPretaxIncome /= 1e6
		cleaned = append(cleaned, row)
	}
	if dropped > 0 {
		logger.Info("Dropped duplicate firm-year rows", slog.Int("count", dropped))
	}

	fps := make([]float64, len(cleaned))
	for i, row := range cleaned {
		fps[i] = row.ForeignProfitShare
	}

	bounds, ok := panel.WinsorBounds(fps, sample.WinsorLower, sample.WinsorUpper)
	winsorized := make([]float64, len(cleaned))
	extreme := make([]bool, len(cleaned))
	nExtreme := 0
	for i, v := range fps {
		if !ok {
			winsorized[i] = v
			continue
		}
		winsorized[i] = bounds.Clip(v)
		extreme[i] = bounds.Extreme(v)
		if extreme[i] {
			nExtreme++
		}
	}

	logger.Info("SEC income panel cleaned",
		slog.Int("observations", len(cleaned)),
		slog.Float64("fps_p_low", bounds.Lower),
		slog.Float64("fps_p_high", bounds.Upper),
		slog.Int("fps_extreme_flagged", nExtreme))

	return &CleanedPanel{
		Rows:          cleaned,
		FPSWinsorized: winsorized,
		FPSExtreme:    extreme,
		Bounds:        bounds,
	}
}
