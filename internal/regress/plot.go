package regress

import (
	"fmt"
	"os"
	"path/filepath"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/MetalBlueberry/go-plotly/offline"

	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// WriteEventStudyPlot renders the event study coefficients with their 95%
// confidence band to a self-contained HTML file. A dashed vertical line
// marks the year the tariffs were imposed.
func WriteEventStudyPlot(points []domain.EventStudyPoint, treatYear int, fileName string) error {
	if len(points) == 0 {
		return fmt.Errorf("no event study points to plot")
	}
	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return fmt.Errorf("failed to create plot directory: %w", err)
	}

	years := make([]float64, len(points))
	coefs := make([]float64, len(points))
	errs := make([]float64, len(points))
	ciLow := make([]float64, len(points))
	ciHigh := make([]float64, len(points))
	for i, p := range points {
		years[i] = float64(p.Year)
		coefs[i] = p.Coef
		errs[i] = 1.96 * p.SE
		ciLow[i] = p.Coef - 1.96*p.SE
		ciHigh[i] = p.Coef + 1.96*p.SE
	}

	bandTop := &grob.Scatter{
		Name:       "95% CI",
		X:          years,
		Y:          ciHigh,
		Mode:       grob.ScatterModeLines,
		Line:       &grob.ScatterLine{Width: 0, Color: "rgba(44,62,80,0.15)"},
		Showlegend: grob.False,
	}
	bandBottom := &grob.Scatter{
		Name:       "95% CI",
		X:          years,
		Y:          ciLow,
		Mode:       grob.ScatterModeLines,
		Line:       &grob.ScatterLine{Width: 0, Color: "rgba(44,62,80,0.15)"},
		Fill:       grob.ScatterFillTonexty,
		Fillcolor:  "rgba(44,62,80,0.15)",
		Showlegend: grob.False,
	}
	series := &grob.Scatter{
		Name: "Coefficient",
		X:    years,
		Y:    coefs,
		Mode: grob.ScatterModeLines + "+" + grob.ScatterModeMarkers,
		Line: &grob.ScatterLine{Color: "#2c3e50"},
		ErrorY: &grob.ScatterErrorY{
			Type:    grob.ScatterErrorYTypeData,
			Array:   errs,
			Visible: grob.True,
		},
	}

	// Vertical marker at the treatment year, spanning the band extent.
	lo, hi := ciLow[0], ciHigh[0]
	for i := range points {
		if ciLow[i] < lo {
			lo = ciLow[i]
		}
		if ciHigh[i] > hi {
			hi = ciHigh[i]
		}
	}
	treatLine := &grob.Scatter{
		Name: fmt.Sprintf("Tariffs imposed (%d)", treatYear),
		X:    []float64{float64(treatYear), float64(treatYear)},
		Y:    []float64{lo, hi},
		Mode: grob.ScatterModeLines,
		Line: &grob.ScatterLine{Color: "red", Dash: "dash", Width: 1},
	}
	zeroLine := &grob.Scatter{
		Name:       "zero",
		X:          []float64{years[0], years[len(years)-1]},
		Y:          []float64{0, 0},
		Mode:       grob.ScatterModeLines,
		Line:       &grob.ScatterLine{Color: "gray", Dash: "dash", Width: 1},
		Showlegend: grob.False,
	}

	fig := &grob.Fig{Layout: &grob.Layout{
		Title: &grob.LayoutTitle{
			Text: "Event Study: Tariff Exposure and Effective Tax Rate",
		},
		Xaxis: &grob.LayoutXaxis{
			Title: &grob.LayoutXaxisTitle{Text: "Year"},
		},
		Yaxis: &grob.LayoutYaxis{
			Title: &grob.LayoutYaxisTitle{Text: "Coefficient (effect on ETR)"},
		},
		Showlegend: grob.True,
	}}
	fig.AddTraces(bandTop, bandBottom, zeroLine, treatLine, series)

	offline.ToHtml(fig, fileName)
	return nil
}
