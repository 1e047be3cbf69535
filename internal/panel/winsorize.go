package panel

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// Bounds holds the winsorization cutoffs computed from a sample
type Bounds struct {
	Lower float64
	Upper float64
}

// WinsorBounds computes the lower/upper quantile cutoffs over the non-missing
// values. Returns ok=false when there is nothing to winsorize.
func WinsorBounds(values []float64, pLow, pHigh float64) (Bounds, bool) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !domain.IsMissing(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return Bounds{}, false
	}
	sort.Float64s(clean)
	return Bounds{
		Lower: stat.Quantile(pLow, stat.LinInterp, clean, nil),
		Upper: stat.Quantile(pHigh, stat.LinInterp, clean, nil),
	}, true
}

// Clip applies the bounds to one value; missing values pass through
func (b Bounds) Clip(v float64) float64 {
	if domain.IsMissing(v) {
		return v
	}
	if v < b.Lower {
		return b.Lower
	}
	if v > b.Upper {
		return b.Upper
	}
	return v
}

// Extreme reports whether a value falls outside the bounds
func (b Bounds) Extreme(v float64) bool {
	if domain.IsMissing(v) {
		return false
	}
	return v < b.Lower || v > b.Upper
}

// Winsorize clips every value to the given quantile cutoffs, leaving missing
// values missing. The returned slice is a copy.
func Winsorize(values []float64, pLow, pHigh float64) []float64 {
	bounds, ok := WinsorBounds(values, pLow, pHigh)
	out := make([]float64, len(values))
	copy(out, values)
	if !ok {
		return out
	}
	for i, v := range out {
		out[i] = bounds.Clip(v)
	}
	return out
}
