package regress

import "math"

const (
	demeanTol     = 1e-10
	demeanMaxIter = 500
)

// feIndex encodes one categorical fixed effect as dense integer codes.
type feIndex struct {
	codes   []int // one per row
	nLevels int
}

// encodeFE maps string levels to dense codes over the given row subset.
func encodeFE(levels []string, rows []int) feIndex {
	codes := make([]int, len(rows))
	lookup := make(map[string]int)
	for i, r := range rows {
		lv := levels[r]
		code, ok := lookup[lv]
		if !ok {
			code = len(lookup)
			lookup[lv] = code
		}
		codes[i] = code
	}
	return feIndex{codes: codes, nLevels: len(lookup)}
}

// demean removes the fixed effects from every column in place by iterated
// within-group demeaning. With a single fixed effect one sweep is exact;
// with several the sweeps alternate until the largest adjustment falls
// below tolerance.
func demean(cols [][]float64, fes []feIndex) {
	if len(fes) == 0 || len(cols) == 0 {
		return
	}
	n := len(cols[0])

	for iter := 0; iter < demeanMaxIter; iter++ {
		maxDelta := 0.0
		for _, fe := range fes {
			sums := make([]float64, fe.nLevels)
			counts := make([]float64, fe.nLevels)
			for _, col := range cols {
				for i := range sums {
					sums[i] = 0
					counts[i] = 0
				}
				for i := 0; i < n; i++ {
					sums[fe.codes[i]] += col[i]
					counts[fe.codes[i]]++
				}
				for i := range sums {
					sums[i] /= counts[i]
				}
				for i := 0; i < n; i++ {
					col[i] -= sums[fe.codes[i]]
					if d := math.Abs(sums[fe.codes[i]]); d > maxDelta {
						maxDelta = d
					}
				}
			}
		}
		if maxDelta < demeanTol || len(fes) == 1 {
			return
		}
	}
}

// absorbedDOF returns the degrees of freedom consumed by the fixed effects:
// the sum of level counts less one per effect beyond the first, since each
// additional effect shares the global intercept.
func absorbedDOF(fes []feIndex) int {
	if len(fes) == 0 {
		return 0
	}
	dof := 0
	for _, fe := range fes {
		dof += fe.nLevels
	}
	return dof - (len(fes) - 1)
}
