package regress

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/amritkgill/tariffs-profit-shifting/internal/panel"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

// Frame is a column store for one regression dataset. Numeric columns hold
// NaN for missing values; categorical columns hold "" for missing. All
// columns share the same row order and length.
type Frame struct {
	n           int
	numeric     map[string][]float64
	categorical map[string][]string
}

// NewFrame returns an empty frame with n rows.
func NewFrame(n int) *Frame {
	return &Frame{
		n:           n,
		numeric:     make(map[string][]float64),
		categorical: make(map[string][]string),
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int { return f.n }

// SetNumeric adds or replaces a numeric column.
func (f *Frame) SetNumeric(name string, values []float64) error {
	if len(values) != f.n {
		return fmt.Errorf("column %s: got %d values, frame has %d rows", name, len(values), f.n)
	}
	f.numeric[name] = values
	return nil
}

// SetCategorical adds or replaces a categorical column.
func (f *Frame) SetCategorical(name string, values []string) error {
	if len(values) != f.n {
		return fmt.Errorf("column %s: got %d values, frame has %d rows", name, len(values), f.n)
	}
	f.categorical[name] = values
	return nil
}

// Numeric returns a numeric column by name.
func (f *Frame) Numeric(name string) ([]float64, error) {
	col, ok := f.numeric[name]
	if !ok {
		return nil, fmt.Errorf("no numeric column %q", name)
	}
	return col, nil
}

// Categorical returns a categorical column by name.
func (f *Frame) Categorical(name string) ([]string, error) {
	col, ok := f.categorical[name]
	if !ok {
		return nil, fmt.Errorf("no categorical column %q", name)
	}
	return col, nil
}

// HasNumeric reports whether a numeric column exists.
func (f *Frame) HasNumeric(name string) bool {
	_, ok := f.numeric[name]
	return ok
}

// Interact builds the categorical interaction a^b (one level per observed
// pair) and stores it under the given name. A missing level on either side
// makes the interaction missing.
func (f *Frame) Interact(name, a, b string) error {
	ca, err := f.Categorical(a)
	if err != nil {
		return err
	}
	cb, err := f.Categorical(b)
	if err != nil {
		return err
	}
	out := make([]string, f.n)
	for i := range out {
		if ca[i] == "" || cb[i] == "" {
			continue
		}
		out[i] = ca[i] + "^" + cb[i]
	}
	return f.SetCategorical(name, out)
}

// BuildOptions parameterizes the regression variable construction.
type BuildOptions struct {
	PostYear      int     // first fiscal year counted as post-treatment
	ReferenceYear int     // event study reference year (no interaction column)
	PlaceboYear   int     // fake treatment year for the pre-trend placebo
	WinsorLower   float64 // main outcome winsorization, lower quantile
	WinsorUpper   float64 // main outcome winsorization, upper quantile
}

// EventColumn names the event study interaction for one year.
func EventColumn(year int) string {
	return fmt.Sprintf("tariff_x_%d", year)
}

// BuildFrame constructs every regression variable from the frozen analysis
// panel: the post indicator and tariff interaction, controls, the winsorized
// and trimmed outcome variants, industry groupings, the placebo interaction,
// and one event interaction per sample year except the reference year.
// Winsorization cutoffs are computed over the full panel, matching the
// outcome definitions reported with the results.
func BuildFrame(rows []domain.FirmYear, opts BuildOptions) (*Frame, []int, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty panel")
	}

	n := len(rows)
	f := NewFrame(n)

	etr := make([]float64, n)
	etrTrim100 := make([]float64, n)
	etrTrim60 := make([]float64, n)
	fpsW := make([]float64, n)
	logRevenue := make([]float64, n)
	rdIntensity := make([]float64, n)
	leverage := make([]float64, n)
	post := make([]float64, n)
	tariffXPost := make([]float64, n)
	tariffXPlacebo := make([]float64, n)
	yearNum := make([]float64, n)
	goods := make([]float64, n)

	cik := make([]string, n)
	year := make([]string, n)
	naics2 := make([]string, n)
	sic1 := make([]string, n)
	naics3 := make([]string, n)

	yearSet := make(map[int]bool)

	for i, r := range rows {
		etr[i] = r.EffectiveTaxRate
		fpsW[i] = r.ForeignProfitShareWinsorized
		logRevenue[i] = logPlusOne(r.TotalRevenue)
		rdIntensity[i] = ratio(r.RDExpense, r.TotalRevenue)
		leverage[i] = ratio(r.TotalDebt, r.TotalAssets)
		yearNum[i] = float64(r.Year)

		if r.Year >= opts.PostYear {
			post[i] = 1
		}
		tariffXPost[i] = r.MeanTariffIncrease * post[i]
		placebo := 0.0
		if r.Year >= opts.PlaceboYear {
			placebo = 1
		}
		tariffXPlacebo[i] = r.MeanTariffIncrease * placebo

		cik[i] = strconv.Itoa(r.CIK)
		year[i] = strconv.Itoa(r.Year)
		naics2[i] = naics2Of(r.NAICSCode)
		sic1[i] = sic1Of(r.SICCode)
		if r.NAICS3 != 0 {
			naics3[i] = strconv.Itoa(r.NAICS3)
		}
		switch {
		case r.NAICS3 == 0:
			goods[i] = domain.Missing()
		case r.NAICS3 >= 111 && r.NAICS3 <= 339:
			goods[i] = 1
		}

		yearSet[r.Year] = true
	}

	// Outcome variants share the raw ETR distribution.
	etrWinsorized := panel.Winsorize(etr, opts.WinsorLower, opts.WinsorUpper)
	etrW595 := panel.Winsorize(etr, 0.05, 0.95)
	for i, v := range etr {
		etrTrim100[i] = trim(v, 0, 100)
		etrTrim60[i] = trim(v, 0, 60)
	}

	cols := map[string][]float64{
		"etr":                             etr,
		"etr_winsorized":                  etrWinsorized,
		"etr_w5_95":                       etrW595,
		"etr_trim_100":                    etrTrim100,
		"etr_trim_60":                     etrTrim60,
		"foreign_profit_share_winsorized": fpsW,
		"log_revenue":                     logRevenue,
		"rd_intensity":                    rdIntensity,
		"leverage":                        leverage,
		"post":                            post,
		"tariff_x_post":                   tariffXPost,
		"tariff_x_post_placebo":           tariffXPlacebo,
		"year_num":                        yearNum,
		"goods_producing":                 goods,
	}
	for name, col := range cols {
		if err := f.SetNumeric(name, col); err != nil {
			return nil, nil, err
		}
	}

	cats := map[string][]string{
		"cik":    cik,
		"year":   year,
		"naics2": naics2,
		"sic1":   sic1,
		"naics3": naics3,
	}
	for name, col := range cats {
		if err := f.SetCategorical(name, col); err != nil {
			return nil, nil, err
		}
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	for _, y := range years {
		if y == opts.ReferenceYear {
			continue
		}
		col := make([]float64, n)
		for i, r := range rows {
			ind := 0.0
			if r.Year == y {
				ind = 1
			}
			col[i] = r.MeanTariffIncrease * ind
		}
		if err := f.SetNumeric(EventColumn(y), col); err != nil {
			return nil, nil, err
		}
	}

	if err := f.Interact("sic1^year", "sic1", "year"); err != nil {
		return nil, nil, err
	}
	if err := f.Interact("naics2^year", "naics2", "year"); err != nil {
		return nil, nil, err
	}

	return f, years, nil
}

// AddLinearTrends expands a categorical column into per-level linear time
// trends: for every level except the alphabetically first (the reference),
// a numeric column prefix_level equal to timeVar on that level's rows and 0
// elsewhere. Returns the new column names.
func (f *Frame) AddLinearTrends(cat, timeVar, prefix string) ([]string, error) {
	levels, err := f.Categorical(cat)
	if err != nil {
		return nil, err
	}
	t, err := f.Numeric(timeVar)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, lv := range levels {
		if lv != "" {
			seen[lv] = true
		}
	}
	ordered := make([]string, 0, len(seen))
	for lv := range seen {
		ordered = append(ordered, lv)
	}
	sort.Strings(ordered)
	if len(ordered) < 2 {
		return nil, nil
	}

	names := make([]string, 0, len(ordered)-1)
	for _, lv := range ordered[1:] {
		col := make([]float64, f.n)
		for i := range col {
			switch {
			case levels[i] == "":
				col[i] = domain.Missing()
			case levels[i] == lv:
				col[i] = t[i]
			}
		}
		name := prefix + "_" + lv
		if err := f.SetNumeric(name, col); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// BalancedFirms returns the set of cik levels observed in every sample year.
func (f *Frame) BalancedFirms(nYears int) (map[string]bool, error) {
	ciks, err := f.Categorical("cik")
	if err != nil {
		return nil, err
	}
	years, err := f.Categorical("year")
	if err != nil {
		return nil, err
	}

	firmYears := make(map[string]map[string]bool)
	for i := range ciks {
		if firmYears[ciks[i]] == nil {
			firmYears[ciks[i]] = make(map[string]bool)
		}
		firmYears[ciks[i]][years[i]] = true
	}
	balanced := make(map[string]bool)
	for cik, ys := range firmYears {
		if len(ys) == nYears {
			balanced[cik] = true
		}
	}
	return balanced, nil
}

func logPlusOne(v float64) float64 {
	if domain.IsMissing(v) {
		return domain.Missing()
	}
	return math.Log(v + 1)
}

func ratio(num, den float64) float64 {
	if domain.IsMissing(num) || domain.IsMissing(den) || den == 0 {
		return domain.Missing()
	}
	return num / den
}

func trim(v, lo, hi float64) float64 {
	if domain.IsMissing(v) || v < lo || v > hi {
		return domain.Missing()
	}
	return v
}

func naics2Of(naics int) string {
	s := strconv.Itoa(naics)
	if naics == 0 || len(s) < 2 {
		return ""
	}
	return s[:2]
}

func sic1Of(sic int) string {
	if sic == 0 {
		return "0"
	}
	return strconv.Itoa(sic)[:1]
}
