package regress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

func testBuildOptions() BuildOptions {
	return BuildOptions{
		PostYear:      2019,
		ReferenceYear: 2017,
		PlaceboYear:   2017,
		WinsorLower:   0.01,
		WinsorUpper:   0.99,
	}
}

func firmYear(cik, year int, tariff float64) domain.FirmYear {
	return domain.FirmYear{
		CIK:                          cik,
		Ticker:                       "T",
		Year:                         year,
		SICCode:                      3674,
		NAICSCode:                    334413,
		NAICS3:                       334,
		EffectiveTaxRate:             25,
		ForeignProfitShareWinsorized: 0.4,
		TotalRevenue:                 1000,
		RDExpense:                    100,
		TotalAssets:                  2000,
		TotalDebt:                    500,
		MeanTariffIncrease:           tariff,
	}
}

func TestBuildFrameVariables(t *testing.T) {
	rows := []domain.FirmYear{
		firmYear(1, 2017, 10),
		firmYear(1, 2019, 10),
	}
	f, years, err := BuildFrame(rows, testBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{2017, 2019}, years)
	assert.Equal(t, 2, f.Len())

	post, err := f.Numeric("post")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, post)

	txp, err := f.Numeric("tariff_x_post")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10}, txp)

	// Placebo treats 2017 onward as post.
	placebo, err := f.Numeric("tariff_x_post_placebo")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 10}, placebo)

	logRev, err := f.Numeric("log_revenue")
	require.NoError(t, err)
	assert.InDelta(t, math.Log(1001), logRev[0], 1e-12)

	rd, err := f.Numeric("rd_intensity")
	require.NoError(t, err)
	assert.InDelta(t, 0.1, rd[0], 1e-12)

	lev, err := f.Numeric("leverage")
	require.NoError(t, err)
	assert.InDelta(t, 0.25, lev[0], 1e-12)
}

func TestBuildFrameCategoricals(t *testing.T) {
	a := firmYear(1, 2019, 5)
	b := firmYear(2, 2019, 0)
	b.SICCode = 0
	b.NAICSCode = 0
	b.NAICS3 = 0

	f, _, err := BuildFrame([]domain.FirmYear{a, b}, testBuildOptions())
	require.NoError(t, err)

	naics2, err := f.Categorical("naics2")
	require.NoError(t, err)
	assert.Equal(t, []string{"33", ""}, naics2)

	sic1, err := f.Categorical("sic1")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "0"}, sic1)

	naics3, err := f.Categorical("naics3")
	require.NoError(t, err)
	assert.Equal(t, []string{"334", ""}, naics3)

	// A missing side makes the interaction missing.
	inter, err := f.Categorical("naics2^year")
	require.NoError(t, err)
	assert.Equal(t, []string{"33^2019", ""}, inter)

	goods, err := f.Numeric("goods_producing")
	require.NoError(t, err)
	assert.Equal(t, 1.0, goods[0])
	assert.True(t, domain.IsMissing(goods[1]))
}

func TestBuildFrameGoodsProducing(t *testing.T) {
	services := firmYear(2, 2019, 0)
	services.NAICSCode = 511210
	services.NAICS3 = 511

	f, _, err := BuildFrame([]domain.FirmYear{firmYear(1, 2019, 5), services}, testBuildOptions())
	require.NoError(t, err)

	goods, err := f.Numeric("goods_producing")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, goods)
}

func TestBuildFrameOutcomeVariants(t *testing.T) {
	rows := []domain.FirmYear{
		firmYear(1, 2017, 1),
		firmYear(2, 2017, 1),
		firmYear(3, 2017, 1),
	}
	rows[1].EffectiveTaxRate = 80
	rows[2].EffectiveTaxRate = -5

	f, _, err := BuildFrame(rows, testBuildOptions())
	require.NoError(t, err)

	trim100, err := f.Numeric("etr_trim_100")
	require.NoError(t, err)
	assert.Equal(t, 25.0, trim100[0])
	assert.Equal(t, 80.0, trim100[1])
	assert.True(t, domain.IsMissing(trim100[2]))

	trim60, err := f.Numeric("etr_trim_60")
	require.NoError(t, err)
	assert.Equal(t, 25.0, trim60[0])
	assert.True(t, domain.IsMissing(trim60[1]))
	assert.True(t, domain.IsMissing(trim60[2]))

	for _, name := range []string{"etr_winsorized", "etr_w5_95"} {
		col, err := f.Numeric(name)
		require.NoError(t, err)
		assert.Len(t, col, 3)
	}
}

func TestBuildFrameEventColumns(t *testing.T) {
	rows := []domain.FirmYear{
		firmYear(1, 2016, 4),
		firmYear(1, 2017, 4),
		firmYear(1, 2019, 4),
	}
	f, years, err := BuildFrame(rows, testBuildOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{2016, 2017, 2019}, years)

	// No interaction for the reference year.
	assert.False(t, f.HasNumeric(EventColumn(2017)))

	ev2019, err := f.Numeric(EventColumn(2019))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 4}, ev2019)

	ev2016, err := f.Numeric(EventColumn(2016))
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 0, 0}, ev2016)
}

func TestBuildFrameMissingDenominators(t *testing.T) {
	a := firmYear(1, 2019, 2)
	a.TotalRevenue = 0
	a.TotalAssets = domain.Missing()

	f, _, err := BuildFrame([]domain.FirmYear{a, firmYear(2, 2019, 2)}, testBuildOptions())
	require.NoError(t, err)

	rd, err := f.Numeric("rd_intensity")
	require.NoError(t, err)
	assert.True(t, domain.IsMissing(rd[0]))

	lev, err := f.Numeric("leverage")
	require.NoError(t, err)
	assert.True(t, domain.IsMissing(lev[0]))
}

func TestBuildFrameEmptyPanel(t *testing.T) {
	_, _, err := BuildFrame(nil, testBuildOptions())
	assert.Error(t, err)
}

func TestAddLinearTrends(t *testing.T) {
	f := NewFrame(4)
	require.NoError(t, f.SetCategorical("grp", []string{"a", "b", "b", ""}))
	require.NoError(t, f.SetNumeric("t", []float64{1, 2, 3, 4}))

	names, err := f.AddLinearTrends("grp", "t", "trend")
	require.NoError(t, err)
	// Level "a" is the reference and gets no column.
	require.Equal(t, []string{"trend_b"}, names)

	col, err := f.Numeric("trend_b")
	require.NoError(t, err)
	assert.Equal(t, 0.0, col[0])
	assert.Equal(t, 2.0, col[1])
	assert.Equal(t, 3.0, col[2])
	assert.True(t, domain.IsMissing(col[3]))
}

func TestAddLinearTrendsSingleLevel(t *testing.T) {
	f := NewFrame(2)
	require.NoError(t, f.SetCategorical("grp", []string{"a", "a"}))
	require.NoError(t, f.SetNumeric("t", []float64{1, 2}))

	names, err := f.AddLinearTrends("grp", "t", "trend")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestBalancedFirms(t *testing.T) {
	f := NewFrame(5)
	require.NoError(t, f.SetCategorical("cik", []string{"1", "1", "1", "2", "2"}))
	require.NoError(t, f.SetCategorical("year", []string{"2017", "2018", "2019", "2017", "2018"}))

	balanced, err := f.BalancedFirms(3)
	require.NoError(t, err)
	assert.True(t, balanced["1"])
	assert.False(t, balanced["2"])
}
