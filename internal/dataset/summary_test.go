package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

func TestDictionaryMatchesPanelColumns(t *testing.T) {
	entries := Dictionary()
	require.Len(t, entries, len(mergedPanelHeader))
	for i, e := range entries {
		assert.Equal(t, mergedPanelHeader[i], e.Variable, "dictionary order must follow the column order")
		assert.NotEmpty(t, e.Description)
		assert.NotEmpty(t, e.Source)
	}
}

func TestSummarize(t *testing.T) {
	rows := []domain.FirmYear{
		goodFirmYear(1, 2018),
		goodFirmYear(2, 2018),
		goodFirmYear(3, 2019),
	}
	rows[0].TotalRevenue = 100
	rows[1].TotalRevenue = 200
	rows[2].TotalRevenue = domain.Missing()

	summaries := Summarize(rows)
	byVar := make(map[string]VariableSummary)
	for _, s := range summaries {
		byVar[s.Variable] = s
	}

	rev, ok := byVar["total_revenue"]
	require.True(t, ok)
	assert.Equal(t, 2, rev.N)
	assert.Equal(t, 1, rev.Missing)
	assert.InDelta(t, 150.0, rev.Mean, 1e-9)
	assert.Equal(t, 100.0, rev.Min)
	assert.Equal(t, 200.0, rev.Max)

	tariff := byVar["mean_tariff_increase"]
	assert.Equal(t, 0, tariff.N)
	assert.Equal(t, 3, tariff.Missing)
}

func TestStage3Exports(t *testing.T) {
	dir := t.TempDir()
	rows := []domain.FirmYear{goodFirmYear(1, 2019)}

	require.NoError(t, WriteDictionary(filepath.Join(dir, "dict.csv"), Dictionary()))
	require.NoError(t, WriteSummary(filepath.Join(dir, "summary.csv"), Summarize(rows)))

	checks, err := QualityChecks(rows, testSample(), nil)
	require.NoError(t, err)
	require.NoError(t, WriteChecksReport(filepath.Join(dir, "checks.txt"), ChecksReport(rows, checks)))

	for _, name := range []string{"dict.csv", "summary.csv", "checks.txt"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}
