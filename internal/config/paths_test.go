package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsAt(t *testing.T) {
	base := t.TempDir()
	p := PathsAt(base)

	assert.Equal(t, base, p.ExecutableDir)
	assert.Equal(t, filepath.Join(base, "data", "raw"), p.RawDir)
	assert.Equal(t, filepath.Join(base, "data", "processed"), p.ProcessedDir)
	assert.Equal(t, filepath.Join(base, "output"), p.OutputDir)

	assert.Equal(t, filepath.Join(base, "firm_variables.xlsx"), p.FirmWorkbook)
	assert.Equal(t, filepath.Join(base, "tariff_exposure_naics3.csv"), p.TariffCSV)

	assert.Equal(t, filepath.Join(base, "data", "raw", "sec_ticker_cik_mapping.csv"), p.TickerMappingCSV)
	assert.Equal(t, filepath.Join(base, "data", "processed", "merged_panel.csv"), p.MergedPanelCSV)
	assert.Equal(t, filepath.Join(base, "output", "regression_results.csv"), p.RegressionResultsCSV)
	assert.Equal(t, filepath.Join(base, "output", "event_study_etr.html"), p.EventStudyHTML)
}

func TestEnsureDirectories(t *testing.T) {
	p := PathsAt(t.TempDir())
	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.DataDir, p.RawDir, p.ProcessedDir, p.OutputDir, p.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestPathHelpers(t *testing.T) {
	p := PathsAt("/base")
	assert.Equal(t, filepath.Join("/base", "logs", "acquire.log"), p.GetLogPath("acquire.log"))
	assert.Equal(t, filepath.Join("/base", "data", "raw", "x.csv"), p.GetRawPath("x.csv"))
	assert.Equal(t, filepath.Join("/base", "data", "processed", "x.csv"), p.GetProcessedPath("x.csv"))
	assert.Equal(t, filepath.Join("/base", "output", "x.csv"), p.GetOutputPath("x.csv"))
}

func TestGetPaths(t *testing.T) {
	p, err := GetPaths()
	require.NoError(t, err)
	assert.NotEmpty(t, p.ExecutableDir)
	assert.True(t, filepath.IsAbs(p.MergedPanelCSV))
}
