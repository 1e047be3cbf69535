package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TPS_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, "https://data.sec.gov", cfg.EDGAR.BaseURL)
	assert.Equal(t, 10.0, cfg.EDGAR.RequestsPerSec)
	assert.Equal(t, 4, cfg.EDGAR.Workers)
	assert.Equal(t, 2015, cfg.Sample.FYMin)
	assert.Equal(t, 2024, cfg.Sample.FYMax)
	assert.Equal(t, 0.05, cfg.Sample.IdentityTolerance)
	assert.Equal(t, 2019, cfg.Analysis.PostYear)
	assert.Equal(t, 2017, cfg.Analysis.ReferenceYear)
	assert.Equal(t, 9999, cfg.Analysis.BootstrapReps)
	assert.Equal(t, int64(42), cfg.Analysis.BootstrapSeed)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TPS_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("TPS_EDGAR_WORKERS", "8")
	t.Setenv("TPS_SAMPLE_FY_MAX", "2022")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.EDGAR.Workers)
	assert.Equal(t, 2022, cfg.Sample.FYMax)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("TPS_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("TPS_EDGAR_REQUESTS_PER_SEC", "50")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadBadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: ["), 0644))
	t.Setenv("TPS_CONFIG_FILE", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}

func TestValidate(t *testing.T) {
	t.Setenv("TPS_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Analysis.ReferenceYear = 1990
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference year")
}

func TestMergeConfigsFileFillsZeroValues(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Logging.Level = "debug"
	fileCfg.EDGAR.Workers = 2
	fileCfg.Analysis.PostYear = 2020

	envCfg := Config{}
	envCfg.Logging.Level = "warn"

	merged := mergeConfigs(fileCfg, envCfg)
	// Environment wins where it is set; the file fills the rest.
	assert.Equal(t, "warn", merged.Logging.Level)
	assert.Equal(t, 2, merged.EDGAR.Workers)
	assert.Equal(t, 2020, merged.Analysis.PostYear)
}

func TestSampleYears(t *testing.T) {
	s := SampleConfig{FYMin: 2015, FYMax: 2018}
	assert.Equal(t, []int{2015, 2016, 2017, 2018}, s.Years())
	assert.True(t, s.InWindow(2015))
	assert.True(t, s.InWindow(2018))
	assert.False(t, s.InWindow(2014))
	assert.False(t, s.InWindow(2019))
}
