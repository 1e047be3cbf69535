package tariff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/amritkgill/tariffs-profit-shifting/internal/errors"
	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

func writeTariffCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tariff_exposure_naics3.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTariffCSV(t, `naics3,sector_name,n_products_targeted,n_varieties_targeted,mean_tariff_increase,sd_tariff_increase
334,Computer and Electronic Product Manufacturing,120,450,18.5,6.2
325,Chemical Manufacturing,80,210,12.5,4.1
333,Machinery Manufacturing,95,300,15.5,5.0
`)

	exposures, err := Load(path, nil)
	require.NoError(t, err)
	require.Len(t, exposures, 3)

	// Sorted by NAICS3
	assert.Equal(t, 325, exposures[0].NAICS3)
	assert.Equal(t, 333, exposures[1].NAICS3)
	assert.Equal(t, 334, exposures[2].NAICS3)

	chem := exposures[0]
	assert.Equal(t, "Chemical Manufacturing", chem.SectorName)
	assert.Equal(t, 80, chem.NProductsTargeted)
	assert.Equal(t, 12.5, chem.MeanTariffIncrease)
	assert.Equal(t, 4.1, chem.SDTariffIncrease)

	// Z-scores standardize across industries: mean 15.5, symmetric spread
	assert.InDelta(t, 0.0, exposures[1].MeanTariffIncreaseZ, 1e-9)
	assert.InDelta(t, -exposures[2].MeanTariffIncreaseZ, exposures[0].MeanTariffIncreaseZ, 1e-9)
	assert.Negative(t, exposures[0].MeanTariffIncreaseZ)
}

func TestLoadDuplicateIndustry(t *testing.T) {
	path := writeTariffCSV(t, `naics3,mean_tariff_increase
334,18.5
334,12.0
`)

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingInput)
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	path := writeTariffCSV(t, `naics3,sector_name
334,Computers
`)

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mean_tariff_increase")
}

func TestByNAICS3(t *testing.T) {
	exposures := []domain.TariffExposure{
		{NAICS3: 334, MeanTariffIncrease: 18.5},
		{NAICS3: 325, MeanTariffIncrease: 12.5},
	}

	m := ByNAICS3(exposures)
	require.Len(t, m, 2)
	assert.Equal(t, 18.5, m[334].MeanTariffIncrease)
}
