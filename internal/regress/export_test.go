package regress

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

func TestWriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	results := []domain.RegressionResult{
		{Spec: "Main (ETR + controls)", Param: MainParam, Coef: -0.21, SE: 0.08, TStat: -2.6, PValue: 0.015, N: 900, NClusters: 24},
		{Spec: "R1: No controls", Param: MainParam, Coef: -0.19, SE: 0.09, TStat: -2.1, PValue: 0.045, N: 950, NClusters: 24},
	}
	boot := domain.BootstrapResult{Param: MainParam, Reps: 9999, Seed: 42, TStat: -2.6, PValue: 0.02}

	require.NoError(t, WriteResults(path, results, boot))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "spec,param,coef,se,t_stat,pvalue,bootstrap_pvalue,n_obs,n_clusters", lines[0])
	assert.Contains(t, lines[1], "0.02")
	// Only the main row carries the bootstrap p-value.
	fields := strings.Split(lines[2], ",")
	require.Len(t, fields, 9)
	assert.Empty(t, fields[6])
}

func TestWriteEventStudy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.csv")
	points := []domain.EventStudyPoint{
		{Year: 2016, Coef: 0.05, SE: 0.1, PValue: 0.6, CILow: -0.146, CIHigh: 0.246},
		{Year: 2017, Coef: 0, SE: 0, PValue: math.NaN(), Reference: true},
		{Year: 2019, Coef: -0.3, SE: 0.1, PValue: 0.01, CILow: -0.496, CIHigh: -0.104},
	}

	require.NoError(t, WriteEventStudy(path, points))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "year,coef,se,pvalue,ci_low,ci_high,reference", lines[0])

	// The reference row stays at zero with an empty p-value.
	ref := strings.Split(lines[2], ",")
	require.Len(t, ref, 7)
	assert.Equal(t, "2017", ref[0])
	assert.Equal(t, "0", ref[1])
	assert.Empty(t, ref[3])
	assert.Equal(t, "true", ref[6])
}
