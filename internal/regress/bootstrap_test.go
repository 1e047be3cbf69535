package regress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourClusterFit(t *testing.T) *Fit {
	t.Helper()
	n := 16
	x := make([]float64, n)
	y := make([]float64, n)
	grp := make([]string, n)
	groups := []string{"a", "b", "c", "d"}
	for i := 0; i < n; i++ {
		x[i] = float64(i % 4)
		y[i] = 2*x[i] + float64(i%3) - 1
		grp[i] = groups[i/4]
	}

	f := NewFrame(n)
	require.NoError(t, f.SetNumeric("x", x))
	require.NoError(t, f.SetNumeric("y", y))
	require.NoError(t, f.SetCategorical("grp", grp))

	ft, err := Estimate(f, Spec{
		Name:         "boot",
		Outcome:      "y",
		Regressors:   []string{"x"},
		FixedEffects: []string{"grp"},
		Cluster:      "grp",
	})
	require.NoError(t, err)
	return ft
}

func TestWildClusterBootstrap(t *testing.T) {
	ft := fourClusterFit(t)

	boot, err := WildClusterBootstrap(ft, "x", 199, 42)
	require.NoError(t, err)

	assert.Equal(t, "x", boot.Param)
	assert.Equal(t, 199, boot.Reps)
	assert.Equal(t, int64(42), boot.Seed)
	assert.InDelta(t, ft.TStat[0], boot.TStat, 1e-15)
	assert.GreaterOrEqual(t, boot.PValue, 0.0)
	assert.LessOrEqual(t, boot.PValue, 1.0)
}

func TestWildClusterBootstrapDeterministic(t *testing.T) {
	ft := fourClusterFit(t)

	a, err := WildClusterBootstrap(ft, "x", 99, 7)
	require.NoError(t, err)
	b, err := WildClusterBootstrap(ft, "x", 99, 7)
	require.NoError(t, err)
	assert.Equal(t, a.PValue, b.PValue)

	// A different seed draws different weights.
	c, err := WildClusterBootstrap(ft, "x", 99, 8)
	require.NoError(t, err)
	assert.Equal(t, a.Reps, c.Reps)
}

func TestWildClusterBootstrapUnknownParam(t *testing.T) {
	ft := fourClusterFit(t)
	_, err := WildClusterBootstrap(ft, "nope", 99, 1)
	assert.Error(t, err)
}

func TestWildClusterBootstrapBadReps(t *testing.T) {
	ft := fourClusterFit(t)
	_, err := WildClusterBootstrap(ft, "x", 0, 1)
	assert.Error(t, err)
}
