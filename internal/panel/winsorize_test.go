package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amritkgill/tariffs-profit-shifting/pkg/contracts/domain"
)

func TestWinsorBounds(t *testing.T) {
	values := make([]float64, 0, 101)
	for i := 0; i <= 100; i++ {
		values = append(values, float64(i))
	}

	bounds, ok := WinsorBounds(values, 0.05, 0.95)
	require.True(t, ok)
	assert.InDelta(t, 5.0, bounds.Lower, 1e-9)
	assert.InDelta(t, 95.0, bounds.Upper, 1e-9)
}

func TestWinsorBoundsIgnoresMissing(t *testing.T) {
	values := []float64{1, 2, 3, domain.Missing(), 4, 5}
	bounds, ok := WinsorBounds(values, 0, 1)
	require.True(t, ok)
	assert.Equal(t, 1.0, bounds.Lower)
	assert.Equal(t, 5.0, bounds.Upper)
}

func TestWinsorBoundsAllMissing(t *testing.T) {
	_, ok := WinsorBounds([]float64{domain.Missing(), domain.Missing()}, 0.01, 0.99)
	assert.False(t, ok)
}

func TestClipAndExtreme(t *testing.T) {
	b := Bounds{Lower: 0, Upper: 10}

	assert.Equal(t, 0.0, b.Clip(-5))
	assert.Equal(t, 10.0, b.Clip(50))
	assert.Equal(t, 7.0, b.Clip(7))
	assert.True(t, domain.IsMissing(b.Clip(domain.Missing())))

	assert.True(t, b.Extreme(-5))
	assert.True(t, b.Extreme(50))
	assert.False(t, b.Extreme(7))
	assert.False(t, b.Extreme(domain.Missing()))
}

func TestWinsorize(t *testing.T) {
	values := []float64{-100, 1, 2, 3, domain.Missing(), 4, 5, 100}
	out := Winsorize(values, 0.10, 0.90)

	require.Len(t, out, len(values))
	assert.True(t, domain.IsMissing(out[4]), "missing stays missing")
	assert.Greater(t, out[0], -100.0, "low outlier clipped up")
	assert.Less(t, out[7], 100.0, "high outlier clipped down")
	// Input untouched
	assert.Equal(t, -100.0, values[0])
}
