package regress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeFE(t *testing.T) {
	levels := []string{"a", "b", "a", "c", "b"}
	fe := encodeFE(levels, []int{0, 1, 2, 3, 4})
	assert.Equal(t, 3, fe.nLevels)
	assert.Equal(t, []int{0, 1, 0, 2, 1}, fe.codes)

	// Encoding over a subset only sees the subset's levels.
	sub := encodeFE(levels, []int{0, 2})
	assert.Equal(t, 1, sub.nLevels)
}

func TestDemeanSingleFE(t *testing.T) {
	col := []float64{1, 3, 10, 20}
	fe := encodeFE([]string{"a", "a", "b", "b"}, []int{0, 1, 2, 3})

	demean([][]float64{col}, []feIndex{fe})
	assert.InDelta(t, -1, col[0], 1e-12)
	assert.InDelta(t, 1, col[1], 1e-12)
	assert.InDelta(t, -5, col[2], 1e-12)
	assert.InDelta(t, 5, col[3], 1e-12)
}

func TestAbsorbedDOF(t *testing.T) {
	assert.Equal(t, 0, absorbedDOF(nil))
	assert.Equal(t, 4, absorbedDOF([]feIndex{{nLevels: 4}}))
	assert.Equal(t, 6, absorbedDOF([]feIndex{{nLevels: 4}, {nLevels: 3}}))
}
