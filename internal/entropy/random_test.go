package entropy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceDeterministic(t *testing.T) {
	t.Parallel()

	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}

	c := NewSource(42)
	d := NewSource(43)
	same := true
	for i := 0; i < 10; i++ {
		if c.Float64() != d.Float64() {
			same = false
		}
	}
	assert.False(t, same, "different seeds should diverge")
}

func TestPickPairDistinct(t *testing.T) {
	t.Parallel()

	src := NewSource(1)
	for n := 2; n <= 6; n++ {
		for trial := 0; trial < 500; trial++ {
			i, j := src.PickPair(n)
			require.NotEqual(t, i, j)
			require.GreaterOrEqual(t, i, 0)
			require.Less(t, i, n)
			require.GreaterOrEqual(t, j, 0)
			require.Less(t, j, n)
		}
	}
}

func TestPickPairCoversAllPairs(t *testing.T) {
	t.Parallel()

	src := NewSource(7)
	seen := make(map[[2]int]int)
	for trial := 0; trial < 5000; trial++ {
		i, j := src.PickPair(4)
		seen[[2]int{i, j}]++
	}
	// All 12 ordered pairs of 4 elements should appear.
	assert.Len(t, seen, 12)
}

func TestWeightedIndex(t *testing.T) {
	t.Parallel()

	src := NewSource(99)

	counts := make([]int, 3)
	const trials = 30000
	for i := 0; i < trials; i++ {
		counts[src.WeightedIndex([]float64{0.5, 0.3, 0.2})]++
	}

	assert.InDelta(t, 0.5, float64(counts[0])/trials, 0.03)
	assert.InDelta(t, 0.3, float64(counts[1])/trials, 0.03)
	assert.InDelta(t, 0.2, float64(counts[2])/trials, 0.03)

	// Zero-weight entries are never drawn.
	for i := 0; i < 1000; i++ {
		assert.NotEqual(t, 1, src.WeightedIndex([]float64{1, 0, 1}))
	}

	// Degenerate weights fall back to index 0.
	assert.Equal(t, 0, src.WeightedIndex([]float64{0, 0}))
}

func TestPoisson(t *testing.T) {
	t.Parallel()

	src := NewSource(5)

	const trials = 20000
	mean := 5.0
	sum := 0
	for i := 0; i < trials; i++ {
		sum += src.Poisson(mean)
	}
	observed := float64(sum) / trials
	assert.InDelta(t, mean, observed, 0.1)

	assert.Equal(t, 0, src.Poisson(0))
	assert.Equal(t, 0, src.Poisson(-1))
}

func TestPoissonSmallMean(t *testing.T) {
	t.Parallel()

	src := NewSource(11)
	const trials = 20000
	zeros := 0
	for i := 0; i < trials; i++ {
		if src.Poisson(1.0) == 0 {
			zeros++
		}
	}
	// P(X=0) for mean 1 is e^-1.
	assert.InDelta(t, math.Exp(-1), float64(zeros)/trials, 0.02)
}
