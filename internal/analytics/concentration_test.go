package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHHI(t *testing.T) {
	assert.InDelta(t, 0.52, HHI([]float64{0.6, 0.4}), 1e-12)
	assert.InDelta(t, 1.0, HHI([]float64{1.0}), 1e-12)
	assert.InDelta(t, 0.25, HHI([]float64{0.25, 0.25, 0.25, 0.25}), 1e-12)
}

func TestHHIBounds(t *testing.T) {
	cases := [][]float64{
		{0.5, 0.3, 0.2},
		{0.9, 0.05, 0.05},
		{1.0 / 3, 1.0 / 3, 1.0 / 3},
	}
	for _, weights := range cases {
		h := HHI(weights)
		n := float64(len(weights))
		assert.GreaterOrEqual(t, h, 1/n-1e-12)
		assert.LessOrEqual(t, h, 1.0)
	}
}

func TestDiversificationScoreEqualWeights(t *testing.T) {
	for n := 2; n <= 10; n++ {
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = 1 / float64(n)
		}
		assert.InDelta(t, 100.0, DiversificationScore(weights), 1e-9, "n=%d", n)
	}
}

func TestDiversificationScoreSingleAsset(t *testing.T) {
	assert.Equal(t, 0.0, DiversificationScore([]float64{1.0}))
	assert.Equal(t, 0.0, DiversificationScore(nil))
}

func TestDiversificationScoreConcentrated(t *testing.T) {
	score := DiversificationScore([]float64{0.9, 0.1})

	// HHI 0.82 -> (1-0.82)/(1-0.5)*100 = 36
	assert.InDelta(t, 36.0, score, 1e-9)
}

func TestTopNWeight(t *testing.T) {
	weights := []float64{0.1, 0.5, 0.4}

	assert.InDelta(t, 0.5, TopNWeight(weights, 1), 1e-12)
	assert.InDelta(t, 0.9, TopNWeight(weights, 2), 1e-12)
	assert.InDelta(t, 1.0, TopNWeight(weights, 3), 1e-12)

	// n beyond the holding count sums everything
	assert.InDelta(t, 1.0, TopNWeight(weights, 10), 1e-12)
	// n <= 0 defaults to the largest single position
	assert.InDelta(t, 0.5, TopNWeight(weights, 0), 1e-12)
}
