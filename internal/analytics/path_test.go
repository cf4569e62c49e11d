package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateValues(t *testing.T) {
	returns := []float64{math.Log(1.1), math.Log(0.9)}

	values := SimulateValues(returns, 1.0)

	require.Len(t, values, 3)
	assert.Equal(t, 1.0, values[0])
	assert.InDelta(t, 1.1, values[1], 1e-12)
	assert.InDelta(t, 0.99, values[2], 1e-12)
}

func TestSimulateValuesEmptyReturns(t *testing.T) {
	values := SimulateValues(nil, 1.0)

	require.Len(t, values, 1)
	assert.Equal(t, 1.0, values[0])
}

func TestSimulateValuesRoundTripMonotonic(t *testing.T) {
	// A monotonically increasing price series must produce a monotonically
	// increasing value path when driven through its own log returns
	prices := []float64{100, 101, 103, 108, 110, 115}
	values := SimulateValues(LogReturns(prices), 1.0)

	require.Len(t, values, len(prices))
	for i := 1; i < len(values); i++ {
		assert.Greater(t, values[i], values[i-1])
	}
	// The path reproduces the price relatives exactly up to float error
	assert.InDelta(t, 1.15, values[len(values)-1], 1e-9)
}

func TestDrawdownSeries(t *testing.T) {
	values := []float64{1.0, 1.1, 0.9, 1.2}

	drawdowns := DrawdownSeries(values)

	require.Len(t, drawdowns, 4)
	assert.Equal(t, 0.0, drawdowns[0])
	assert.Equal(t, 0.0, drawdowns[1])
	assert.InDelta(t, -0.181818, drawdowns[2], 1e-6)
	assert.Equal(t, 0.0, drawdowns[3])
}

func TestDrawdownSeriesNeverPositive(t *testing.T) {
	values := []float64{1.0, 0.8, 0.85, 1.05, 0.95, 1.2}

	drawdowns := DrawdownSeries(values)

	for i, dd := range drawdowns {
		assert.LessOrEqual(t, dd, 0.0, "index %d", i)
	}
	// Zero exactly at new running maxima
	assert.Equal(t, 0.0, drawdowns[0])
	assert.Equal(t, 0.0, drawdowns[3])
	assert.Equal(t, 0.0, drawdowns[5])
	assert.Negative(t, drawdowns[1])
	assert.Negative(t, drawdowns[2])
	assert.Negative(t, drawdowns[4])
}

func TestMaxDrawdown(t *testing.T) {
	values := []float64{1.0, 1.1, 0.9, 1.2}

	maxDD := MaxDrawdown(values)

	assert.InDelta(t, -0.181818, maxDD, 1e-6)

	// Idempotent and equal to the minimum of the drawdown series
	assert.Equal(t, maxDD, MaxDrawdown(values))
	min := 0.0
	for _, dd := range DrawdownSeries(values) {
		if dd < min {
			min = dd
		}
	}
	assert.Equal(t, min, maxDD)
}

func TestMaxDrawdownEmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdown(nil))
}
