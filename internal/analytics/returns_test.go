package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogReturns(t *testing.T) {
	returns := LogReturns([]float64{100, 102, 101, 105})

	assert.Len(t, returns, 3)
	assert.InDelta(t, 0.019803, returns[0], 1e-6)
	assert.InDelta(t, -0.009852, returns[1], 1e-6)
	assert.InDelta(t, 0.038840, returns[2], 1e-6)
}

func TestLogReturnsTooFewPrices(t *testing.T) {
	assert.Empty(t, LogReturns(nil))
	assert.Empty(t, LogReturns([]float64{100}))
}

func TestLogReturnsSkipsNonPositivePrices(t *testing.T) {
	// The zero price invalidates both adjacent steps
	returns := LogReturns([]float64{100, 0, 105, 110})

	assert.Len(t, returns, 1)
	assert.InDelta(t, 0.046520, returns[0], 1e-6)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)

	returns := LogReturns([]float64{100, 102, 101, 105})
	assert.InDelta(t, 0.016264, Mean(returns), 1e-6)
}

func TestSampleStdDev(t *testing.T) {
	assert.Equal(t, 0.0, SampleStdDev(nil))
	assert.Equal(t, 0.0, SampleStdDev([]float64{0.5}))

	// Sample stddev of {2,4,4,4,5,5,7,9} with Bessel's correction
	assert.InDelta(t, 2.13809, SampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-5)
}

func TestAnnualization(t *testing.T) {
	e := NewEngine(DefaultConfig())

	returns := LogReturns([]float64{100, 102, 101, 105})
	annual := e.AnnualizeReturn(Mean(returns))
	assert.InDelta(t, Mean(returns)*252, annual, 1e-12)
	assert.InDelta(t, 4.098374, annual, 1e-6)

	assert.InDelta(t, 0.01*15.874508, e.AnnualizeVolatility(0.01), 1e-6)
}

func TestAnnualizationAlternateAssumptions(t *testing.T) {
	e := NewEngine(Config{TradingDays: 100})

	assert.InDelta(t, 1.0, e.AnnualizeReturn(0.01), 1e-12)
	assert.InDelta(t, 0.1, e.AnnualizeVolatility(0.01), 1e-12)
}
