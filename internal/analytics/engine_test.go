package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPrices builds a deterministic weekday price series of n points where
// the price at step i is base*(1+drift)^i plus a small alternating wobble.
func testPrices(base, drift float64, n int) []PricePoint {
	points := make([]PricePoint, 0, n)
	d := day("2024-01-02")
	price := base
	for i := 0; i < n; i++ {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		wobble := 1.0
		if i%2 == 1 {
			wobble = 1.004
		}
		points = append(points, PricePoint{Date: d, Close: price * wobble})
		price *= 1 + drift
		d = d.AddDate(0, 0, 1)
	}
	return points
}

func testRequest() Request {
	return Request{
		Holdings: []Holding{
			{Ticker: "AAA", Weight: 0.5, Name: "Alpha Corp", Sector: "Technology"},
			{Ticker: "BBB", Weight: 0.3, Name: "Beta Inc", Sector: "Finance"},
			{Ticker: "CCC", Weight: 0.2, Name: "Gamma Ltd", Sector: "Technology"},
		},
		Prices: map[string][]PricePoint{
			"AAA": testPrices(100, 0.001, 30),
			"BBB": testPrices(50, -0.0005, 30),
			"CCC": testPrices(200, 0.0002, 30),
		},
		PortfolioValue: 10000,
	}
}

func TestAnalyze(t *testing.T) {
	e := NewEngine(DefaultConfig())

	report, err := e.Analyze(testRequest())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Metrics.HoldingCount)
	assert.Equal(t, 30, report.DaysAnalyzed)
	assert.Greater(t, report.Metrics.Volatility, 0.0)
	require.NotNil(t, report.Metrics.SharpeRatio)
	require.NotNil(t, report.Metrics.ValueAtRisk)
	assert.Greater(t, *report.Metrics.ValueAtRisk, 0.0)
	assert.GreaterOrEqual(t, report.Metrics.HealthScore, 0)
	assert.LessOrEqual(t, report.Metrics.HealthScore, 100)
	assert.InDelta(t, 0.38, report.Metrics.HHI, 1e-9)
	assert.InDelta(t, 0.5, report.Metrics.TopHoldingWeight, 1e-12)

	// One series point per return date: one fewer than the price dates
	require.Len(t, report.Series, 29)
	assert.Equal(t, day("2024-01-03"), report.Series[0].Date)
	for _, p := range report.Series {
		assert.LessOrEqual(t, p.Drawdown, 0.0)
		assert.Greater(t, p.Value, 0.0)
	}

	require.Len(t, report.Holdings, 3)
	assert.Equal(t, "AAA", report.Holdings[0].Ticker)
	assert.Equal(t, "Alpha Corp", report.Holdings[0].Name)
	assert.Greater(t, report.Holdings[0].AnnualVolatility, 0.0)
}

func TestAnalyzeSectorWeights(t *testing.T) {
	e := NewEngine(DefaultConfig())

	report, err := e.Analyze(testRequest())

	require.NoError(t, err)
	require.Len(t, report.SectorWeights, 2)
	assert.Equal(t, "Technology", report.SectorWeights[0].Sector)
	assert.InDelta(t, 0.7, report.SectorWeights[0].Weight, 1e-12)
	assert.Equal(t, "Finance", report.SectorWeights[1].Sector)
	assert.InDelta(t, 0.3, report.SectorWeights[1].Weight, 1e-12)
}

func TestAnalyzeNoHoldings(t *testing.T) {
	e := NewEngine(DefaultConfig())

	_, err := e.Analyze(Request{})

	assert.ErrorIs(t, err, ErrNoHoldings)
}

func TestAnalyzeWeightSumOff(t *testing.T) {
	e := NewEngine(DefaultConfig())
	req := testRequest()
	req.Holdings[0].Weight = 0.8 // sums to 1.3

	_, err := e.Analyze(req)

	assert.ErrorIs(t, err, ErrWeightSum)
}

func TestAnalyzeNegativeWeight(t *testing.T) {
	e := NewEngine(DefaultConfig())
	req := testRequest()
	req.Holdings[0].Weight = -0.5
	req.Holdings[1].Weight = 1.3

	_, err := e.Analyze(req)

	assert.ErrorIs(t, err, ErrWeightSum)
}

func TestAnalyzeInsufficientHistory(t *testing.T) {
	e := NewEngine(DefaultConfig())
	req := testRequest()
	req.Prices["AAA"] = testPrices(100, 0.001, 10)

	_, err := e.Analyze(req)

	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestAnalyzeNoUsableHistory(t *testing.T) {
	e := NewEngine(DefaultConfig())
	req := testRequest()
	req.Prices = nil

	_, err := e.Analyze(req)

	assert.ErrorIs(t, err, ErrNoUsableHistory)
}

func TestAnalyzeHoldingWithoutPricesStillCounts(t *testing.T) {
	e := NewEngine(DefaultConfig())
	req := testRequest()
	delete(req.Prices, "CCC")

	report, err := e.Analyze(req)

	require.NoError(t, err)
	// CCC stays in the holding count and concentration metrics
	assert.Equal(t, 3, report.Metrics.HoldingCount)
	assert.InDelta(t, 0.38, report.Metrics.HHI, 1e-9)
	require.Len(t, report.Holdings, 3)
	// ...but contributes no per-asset stats
	assert.Equal(t, 0.0, report.Holdings[2].AnnualVolatility)
}

func TestAnalyzeZeroVolatilityPortfolio(t *testing.T) {
	e := NewEngine(DefaultConfig())

	flat := make([]PricePoint, 0, 25)
	d := day("2024-01-02")
	for i := 0; i < 25; i++ {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		flat = append(flat, PricePoint{Date: d, Close: 100})
		d = d.AddDate(0, 0, 1)
	}

	report, err := e.Analyze(Request{
		Holdings:       []Holding{{Ticker: "AAA", Weight: 1.0}},
		Prices:         map[string][]PricePoint{"AAA": flat},
		PortfolioValue: 10000,
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Metrics.Volatility)
	assert.Nil(t, report.Metrics.SharpeRatio)
	assert.Nil(t, report.Metrics.ValueAtRisk)
	assert.Equal(t, 0.0, report.Metrics.DiversificationScore)
	assert.Equal(t, 50.0, report.Components.Sharpe)
}

func TestAnalyzeDeterministic(t *testing.T) {
	e := NewEngine(DefaultConfig())

	first, err := e.Analyze(testRequest())
	require.NoError(t, err)
	second, err := e.Analyze(testRequest())
	require.NoError(t, err)

	assert.Equal(t, first.Metrics.HealthScore, second.Metrics.HealthScore)
	assert.True(t, math.Abs(first.Metrics.Volatility-second.Metrics.Volatility) < 1e-15)
	assert.Equal(t, first.Metrics.HHI, second.Metrics.HHI)
}
