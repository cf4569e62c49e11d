package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// LogReturns converts a price series to daily log returns ln(p[i]/p[i-1]).
// Steps where either adjacent price is non-positive are skipped, so the
// output can be shorter than len(prices)-1 when bad prices slip through.
// Fewer than two prices yields an empty result.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] <= 0 || prices[i] <= 0 {
			continue
		}
		returns = append(returns, math.Log(prices[i]/prices[i-1]))
	}
	return returns
}

// Mean returns the arithmetic mean, 0 for empty input
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// SampleStdDev returns the sample standard deviation with Bessel's
// correction, 0 for fewer than two observations.
func SampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// AnnualizeReturn scales a mean daily return to a yearly figure
func (e *Engine) AnnualizeReturn(dailyMean float64) float64 {
	return dailyMean * float64(e.cfg.TradingDays)
}

// AnnualizeVolatility scales a daily standard deviation to a yearly figure
func (e *Engine) AnnualizeVolatility(dailyStd float64) float64 {
	return dailyStd * math.Sqrt(float64(e.cfg.TradingDays))
}
