package analytics

import "math"

// PortfolioReturn is the weighted sum of per-asset annual returns. The two
// vectors must share the same ordering and length.
func PortfolioReturn(weights, annualReturns []float64) (float64, error) {
	if len(weights) != len(annualReturns) {
		return 0, ErrLengthMismatch
	}

	var total float64
	for i, w := range weights {
		total += w * annualReturns[i]
	}
	return total, nil
}

// PortfolioVolatility computes sqrt(wᵀ·Σ·w) over the full covariance matrix.
// The quadratic form is summed over every (i,j) pair. Tiny negative variance
// from floating-point cancellation is clamped to 0 before the square root.
func PortfolioVolatility(weights []float64, cov *CovarianceMatrix) (float64, error) {
	n := cov.Dim()
	if len(weights) != n {
		return 0, ErrLengthMismatch
	}

	var variance float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			variance += weights[i] * weights[j] * cov.At(i, j)
		}
	}
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance), nil
}

// SharpeRatio is the excess return over the configured risk-free rate divided
// by volatility. A zero-volatility portfolio has no meaningful risk-adjusted
// ratio, so nil is returned rather than an error or a sentinel value.
func (e *Engine) SharpeRatio(portfolioReturn, portfolioVol float64) *float64 {
	if portfolioVol == 0 {
		return nil
	}
	sharpe := (portfolioReturn - e.cfg.RiskFreeRate) / portfolioVol
	return &sharpe
}

// PortfolioDailyReturns combines per-asset daily return series into the
// portfolio's own series: at each time index, the weight-scaled sum across
// tickers. The output length is the minimum series length across the given
// tickers, 0 if any ticker has no series at all. A ticker missing an index
// contributes 0 at that step.
func PortfolioDailyReturns(returns map[string][]float64, weights map[string]float64, tickers []string) []float64 {
	if len(tickers) == 0 {
		return nil
	}

	minLen := -1
	for _, t := range tickers {
		l := len(returns[t])
		if minLen < 0 || l < minLen {
			minLen = l
		}
	}
	if minLen <= 0 {
		return nil
	}

	combined := make([]float64, minLen)
	for _, t := range tickers {
		series := returns[t]
		w := weights[t]
		for i := 0; i < minLen && i < len(series); i++ {
			combined[i] += w * series[i]
		}
	}
	return combined
}
