package analytics

import "math"

// ValueAtRisk estimates the parametric 95% VaR in currency units over the
// given horizon: annual volatility is scaled down to daily, out to the
// horizon, and multiplied by the configured one-tailed z-score and the
// portfolio value. This assumes normally distributed returns; it is an
// approximation, not a historical or simulated VaR.
//
// nil is returned when volatility or portfolio value is non-positive, since
// no meaningful loss threshold exists in either case.
func (e *Engine) ValueAtRisk(annualVol, portfolioValue float64, horizonDays int) *float64 {
	if annualVol <= 0 || portfolioValue <= 0 {
		return nil
	}
	if horizonDays <= 0 {
		horizonDays = 1
	}

	dailyVol := annualVol / math.Sqrt(float64(e.cfg.TradingDays))
	horizonVol := dailyVol * math.Sqrt(float64(horizonDays))
	v := e.cfg.VaRZScore * horizonVol * portfolioValue
	return &v
}
