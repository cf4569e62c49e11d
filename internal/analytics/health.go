package analytics

import "math"

// Composite score weights
const (
	healthWeightDiversification = 0.30
	healthWeightVolatility      = 0.20
	healthWeightDrawdown        = 0.20
	healthWeightSharpe          = 0.30
)

// HealthComponents holds the four 0-100 sub-scores feeding the composite
// health score.
type HealthComponents struct {
	Diversification float64 `json:"diversification"`
	Volatility      float64 `json:"volatility"`
	Drawdown        float64 `json:"drawdown"`
	Sharpe          float64 `json:"sharpe"`
}

// HealthScoreComponents maps the raw risk figures onto sub-scores:
//   - diversification passes through unchanged
//   - volatility: 100 at or below 10% annual vol, 0 at or above 50%,
//     linear in between
//   - drawdown: 100 at no drawdown, 0 at or beyond -50%, linear in between
//   - Sharpe: 50 when undefined, capped at 100 from 2.0 upward, a reduced
//     band below zero
func HealthScoreComponents(diversificationScore, annualVol, maxDrawdown float64, sharpe *float64) HealthComponents {
	return HealthComponents{
		Diversification: clampScore(diversificationScore),
		Volatility:      volatilityScore(annualVol),
		Drawdown:        drawdownScore(maxDrawdown),
		Sharpe:          sharpeScore(sharpe),
	}
}

// CompositeHealthScore combines the sub-scores into one 0-100 integer
func CompositeHealthScore(c HealthComponents) int {
	score := c.Diversification*healthWeightDiversification +
		c.Volatility*healthWeightVolatility +
		c.Drawdown*healthWeightDrawdown +
		c.Sharpe*healthWeightSharpe
	return int(math.Round(clampScore(score)))
}

func volatilityScore(vol float64) float64 {
	switch {
	case vol <= 0.10:
		return 100
	case vol >= 0.50:
		return 0
	default:
		return clampScore(100 - (vol-0.10)/0.40*100)
	}
}

func drawdownScore(maxDrawdown float64) float64 {
	dd := math.Abs(maxDrawdown)
	switch {
	case dd == 0:
		return 100
	case dd >= 0.50:
		return 0
	default:
		return clampScore(100 - dd/0.50*100)
	}
}

func sharpeScore(sharpe *float64) float64 {
	if sharpe == nil {
		return 50
	}
	s := *sharpe
	switch {
	case s < 0:
		return math.Max(0, 20+s*20)
	case s >= 2:
		return 100
	default:
		return clampScore(40 + s/2*60)
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
