package analytics

import "math"

// SimulateValues turns a series of daily log returns into a cumulative value
// path starting at initial. Each log return r is bridged to a simple return
// exp(r)-1 and applied multiplicatively, so the path has one more point than
// the return series.
func SimulateValues(dailyReturns []float64, initial float64) []float64 {
	values := make([]float64, 0, len(dailyReturns)+1)
	values = append(values, initial)

	current := initial
	for _, r := range dailyReturns {
		simple := math.Exp(r) - 1
		current = current * (1 + simple)
		values = append(values, current)
	}
	return values
}

// DrawdownSeries returns, for each value, the decline from the running peak:
// value/peak - 1. Entries are always <= 0, with 0 exactly at each new high.
func DrawdownSeries(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	drawdowns := make([]float64, len(values))
	peak := values[0]
	for i, v := range values {
		if v > peak {
			peak = v
		}
		drawdowns[i] = v/peak - 1
	}
	return drawdowns
}

// MaxDrawdown is the deepest point of the drawdown series, 0 for empty input
func MaxDrawdown(values []float64) float64 {
	var worst float64
	for _, dd := range DrawdownSeries(values) {
		if dd < worst {
			worst = dd
		}
	}
	return worst
}
