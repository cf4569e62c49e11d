package analytics

import "sort"

// HHI is the Herfindahl-Hirschman index: the sum of squared weights. For n
// assets with weights summing to 1 it ranges from 1/n (equal weights) to 1
// (single asset).
func HHI(weights []float64) float64 {
	var sum float64
	for _, w := range weights {
		sum += w * w
	}
	return sum
}

// DiversificationScore normalizes HHI onto a 0-100 scale where an
// equal-weighted portfolio scores 100 and a single-asset portfolio scores 0,
// independent of the number of assets. Portfolios of one or zero assets
// score 0.
func DiversificationScore(weights []float64) float64 {
	n := len(weights)
	if n <= 1 {
		return 0
	}

	score := (1 - HHI(weights)) / (1 - 1/float64(n)) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TopNWeight sums the n largest weights; n <= 0 means the single largest
// position.
func TopNWeight(weights []float64, n int) float64 {
	if n <= 0 {
		n = 1
	}
	if n > len(weights) {
		n = len(weights)
	}

	sorted := make([]float64, len(weights))
	copy(sorted, weights)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var sum float64
	for i := 0; i < n; i++ {
		sum += sorted[i]
	}
	return sum
}
