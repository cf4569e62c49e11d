package analytics

import (
	"sort"
	"time"
)

const dateKeyLayout = "2006-01-02"

// AlignSeries intersects the price series of all tickers onto a common
// trading-day calendar. Only dates present in every series are kept, sorted
// ascending, and each ticker's prices are restricted to exactly those dates.
// The result depends only on the set intersection of dates, never on prices.
//
// Duplicate dates within one input series are a caller error; the first
// occurrence wins.
func AlignSeries(series map[string][]PricePoint) AlignedDataset {
	empty := AlignedDataset{Prices: make(map[string][]float64)}
	if len(series) == 0 {
		return empty
	}

	// Build a date -> price lookup per ticker
	lookups := make(map[string]map[string]float64, len(series))
	for ticker, points := range series {
		lookup := make(map[string]float64, len(points))
		for _, p := range points {
			key := p.Date.Format(dateKeyLayout)
			if _, exists := lookup[key]; !exists {
				lookup[key] = p.Close
			}
		}
		lookups[ticker] = lookup
	}

	// Walk one ticker's dates and keep those present in every other series.
	// Any ticker works as the base since intersection is order-independent.
	var base string
	for ticker := range series {
		base = ticker
		break
	}

	var common []time.Time
	seen := make(map[string]bool)
	for _, p := range series[base] {
		key := p.Date.Format(dateKeyLayout)
		if seen[key] {
			continue
		}
		seen[key] = true

		inAll := true
		for ticker, lookup := range lookups {
			if ticker == base {
				continue
			}
			if _, ok := lookup[key]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, p.Date)
		}
	}

	if len(common) == 0 {
		return empty
	}

	// Guard against unsorted input
	sort.Slice(common, func(i, j int) bool {
		return common[i].Before(common[j])
	})

	aligned := AlignedDataset{
		Dates:  common,
		Prices: make(map[string][]float64, len(series)),
	}
	for ticker, lookup := range lookups {
		prices := make([]float64, len(common))
		for i, d := range common {
			prices[i] = lookup[d.Format(dateKeyLayout)]
		}
		aligned.Prices[ticker] = prices
	}

	return aligned
}
