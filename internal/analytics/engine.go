package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// weightTolerance is the slack allowed on the weight-sum invariant. Weights
// are normalized upstream; the engine only verifies, it never renormalizes.
const weightTolerance = 1e-3

// Analyze runs the full pipeline on one request: alignment, per-asset
// return/volatility, covariance, portfolio aggregation, value path and
// drawdowns, concentration, VaR and the composite health score.
//
// Holdings without any price history are excluded from the numeric pipeline
// but still count toward concentration metrics, which are a pure function of
// weights. If no holding has usable history, or fewer common trading days
// remain than the configured minimum, the request fails outright rather than
// producing degraded metrics.
func (e *Engine) Analyze(req Request) (*Report, error) {
	if len(req.Holdings) == 0 {
		return nil, ErrNoHoldings
	}

	var weightSum float64
	for _, h := range req.Holdings {
		if h.Weight < 0 {
			return nil, fmt.Errorf("%w: negative weight for %s", ErrWeightSum, h.Ticker)
		}
		weightSum += h.Weight
	}
	if math.Abs(weightSum-1) > weightTolerance {
		return nil, fmt.Errorf("%w: got %.4f", ErrWeightSum, weightSum)
	}

	// Split holdings into those with price history and those without
	usable := make([]Holding, 0, len(req.Holdings))
	priced := make(map[string][]PricePoint, len(req.Holdings))
	for _, h := range req.Holdings {
		if points := req.Prices[h.Ticker]; len(points) >= 2 {
			usable = append(usable, h)
			priced[h.Ticker] = points
		}
	}
	if len(usable) == 0 {
		return nil, ErrNoUsableHistory
	}

	aligned := AlignSeries(priced)
	if len(aligned.Dates) < e.cfg.MinHistoryDays {
		return nil, fmt.Errorf("%w: %d common trading days, need at least %d",
			ErrInsufficientHistory, len(aligned.Dates), e.cfg.MinHistoryDays)
	}

	// Per-asset daily returns and annualized stats, in input order
	tickers := make([]string, len(usable))
	weightsVec := make([]float64, len(usable))
	annualReturns := make([]float64, len(usable))
	weightsByTicker := make(map[string]float64, len(usable))
	returns := make(map[string][]float64, len(usable))
	statsByTicker := make(map[string]HoldingMetrics, len(usable))

	for i, h := range usable {
		series := LogReturns(aligned.Prices[h.Ticker])
		returns[h.Ticker] = series
		tickers[i] = h.Ticker
		weightsVec[i] = h.Weight
		weightsByTicker[h.Ticker] = h.Weight
		annualReturns[i] = e.AnnualizeReturn(Mean(series))
		statsByTicker[h.Ticker] = HoldingMetrics{
			AnnualReturn:     annualReturns[i],
			AnnualVolatility: e.AnnualizeVolatility(SampleStdDev(series)),
		}
	}

	cov := e.BuildCovarianceMatrix(returns, tickers)

	expectedReturn, err := PortfolioReturn(weightsVec, annualReturns)
	if err != nil {
		return nil, err
	}
	volatility, err := PortfolioVolatility(weightsVec, cov)
	if err != nil {
		return nil, err
	}
	sharpe := e.SharpeRatio(expectedReturn, volatility)

	dailyReturns := PortfolioDailyReturns(returns, weightsByTicker, tickers)
	values := SimulateValues(dailyReturns, e.cfg.InitialValue)
	drawdowns := DrawdownSeries(values)
	maxDD := MaxDrawdown(values)

	// Concentration is a pure function of all weights, priced or not
	allWeights := make([]float64, len(req.Holdings))
	for i, h := range req.Holdings {
		allWeights[i] = h.Weight
	}
	hhi := HHI(allWeights)
	diversification := DiversificationScore(allWeights)
	topWeight := TopNWeight(allWeights, 1)

	valueAtRisk := e.ValueAtRisk(volatility, req.PortfolioValue, 1)
	components := HealthScoreComponents(diversification, volatility, maxDD, sharpe)

	report := &Report{
		Metrics: PortfolioMetrics{
			ExpectedReturn:       expectedReturn,
			Volatility:           volatility,
			SharpeRatio:          sharpe,
			MaxDrawdown:          maxDD,
			HHI:                  hhi,
			DiversificationScore: diversification,
			TopHoldingWeight:     topWeight,
			HealthScore:          CompositeHealthScore(components),
			ValueAtRisk:          valueAtRisk,
			HoldingCount:         len(req.Holdings),
		},
		Components:    components,
		Holdings:      buildHoldingMetrics(req.Holdings, statsByTicker),
		SectorWeights: buildSectorWeights(req.Holdings),
		Series:        buildSeries(aligned.Dates, values, drawdowns),
		GeneratedAt:   time.Now().UTC(),
		DaysAnalyzed:  len(aligned.Dates),
	}
	return report, nil
}

func buildHoldingMetrics(holdings []Holding, stats map[string]HoldingMetrics) []HoldingMetrics {
	out := make([]HoldingMetrics, 0, len(holdings))
	for _, h := range holdings {
		m := stats[h.Ticker] // zero stats for holdings without history
		m.Ticker = h.Ticker
		m.Weight = h.Weight
		m.Name = h.Name
		m.Sector = h.Sector
		m.Industry = h.Industry
		out = append(out, m)
	}
	return out
}

func buildSectorWeights(holdings []Holding) []SectorWeight {
	bySector := make(map[string]float64)
	for _, h := range holdings {
		sector := h.Sector
		if sector == "" {
			sector = "Unknown"
		}
		bySector[sector] += h.Weight
	}

	out := make([]SectorWeight, 0, len(bySector))
	for sector, weight := range bySector {
		out = append(out, SectorWeight{Sector: sector, Weight: weight})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Sector < out[j].Sector
	})
	return out
}

// buildSeries pairs return dates with the simulated path. The path's leading
// point sits at the first price date and only establishes the baseline, so
// the series starts at the second date and has one fewer point than the
// aligned price history.
func buildSeries(dates []time.Time, values, drawdowns []float64) []SeriesPoint {
	n := len(values) - 1
	if len(dates)-1 < n {
		n = len(dates) - 1
	}
	if n <= 0 {
		return nil
	}

	series := make([]SeriesPoint, n)
	for i := 0; i < n; i++ {
		series[i] = SeriesPoint{
			Date:     dates[i+1],
			Value:    values[i+1],
			Drawdown: drawdowns[i+1],
		}
	}
	return series
}
