package analytics

import (
	"errors"
	"time"
)

// Errors surfaced to callers. Degenerate-but-valid states (zero volatility,
// single-asset portfolios) are not errors; they show up as nil or zero fields
// in the report instead.
var (
	ErrNoHoldings          = errors.New("no holdings supplied")
	ErrWeightSum           = errors.New("holding weights must sum to 1.0")
	ErrNoUsableHistory     = errors.New("no holdings with usable price history")
	ErrInsufficientHistory = errors.New("insufficient common price history")
	ErrLengthMismatch      = errors.New("weights and returns have different lengths")
)

// PricePoint is a single dated adjusted closing price for one ticker
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Holding represents one position entering an analysis: the ticker, its
// portfolio weight, and metadata passed through from the market data provider.
// Weights must already be normalized to sum to 1.0; the engine validates but
// never renormalizes.
type Holding struct {
	Ticker   string
	Weight   float64
	Name     string
	Sector   string
	Industry string
}

// AlignedDataset is the common trading-day calendar across all tickers plus
// each ticker's prices restricted to exactly those dates. Every price slice
// has the same length as Dates.
type AlignedDataset struct {
	Dates  []time.Time
	Prices map[string][]float64
}

// HoldingMetrics carries per-asset analytics for the report
type HoldingMetrics struct {
	Ticker           string  `json:"ticker"`
	Weight           float64 `json:"weight"`
	Name             string  `json:"name,omitempty"`
	Sector           string  `json:"sector,omitempty"`
	Industry         string  `json:"industry,omitempty"`
	AnnualReturn     float64 `json:"annual_return"`
	AnnualVolatility float64 `json:"annual_volatility"`
}

// PortfolioMetrics is the portfolio-level summary. SharpeRatio and
// ValueAtRisk are nil when not applicable (zero volatility, no portfolio
// value) rather than zero, so callers cannot mistake "undefined" for "0".
type PortfolioMetrics struct {
	ExpectedReturn       float64  `json:"expected_return"`
	Volatility           float64  `json:"volatility"`
	SharpeRatio          *float64 `json:"sharpe_ratio"`
	MaxDrawdown          float64  `json:"max_drawdown"`
	HHI                  float64  `json:"hhi"`
	DiversificationScore float64  `json:"diversification_score"`
	TopHoldingWeight     float64  `json:"top_holding_weight"`
	HealthScore          int      `json:"health_score"`
	ValueAtRisk          *float64 `json:"value_at_risk_95"`
	HoldingCount         int      `json:"holding_count"`
}

// SeriesPoint is one entry of the portfolio value/drawdown time series. The
// series is aligned to return dates, so it has one fewer point than the
// aligned price history.
type SeriesPoint struct {
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
	Drawdown float64   `json:"drawdown"`
}

// SectorWeight aggregates holding weights by sector
type SectorWeight struct {
	Sector string  `json:"sector"`
	Weight float64 `json:"weight"`
}

// Request is the full input of one analysis run. Prices maps ticker to its
// chronological price history. PortfolioValue (currency units) is only used
// to express VaR in currency; zero means VaR is omitted.
type Request struct {
	Holdings       []Holding
	Prices         map[string][]PricePoint
	PortfolioValue float64
}

// Report is the complete analysis output
type Report struct {
	Metrics       PortfolioMetrics  `json:"metrics"`
	Components    HealthComponents  `json:"health_components"`
	Holdings      []HoldingMetrics  `json:"holdings"`
	SectorWeights []SectorWeight    `json:"sector_weights"`
	Series        []SeriesPoint     `json:"series"`
	GeneratedAt   time.Time         `json:"generated_at"`
	DaysAnalyzed  int               `json:"days_analyzed"`
}
