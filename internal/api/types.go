package api

import (
	"fmt"
	"strings"
	"time"

	"portfoliohealth/internal/analytics"
)

// JSONDate accepts both plain dates ("2006-01-02") and RFC3339 timestamps,
// since market data feeds disagree on the format.
type JSONDate time.Time

func (d *JSONDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")

	tt, err := time.Parse("2006-01-02", s)
	if err == nil {
		*d = JSONDate(tt)
		return nil
	}

	tt, err = time.Parse(time.RFC3339, s)
	if err == nil {
		*d = JSONDate(tt.UTC())
		return nil
	}

	return fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
}

func (d JSONDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format("2006-01-02") + `"`), nil
}

// Time converts to time.Time
func (d JSONDate) Time() time.Time {
	return time.Time(d)
}

// HoldingPayload is one position in an analysis or portfolio request
type HoldingPayload struct {
	Ticker   string  `json:"ticker"`
	Weight   float64 `json:"weight"`
	Name     string  `json:"name,omitempty"`
	Sector   string  `json:"sector,omitempty"`
	Industry string  `json:"industry,omitempty"`
}

// PricePayload is one dated adjusted close price
type PricePayload struct {
	Date  JSONDate `json:"date"`
	Close float64  `json:"close"`
}

// AnalyzeRequest is the inline analysis request: holdings with normalized
// weights plus each ticker's chronological price history.
type AnalyzeRequest struct {
	Holdings       []HoldingPayload          `json:"holdings"`
	Prices         map[string][]PricePayload `json:"prices"`
	PortfolioValue float64                   `json:"portfolio_value"`
}

// Validate checks the request shape. Weight-sum and history-depth checks
// belong to the analytics engine; this only rejects requests the engine
// could not interpret at all.
func (r *AnalyzeRequest) Validate() error {
	if len(r.Holdings) == 0 {
		return fmt.Errorf("at least one holding is required")
	}

	seen := make(map[string]bool, len(r.Holdings))
	for _, h := range r.Holdings {
		if h.Ticker == "" {
			return fmt.Errorf("holding ticker is required")
		}
		if seen[h.Ticker] {
			return fmt.Errorf("duplicate ticker %s: merge duplicate holdings before submitting", h.Ticker)
		}
		seen[h.Ticker] = true
		if h.Weight < 0 {
			return fmt.Errorf("weight for %s cannot be negative", h.Ticker)
		}
	}

	for ticker, points := range r.Prices {
		for _, p := range points {
			if p.Close <= 0 {
				return fmt.Errorf("non-positive price for %s on %s", ticker, p.Date.Time().Format("2006-01-02"))
			}
		}
	}

	return nil
}

// ToAnalytics converts the payload into the engine's input type
func (r *AnalyzeRequest) ToAnalytics() analytics.Request {
	holdings := make([]analytics.Holding, len(r.Holdings))
	for i, h := range r.Holdings {
		holdings[i] = analytics.Holding{
			Ticker:   h.Ticker,
			Weight:   h.Weight,
			Name:     h.Name,
			Sector:   h.Sector,
			Industry: h.Industry,
		}
	}

	prices := make(map[string][]analytics.PricePoint, len(r.Prices))
	for ticker, points := range r.Prices {
		series := make([]analytics.PricePoint, len(points))
		for i, p := range points {
			series[i] = analytics.PricePoint{Date: p.Date.Time(), Close: p.Close}
		}
		prices[ticker] = series
	}

	return analytics.Request{
		Holdings:       holdings,
		Prices:         prices,
		PortfolioValue: r.PortfolioValue,
	}
}

// CreatePortfolioRequest registers a portfolio for stored analysis
type CreatePortfolioRequest struct {
	Name     string           `json:"name"`
	Value    float64          `json:"value"`
	Holdings []HoldingPayload `json:"holdings"`
}

// Validate checks the create request
func (r *CreatePortfolioRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("portfolio name is required")
	}
	if r.Value < 0 {
		return fmt.Errorf("portfolio value cannot be negative")
	}
	if len(r.Holdings) == 0 {
		return fmt.Errorf("at least one holding is required")
	}

	seen := make(map[string]bool, len(r.Holdings))
	var sum float64
	for _, h := range r.Holdings {
		if h.Ticker == "" {
			return fmt.Errorf("holding ticker is required")
		}
		if seen[h.Ticker] {
			return fmt.Errorf("duplicate ticker %s", h.Ticker)
		}
		seen[h.Ticker] = true
		if h.Weight < 0 {
			return fmt.Errorf("weight for %s cannot be negative", h.Ticker)
		}
		sum += h.Weight
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("holding weights must sum to 1.0, got %.4f", sum)
	}

	return nil
}

// PortfolioResponse describes one stored portfolio
type PortfolioResponse struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Value     float64          `json:"value"`
	CreatedAt time.Time        `json:"created_at"`
	Holdings  []HoldingPayload `json:"holdings,omitempty"`
}

// SnapshotResponse is one stored health snapshot
type SnapshotResponse struct {
	ID                   int       `json:"id"`
	PortfolioID          int       `json:"portfolio_id"`
	HealthScore          int       `json:"health_score"`
	ExpectedReturn       float64   `json:"expected_return"`
	Volatility           float64   `json:"volatility"`
	SharpeRatio          *float64  `json:"sharpe_ratio"`
	MaxDrawdown          float64   `json:"max_drawdown"`
	ValueAtRisk          *float64  `json:"value_at_risk_95"`
	DiversificationScore float64   `json:"diversification_score"`
	CreatedAt            time.Time `json:"created_at"`
}
