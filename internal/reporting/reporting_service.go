package reporting

import (
	"database/sql"
	"fmt"

	"portfoliohealth/internal/analytics"
	"portfoliohealth/internal/utils"
)

// ReportingService generates health reports for stored portfolios. It loads
// holdings, price history and ticker metadata from the database, hands
// everything to the analytics engine, and persists score snapshots. The
// engine itself never touches the database.
type ReportingService struct {
	db     *sql.DB
	engine *analytics.Engine
	logger utils.Logger
}

func NewReportingService(db *sql.DB, engine *analytics.Engine, logger utils.Logger) *ReportingService {
	return &ReportingService{db: db, engine: engine, logger: logger}
}

// GenerateHealthReport loads a stored portfolio and runs the full analysis
// pipeline against the stored price history.
func (s *ReportingService) GenerateHealthReport(portfolioID int) (*analytics.Report, error) {
	var value float64
	var name string
	err := s.db.QueryRow(`
		SELECT name, value
		FROM portfolios
		WHERE id = $1
	`, portfolioID).Scan(&name, &value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	holdings, err := s.loadHoldings(portfolioID)
	if err != nil {
		return nil, err
	}

	prices := make(map[string][]analytics.PricePoint, len(holdings))
	for _, h := range holdings {
		series, err := s.loadPrices(h.Ticker)
		if err != nil {
			return nil, err
		}
		if len(series) > 0 {
			prices[h.Ticker] = series
		}
	}

	s.logger.Debug("Generating health report for portfolio %d (%s): %d holdings, %d priced",
		portfolioID, name, len(holdings), len(prices))

	return s.engine.Analyze(analytics.Request{
		Holdings:       holdings,
		Prices:         prices,
		PortfolioValue: value,
	})
}

// loadHoldings returns the portfolio's weighted holdings joined with ticker
// metadata for report pass-through.
func (s *ReportingService) loadHoldings(portfolioID int) ([]analytics.Holding, error) {
	rows, err := s.db.Query(`
		SELECT h.ticker, h.weight,
		       COALESCE(t.name, ''), COALESCE(t.sector, ''), COALESCE(t.industry, '')
		FROM portfolio_holdings h
		LEFT JOIN tickers t ON h.ticker = t.ticker
		WHERE h.portfolio_id = $1
		ORDER BY h.ticker
	`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}
	defer rows.Close()

	var holdings []analytics.Holding
	for rows.Next() {
		var h analytics.Holding
		if err := rows.Scan(&h.Ticker, &h.Weight, &h.Name, &h.Sector, &h.Industry); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// loadPrices returns a ticker's chronological adjusted close history
func (s *ReportingService) loadPrices(ticker string) ([]analytics.PricePoint, error) {
	rows, err := s.db.Query(`
		SELECT date, close_price
		FROM daily_stock_prices
		WHERE ticker = $1
		ORDER BY date ASC
	`, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", ticker, err)
	}
	defer rows.Close()

	var series []analytics.PricePoint
	for rows.Next() {
		var p analytics.PricePoint
		if err := rows.Scan(&p.Date, &p.Close); err != nil {
			return nil, fmt.Errorf("failed to scan price for %s: %w", ticker, err)
		}
		series = append(series, p)
	}
	return series, rows.Err()
}

// SaveSnapshot persists the headline metrics of a report for score history
func (s *ReportingService) SaveSnapshot(portfolioID int, report *analytics.Report) error {
	_, err := s.db.Exec(`
		INSERT INTO analysis_snapshots
			(portfolio_id, health_score, expected_return, volatility,
			 sharpe_ratio, max_drawdown, value_at_risk, diversification_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		portfolioID,
		report.Metrics.HealthScore,
		report.Metrics.ExpectedReturn,
		report.Metrics.Volatility,
		report.Metrics.SharpeRatio,
		report.Metrics.MaxDrawdown,
		report.Metrics.ValueAtRisk,
		report.Metrics.DiversificationScore,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot for portfolio %d: %w", portfolioID, err)
	}
	return nil
}

// ListPortfolioIDs returns the IDs of all stored portfolios
func (s *ReportingService) ListPortfolioIDs() ([]int, error) {
	rows, err := s.db.Query(`SELECT id FROM portfolios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
