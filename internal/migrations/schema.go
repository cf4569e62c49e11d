package migrations

import (
	"database/sql"
	"fmt"
)

// CreateInitialSchema sets up tickers, price history and stored portfolios
func CreateInitialSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS tickers (
			ticker TEXT PRIMARY KEY,
			name TEXT,
			sector TEXT,
			industry TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create tickers table: %v", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS daily_stock_prices (
			ticker TEXT NOT NULL REFERENCES tickers(ticker),
			date DATE NOT NULL,
			close_price DOUBLE PRECISION NOT NULL CHECK (close_price > 0),
			PRIMARY KEY (ticker, date)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create daily_stock_prices table: %v", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS portfolios (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			value DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create portfolios table: %v", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS portfolio_holdings (
			portfolio_id INTEGER NOT NULL REFERENCES portfolios(id),
			ticker TEXT NOT NULL,
			weight DOUBLE PRECISION NOT NULL CHECK (weight >= 0),
			PRIMARY KEY (portfolio_id, ticker)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create portfolio_holdings table: %v", err)
	}

	return tx.Commit()
}

// AddAnalysisSnapshots adds the health score history table
func AddAnalysisSnapshots(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_snapshots (
			id SERIAL PRIMARY KEY,
			portfolio_id INTEGER NOT NULL REFERENCES portfolios(id),
			health_score INTEGER NOT NULL,
			expected_return DOUBLE PRECISION NOT NULL,
			volatility DOUBLE PRECISION NOT NULL,
			sharpe_ratio DOUBLE PRECISION,
			max_drawdown DOUBLE PRECISION NOT NULL,
			value_at_risk DOUBLE PRECISION,
			diversification_score DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create analysis_snapshots table: %v", err)
	}

	_, err = tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_snapshots_portfolio_created
		ON analysis_snapshots (portfolio_id, created_at DESC)
	`)
	if err != nil {
		return fmt.Errorf("failed to create snapshot index: %v", err)
	}

	return tx.Commit()
}
