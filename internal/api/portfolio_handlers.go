package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// CreatePortfolio stores a portfolio with its weighted holdings so it can be
// analyzed against stored price history and picked up by the snapshot job.
func (s *Server) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req CreatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := req.Validate(); err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRow(`
		INSERT INTO portfolios (name, value)
		VALUES ($1, $2)
		RETURNING id
	`, req.Name, req.Value).Scan(&id)
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to create portfolio")
		return
	}

	for _, h := range req.Holdings {
		_, err = tx.Exec(`
			INSERT INTO portfolio_holdings (portfolio_id, ticker, weight)
			VALUES ($1, $2, $3)
		`, id, h.Ticker, h.Weight)
		if err != nil {
			s.respondWithError(w, http.StatusInternalServerError, "Failed to store holding")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to commit transaction")
		return
	}

	s.logger.Info("Created portfolio %d (%s) with %d holdings", id, req.Name, len(req.Holdings))
	s.respondWithJSON(w, http.StatusCreated, map[string]int{"id": id})
}

// ListPortfolios returns all stored portfolios without their holdings
func (s *Server) ListPortfolios(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(`
		SELECT id, name, value, created_at
		FROM portfolios
		ORDER BY id
	`)
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to list portfolios")
		return
	}
	defer rows.Close()

	portfolios := make([]PortfolioResponse, 0)
	for rows.Next() {
		var p PortfolioResponse
		if err := rows.Scan(&p.ID, &p.Name, &p.Value, &p.CreatedAt); err != nil {
			s.respondWithError(w, http.StatusInternalServerError, "Failed to scan portfolio")
			return
		}
		portfolios = append(portfolios, p)
	}

	s.respondWithJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio returns one stored portfolio with its holdings
func (s *Server) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	id, err := portfolioID(r)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid portfolio ID")
		return
	}

	var p PortfolioResponse
	err = s.db.QueryRow(`
		SELECT id, name, value, created_at
		FROM portfolios
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Value, &p.CreatedAt)
	if err == sql.ErrNoRows {
		s.respondWithError(w, http.StatusNotFound, "Portfolio not found")
		return
	}
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to get portfolio")
		return
	}

	rows, err := s.db.Query(`
		SELECT h.ticker, h.weight,
		       COALESCE(t.name, ''), COALESCE(t.sector, ''), COALESCE(t.industry, '')
		FROM portfolio_holdings h
		LEFT JOIN tickers t ON h.ticker = t.ticker
		WHERE h.portfolio_id = $1
		ORDER BY h.weight DESC, h.ticker
	`, id)
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to get holdings")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var h HoldingPayload
		if err := rows.Scan(&h.Ticker, &h.Weight, &h.Name, &h.Sector, &h.Industry); err != nil {
			s.respondWithError(w, http.StatusInternalServerError, "Failed to scan holding")
			return
		}
		p.Holdings = append(p.Holdings, h)
	}

	s.respondWithJSON(w, http.StatusOK, p)
}

// DeletePortfolio removes a portfolio, its holdings and its snapshots
func (s *Server) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	id, err := portfolioID(r)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid portfolio ID")
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to start transaction")
		return
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM analysis_snapshots WHERE portfolio_id = $1`,
		`DELETE FROM portfolio_holdings WHERE portfolio_id = $1`,
	} {
		if _, err := tx.Exec(query, id); err != nil {
			s.respondWithError(w, http.StatusInternalServerError, "Failed to delete portfolio")
			return
		}
	}

	result, err := tx.Exec(`DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to delete portfolio")
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		s.respondWithError(w, http.StatusNotFound, "Portfolio not found")
		return
	}

	if err := tx.Commit(); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to commit transaction")
		return
	}

	s.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Portfolio deleted"})
}

// GetSnapshots returns the stored health score history of a portfolio,
// newest first.
func (s *Server) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	id, err := portfolioID(r)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid portfolio ID")
		return
	}

	limit := 30
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			limit = n
		}
	}

	rows, err := s.db.Query(`
		SELECT id, portfolio_id, health_score, expected_return, volatility,
		       sharpe_ratio, max_drawdown, value_at_risk, diversification_score, created_at
		FROM analysis_snapshots
		WHERE portfolio_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, id, limit)
	if err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "Failed to get snapshots")
		return
	}
	defer rows.Close()

	snapshots := make([]SnapshotResponse, 0)
	for rows.Next() {
		var snap SnapshotResponse
		if err := rows.Scan(
			&snap.ID,
			&snap.PortfolioID,
			&snap.HealthScore,
			&snap.ExpectedReturn,
			&snap.Volatility,
			&snap.SharpeRatio,
			&snap.MaxDrawdown,
			&snap.ValueAtRisk,
			&snap.DiversificationScore,
			&snap.CreatedAt,
		); err != nil {
			s.respondWithError(w, http.StatusInternalServerError, "Failed to scan snapshot")
			return
		}
		snapshots = append(snapshots, snap)
	}

	s.respondWithJSON(w, http.StatusOK, snapshots)
}

// Helper to parse the portfolio ID path variable
func portfolioID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}
