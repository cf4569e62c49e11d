package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"portfoliohealth/internal/analytics"
)

// AnalyzePortfolio runs the full analysis pipeline on holdings and price
// series supplied inline in the request body.
func (s *Server) AnalyzePortfolio(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.engine.Analyze(req.ToAnalytics())
	if err != nil {
		s.logger.Warn("Analysis failed: %v", err)
		s.respondWithError(w, analysisErrorStatus(err), err.Error())
		return
	}

	s.logger.Info("Analysis completed: %d holdings, health score %d",
		report.Metrics.HoldingCount, report.Metrics.HealthScore)
	s.respondWithJSON(w, http.StatusOK, report)
}

// analysisErrorStatus maps engine errors onto HTTP status codes. Input-shape
// problems are 400s; requests that are well-formed but carry too little
// history are 422s.
func analysisErrorStatus(err error) int {
	switch {
	case errors.Is(err, analytics.ErrNoHoldings),
		errors.Is(err, analytics.ErrWeightSum):
		return http.StatusBadRequest
	case errors.Is(err, analytics.ErrNoUsableHistory),
		errors.Is(err, analytics.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
