package reporting

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"portfoliohealth/internal/analytics"

	"github.com/gorilla/mux"
)

// ReportingHandler handles HTTP requests for stored-portfolio health reports
type ReportingHandler struct {
	service *ReportingService
}

func NewReportingHandler(service *ReportingService) *ReportingHandler {
	return &ReportingHandler{service: service}
}

// GetPortfolioHealth generates a fresh health report for a stored portfolio
func (h *ReportingHandler) GetPortfolioHealth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	portfolioID, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid portfolio ID", http.StatusBadRequest)
		return
	}

	report, err := h.service.GenerateHealthReport(portfolioID)
	if err != nil {
		http.Error(w, err.Error(), reportErrorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func reportErrorStatus(err error) int {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
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
