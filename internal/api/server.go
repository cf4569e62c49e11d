package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfoliohealth/internal/analytics"
	"portfoliohealth/internal/reporting"
	"portfoliohealth/internal/utils"

	"github.com/gorilla/mux"
)

// Server represents the API server instance
// It handles HTTP requests and owns the analytics engine and, when a
// database is configured, the stored-portfolio reporting service.
type Server struct {
	router  *mux.Router
	logger  utils.Logger
	config  *utils.Config
	db      *sql.DB
	engine  *analytics.Engine
	tracker *utils.PerformanceTracker
}

// NewServer creates and initializes a new API server instance
//
// Parameters:
//   - logger: Application logger for recording server activities
//   - config: Application configuration including database and analytics settings
//   - db: Database connection; nil runs the server in inline-analysis-only mode
//   - engine: Analytics engine shared with the snapshot job
//
// Returns:
//   - *Server: Initialized server instance
func NewServer(logger utils.Logger, config *utils.Config, db *sql.DB, engine *analytics.Engine) *Server {
	server := &Server{
		router:  mux.NewRouter(),
		logger:  logger,
		config:  config,
		db:      db,
		engine:  engine,
		tracker: utils.NewPerformanceTracker(),
	}

	var reportingHandler *reporting.ReportingHandler
	if db != nil {
		reportingService := reporting.NewReportingService(db, engine, logger)
		reportingHandler = reporting.NewReportingHandler(reportingService)
	}

	server.setupRouter()
	server.setupRoutes(reportingHandler)
	return server
}

// setupRoutes configures APIs for the server.
func (s *Server) setupRoutes(reportingHandler *reporting.ReportingHandler) {
	s.logger.Debug("Setting up routes...")

	apiRouter := s.router.PathPrefix("/api").Subrouter()

	// Inline analysis: holdings + prices in the request body
	apiRouter.HandleFunc("/analyze", s.AnalyzePortfolio).Methods("POST")
	s.logger.Debug("Registered route: POST /api/analyze")

	// Stored portfolios require a database
	if s.db != nil {
		portfolioRouter := apiRouter.PathPrefix("/portfolios").Subrouter()
		portfolioRouter.HandleFunc("", s.ListPortfolios).Methods("GET")
		portfolioRouter.HandleFunc("", s.CreatePortfolio).Methods("POST")
		portfolioRouter.HandleFunc("/{id}", s.GetPortfolio).Methods("GET")
		portfolioRouter.HandleFunc("/{id}", s.DeletePortfolio).Methods("DELETE")
		portfolioRouter.HandleFunc("/{id}/snapshots", s.GetSnapshots).Methods("GET")
		portfolioRouter.HandleFunc("/{id}/health", reportingHandler.GetPortfolioHealth).Methods("GET")

		s.logger.Info("Portfolio routes registered")
	}

	// Debug endpoint for request timings
	apiRouter.HandleFunc("/debug/performance", s.GetPerformanceStats).Methods("GET")

	s.logger.Info("Routes setup completed")
}

// setupRouter configures middleware for the server.
func (s *Server) setupRouter() {
	s.router.HandleFunc("/health", s.healthCheck).Methods("GET")

	// CORS
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Request logging and timing
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			s.logger.Debug("Request started: %s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
			elapsed := time.Since(start)
			s.tracker.TrackOperation(r.Method+" "+r.URL.Path, elapsed)
			s.logger.Debug("Request completed: %s %s (%v)", r.Method, r.URL.Path, elapsed)
		})
	})
}

// Start begins listening for HTTP requests and blocks until shutdown
func (s *Server) Start() error {
	s.logger.Info("Starting API server on port %s", s.config.Server.Port)

	srv := &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening on http://localhost:%s", s.config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error: %v", err)
			errChan <- err
		}
	}()

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
		s.logger.Info("Shutdown signal received")
	}

	// Graceful shutdown
	s.logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server shutdown failed: %v", err)
		return err
	}

	s.logger.Info("Server stopped gracefully")
	return nil
}

// Router exposes the handler for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// respondWithError sends an error response with the specified status code and message
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response with the specified status code and payload
func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			s.respondWithError(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
	}

	s.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": "1.0.0",
	})
}

// GetPerformanceStats returns per-route request timing summaries
func (s *Server) GetPerformanceStats(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, s.tracker.Stats())
}
