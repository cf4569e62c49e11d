package main

import (
	"database/sql"
	"fmt"
	"os"

	"portfoliohealth/internal/analytics"
	"portfoliohealth/internal/api"
	"portfoliohealth/internal/migrations"
	"portfoliohealth/internal/reporting"
	"portfoliohealth/internal/utils"

	_ "github.com/lib/pq"
)

func main() {
	// Initialize logger
	logger := utils.NewAppLogger()

	// Load configuration
	config, err := utils.LoadConfig("configs")
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	// Build the analytics engine from configured assumptions
	engine := analytics.NewEngine(analytics.Config{
		TradingDays:    config.Analytics.TradingDays,
		RiskFreeRate:   config.Analytics.RiskFreeRate,
		VaRZScore:      config.Analytics.VaRZScore,
		MinHistoryDays: config.Analytics.MinHistoryDays,
	})

	// Connect to the price store; without it the server still serves
	// inline analysis requests
	var db *sql.DB
	db, err = sql.Open("postgres", config.Database.DSN)
	if err == nil {
		err = db.Ping()
	}
	if err != nil {
		logger.Warn("Database unavailable, running in inline-analysis mode: %v", err)
		if db != nil {
			db.Close()
		}
		db = nil
	} else {
		logger.Info("Connected to database successfully")

		if err := migrations.RunMigrations(db, logger); err != nil {
			logger.Error("Failed to run migrations: %v", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	// Schedule daily health snapshots for stored portfolios
	if db != nil && config.Snapshots.Enabled {
		service := reporting.NewReportingService(db, engine, logger)
		scheduler := reporting.NewSnapshotScheduler(service, logger)
		if err := scheduler.Start(config.Snapshots.Schedule); err != nil {
			logger.Error("Failed to start snapshot scheduler: %v", err)
			os.Exit(1)
		}
		defer scheduler.Stop()
	}

	// Create and start the server
	server := api.NewServer(logger, config, db, engine)
	if err := server.Start(); err != nil {
		logger.Error("Error starting server: %v", err)
		os.Exit(1)
	}
}
