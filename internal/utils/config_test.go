package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// No config file in a temp dir, so everything comes from defaults
	config, err := LoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 252, config.Analytics.TradingDays)
	assert.InDelta(t, 0.04, config.Analytics.RiskFreeRate, 1e-12)
	assert.InDelta(t, 1.645, config.Analytics.VaRZScore, 1e-12)
	assert.Equal(t, 20, config.Analytics.MinHistoryDays)
	assert.True(t, config.Snapshots.Enabled)
}

func TestBuildDSN(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Host:    "db.local",
			Port:    5433,
			User:    "svc",
			DBName:  "health",
			SSLMode: "require",
		},
	}

	config.BuildDSN()

	assert.Equal(t,
		"host=db.local port=5433 user=svc password= dbname=health sslmode=require",
		config.Database.DSN,
	)
}
