package utils

import (
	"fmt"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	DSN      string
}

// AnalyticsConfig holds the market assumptions used by the analytics engine.
// These are configuration, not caller input, so alternate assumptions can be
// tested deterministically without touching the numeric code.
type AnalyticsConfig struct {
	TradingDays    int     `mapstructure:"trading_days"`
	RiskFreeRate   float64 `mapstructure:"risk_free_rate"`
	VaRZScore      float64 `mapstructure:"var_z_score"`
	MinHistoryDays int     `mapstructure:"min_history_days"`
}

// SnapshotsConfig holds the schedule for the daily snapshot job
type SnapshotsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// Config holds all configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Snapshots SnapshotsConfig `mapstructure:"snapshots"`
}

// BuildDSN builds the database connection string
func (c *Config) BuildDSN() {
	c.Database.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults cover everything but the DB
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build the DSN string
	config.BuildDSN()

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.dbname", "portfoliohealth")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("analytics.trading_days", 252)
	viper.SetDefault("analytics.risk_free_rate", 0.04)
	viper.SetDefault("analytics.var_z_score", 1.645)
	viper.SetDefault("analytics.min_history_days", 20)

	viper.SetDefault("snapshots.enabled", true)
	viper.SetDefault("snapshots.schedule", "0 18 * * MON-FRI")
}
