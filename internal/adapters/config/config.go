package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	Server      ServerConfig      `envconfig:"SERVER"`
	Forecast    ForecastConfig    `envconfig:"FORECAST"`
	Correlation CorrelationConfig `envconfig:"CORRELATION"`
	Cache       CacheConfig       `envconfig:"CACHE"`
	Logging     LoggingConfig     `envconfig:"LOGGING"`
}

// ServerConfig represents HTTP server parameters
type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

// ForecastConfig represents model hyperparameters and horizon limits
type ForecastConfig struct {
	ChangepointPriorScale float64 `envconfig:"FORECAST_CHANGEPOINT_PRIOR_SCALE" default:"0.05"`
	SeasonalityPriorScale float64 `envconfig:"FORECAST_SEASONALITY_PRIOR_SCALE" default:"10.0"`
	SeasonalityMode       string  `envconfig:"FORECAST_SEASONALITY_MODE" default:"multiplicative"`
	WeeklySeasonality     bool    `envconfig:"FORECAST_WEEKLY_SEASONALITY" default:"true"`
	YearlySeasonality     bool    `envconfig:"FORECAST_YEARLY_SEASONALITY" default:"true"`
	Changepoints          int     `envconfig:"FORECAST_CHANGEPOINTS" default:"25"`
	DefaultHorizonDays    int     `envconfig:"FORECAST_DEFAULT_HORIZON_DAYS" default:"30"`
	MaxHorizonDays        int     `envconfig:"FORECAST_MAX_HORIZON_DAYS" default:"365"`
	MinLookbackDays       int     `envconfig:"FORECAST_MIN_LOOKBACK_DAYS" default:"60"`
}

// CorrelationConfig represents significance thresholds for news analysis
type CorrelationConfig struct {
	SentimentThreshold float64 `envconfig:"CORRELATION_SENTIMENT_THRESHOLD" default:"0.2"`
	ReturnThreshold    float64 `envconfig:"CORRELATION_RETURN_THRESHOLD" default:"0.01"`
	MinRows            int     `envconfig:"CORRELATION_MIN_ROWS" default:"5"`
}

// CacheConfig represents result cache TTLs
type CacheConfig struct {
	ForecastTTL     time.Duration `envconfig:"CACHE_FORECAST_TTL" default:"4h"`
	ImpactTTL       time.Duration `envconfig:"CACHE_IMPACT_TTL" default:"6h"`
	ScenarioTTL     time.Duration `envconfig:"CACHE_SCENARIO_TTL" default:"6h"`
	CleanupInterval time.Duration `envconfig:"CACHE_CLEANUP_INTERVAL" default:"30m"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:""`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Forecast.SeasonalityMode != "multiplicative" && c.Forecast.SeasonalityMode != "additive" {
		return fmt.Errorf("invalid seasonality mode: %s", c.Forecast.SeasonalityMode)
	}
	if c.Forecast.DefaultHorizonDays <= 0 || c.Forecast.DefaultHorizonDays > c.Forecast.MaxHorizonDays {
		return fmt.Errorf("invalid default horizon: %d", c.Forecast.DefaultHorizonDays)
	}
	if c.Forecast.Changepoints < 0 {
		return fmt.Errorf("invalid changepoint count: %d", c.Forecast.Changepoints)
	}
	if c.Correlation.SentimentThreshold < 0 || c.Correlation.SentimentThreshold > 1 {
		return fmt.Errorf("invalid sentiment threshold: %f", c.Correlation.SentimentThreshold)
	}
	return nil
}
