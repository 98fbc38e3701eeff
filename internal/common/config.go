// Package common provides shared utilities for Folio
package common

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/folio/internal/models"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folio
type Config struct {
	Environment string                `toml:"environment"`
	Server      ServerConfig          `toml:"server"`
	Storage     StorageConfig         `toml:"storage"`
	Logging     LoggingConfig         `toml:"logging"`
	Analysis    models.AnalysisConfig `toml:"analysis"`
	Reports     ReportsConfig         `toml:"reports"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string          `toml:"host"`
	Port           int             `toml:"port"`
	RequestTimeout string          `toml:"request_timeout"`
	RateLimit      RateLimitConfig `toml:"rate_limit"`
}

// GetRequestTimeout parses and returns the per-request timeout
func (c *ServerConfig) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// RateLimitConfig bounds inbound requests. Zero RequestsPerSecond disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// StorageConfig holds the report history store location
type StorageConfig struct {
	Path string `toml:"path"` // BadgerHold directory
}

// ReportsConfig controls history, comparison and export
type ReportsConfig struct {
	SaveHistory  bool   `toml:"save_history" json:"save_history"`
	LookbackDays int    `toml:"lookback_days" json:"lookback_days"` // Baseline age for historical comparison
	MaxHistory   int    `toml:"max_history" json:"max_history"`     // Saved reports kept per user, 0 = unlimited
	PDFTitle     string `toml:"pdf_title" json:"pdf_title"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string   `toml:"level"`
	Format   string   `toml:"format"`  // "console" or "json"
	Outputs  []string `toml:"outputs"` // "console", "file"
	FilePath string   `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			RequestTimeout: "30s",
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 20,
				Burst:             40,
			},
		},
		Storage: StorageConfig{
			Path: "data/folio",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "console",
			Outputs:  []string{"console"},
			FilePath: "./logs/folio.log",
		},
		Analysis: models.DefaultAnalysisConfig(),
		Reports: ReportsConfig{
			SaveHistory:  true,
			LookbackDays: 30,
			MaxHistory:   100,
			PDFTitle:     "Portfolio Analysis Report",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("FOLIO_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if path := os.Getenv("FOLIO_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if v := os.Getenv("FOLIO_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Server.RateLimit.RequestsPerSecond = f
		}
	}

	if v := os.Getenv("FOLIO_NEUTRAL_BAND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Analysis.Sentiment.NeutralBand = f
		}
	}

	if v := os.Getenv("FOLIO_LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Reports.LookbackDays = n
		}
	}
}

// Validate rejects threshold combinations the analysis cannot use
func (c *Config) Validate() error {
	a := c.Analysis
	if a.Risk.HHIMedium > a.Risk.HHIHigh {
		return fmt.Errorf("analysis.risk: hhi_medium (%v) exceeds hhi_high (%v)", a.Risk.HHIMedium, a.Risk.HHIHigh)
	}
	if a.Risk.VolatilityMedium > a.Risk.VolatilityHigh {
		return fmt.Errorf("analysis.risk: volatility_medium (%v) exceeds volatility_high (%v)", a.Risk.VolatilityMedium, a.Risk.VolatilityHigh)
	}
	if a.Sentiment.NeutralBand < 0 || a.Sentiment.NeutralBand >= 1 {
		return fmt.Errorf("analysis.sentiment: neutral_band must be in [0,1), got %v", a.Sentiment.NeutralBand)
	}
	if a.Events.MaxEventsPerSymbol <= 0 {
		return fmt.Errorf("analysis.events: max_events_per_symbol must be positive")
	}
	if len(a.Forecast.Scenarios) == 0 {
		return fmt.Errorf("analysis.forecast: at least one scenario is required")
	}
	for _, sc := range a.Forecast.Scenarios {
		if sc.AnnualReturn <= -100 || math.IsNaN(sc.AnnualReturn) || math.IsInf(sc.AnnualReturn, 0) {
			return fmt.Errorf("analysis.forecast: scenario %q annual_return must be a finite number greater than -100, got %v", sc.Name, sc.AnnualReturn)
		}
	}
	if c.Reports.LookbackDays < 0 {
		return fmt.Errorf("reports: lookback_days must not be negative")
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
