// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Horizons and confidence levels offered by the risk calculation form.
var (
	HorizonOptions    = []int{1, 10, 30, 90}
	ConfidenceOptions = []float64{0.90, 0.95, 0.99}
)

// Config holds application configuration
type Config struct {
	APIBaseURL        string // Backend base URL; empty means paths are left relative
	LogLevel          string
	LogFile           string // Used by the terminal UI, which owns stdout
	DevMode           bool
	HistoryLimit      int     // Risk history rows requested by the risk page
	DashboardAlerts   int     // Unread alerts shown on the dashboard
	DefaultHorizon    int     // Days
	DefaultConfidence float64 // Fraction, e.g. 0.95
	Stub              *StubConfig
}

// StubConfig configures the in-memory development backend.
type StubConfig struct {
	Port        int
	Seed        bool
	CORSOrigins []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:        getEnv("RISKDESK_API_URL", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("RISKDESK_LOG_FILE", "riskdesk.log"),
		DevMode:           getEnvAsBool("DEV_MODE", false),
		HistoryLimit:      getEnvAsInt("RISKDESK_HISTORY_LIMIT", 30),
		DashboardAlerts:   getEnvAsInt("RISKDESK_DASHBOARD_ALERTS", 5),
		DefaultHorizon:    getEnvAsInt("RISKDESK_DEFAULT_HORIZON", 1),
		DefaultConfidence: getEnvAsFloat("RISKDESK_DEFAULT_CONFIDENCE", 0.95),
		Stub: &StubConfig{
			Port:        getEnvAsInt("RISKDESK_STUB_PORT", 8080),
			Seed:        getEnvAsBool("RISKDESK_STUB_SEED", true),
			CORSOrigins: getEnvAsList("RISKDESK_STUB_CORS_ORIGINS", []string{"*"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks numeric settings for values the backend would reject.
func (c *Config) Validate() error {
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("RISKDESK_HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	if c.DashboardAlerts <= 0 {
		return fmt.Errorf("RISKDESK_DASHBOARD_ALERTS must be positive, got %d", c.DashboardAlerts)
	}
	if c.DefaultHorizon <= 0 {
		return fmt.Errorf("RISKDESK_DEFAULT_HORIZON must be positive, got %d", c.DefaultHorizon)
	}
	if c.DefaultConfidence <= 0 || c.DefaultConfidence >= 1 {
		return fmt.Errorf("RISKDESK_DEFAULT_CONFIDENCE must be in (0, 1), got %v", c.DefaultConfidence)
	}
	if c.Stub != nil && (c.Stub.Port <= 0 || c.Stub.Port > 65535) {
		return fmt.Errorf("RISKDESK_STUB_PORT out of range: %d", c.Stub.Port)
	}
	return nil
}

// RequireAPIURL is called by binaries that talk to the backend, after flags
// had a chance to override APIBaseURL.
func (c *Config) RequireAPIURL() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("backend URL not configured: set RISKDESK_API_URL or pass -api-url")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
