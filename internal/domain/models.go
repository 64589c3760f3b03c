// Package domain provides the records exchanged with the risk backend.
//
// All records are owned by the backend: riskdesk transports and displays
// them but never derives or validates their computed fields.
package domain

import "time"

// Portfolio is a named collection of positions in a base currency.
type Portfolio struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Asset is an instrument referenced by positions.
type Asset struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	Name      string    `json:"name"`
	Sector    string    `json:"sector"`
	AssetType string    `json:"asset_type"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// Position is a holding of one asset inside a portfolio.
type Position struct {
	ID               string    `json:"id"`
	PortfolioID      string    `json:"portfolio_id"`
	AssetID          string    `json:"asset_id"`
	Quantity         float64   `json:"quantity"`
	Weight           float64   `json:"weight"`
	AvgPurchasePrice float64   `json:"avg_purchase_price"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Asset            *Asset    `json:"asset,omitempty"` // Embedded by the backend when available
}

// Ticker returns the asset ticker, falling back to the asset id.
func (p Position) Ticker() string {
	if p.Asset != nil && p.Asset.Ticker != "" {
		return p.Asset.Ticker
	}
	return p.AssetID
}

// RiskCalculation is one backend risk run for a portfolio.
type RiskCalculation struct {
	ID              string    `json:"id"`
	PortfolioID     string    `json:"portfolio_id"`
	CalculationDate time.Time `json:"calculation_date"`
	HorizonDays     int       `json:"horizon_days"`
	ConfidenceLevel float64   `json:"confidence_level"`
	VaRValue        float64   `json:"var_value"`
	VaRPercentage   float64   `json:"var_percentage"`
	CVaRValue       float64   `json:"cvar_value"`
	CVaRPercentage  float64   `json:"cvar_percentage"`
	Volatility      float64   `json:"volatility"`
	SharpeRatio     float64   `json:"sharpe_ratio"`
	MaxDrawdown     float64   `json:"max_drawdown"`
	CreatedAt       time.Time `json:"created_at"`
}

// Scenario is a named stress-test definition.
type Scenario struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	ScenarioType ScenarioType `json:"scenario_type"`
	Parameters   Parameters   `json:"parameters"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ScenarioResult is the outcome of running a scenario against a portfolio.
type ScenarioResult struct {
	ID                   string    `json:"id"`
	PortfolioID          string    `json:"portfolio_id"`
	ScenarioID           string    `json:"scenario_id"`
	PortfolioValueChange float64   `json:"portfolio_value_change"`
	VaRChange            float64   `json:"var_change"`
	VolatilityChange     float64   `json:"volatility_change"`
	CalculatedAt         time.Time `json:"calculated_at"`
	Scenario             *Scenario `json:"scenario,omitempty"`
}

// RiskLimit is a user-configured threshold evaluated by the backend.
type RiskLimit struct {
	ID             string    `json:"id"`
	PortfolioID    string    `json:"portfolio_id"`
	LimitType      LimitType `json:"limit_type"`
	ThresholdValue float64   `json:"threshold_value"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Alert is raised by the backend when a limit is breached.
type Alert struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolio_id"`
	RiskLimitID *string   `json:"risk_limit_id"`
	AlertType   string    `json:"alert_type"`
	Message     string    `json:"message"`
	Severity    Severity  `json:"severity"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
