package stubapi

import (
	"fmt"

	"github.com/aristath/riskdesk/internal/domain"
)

// Seed fills the store with a small demo dataset: two portfolios with
// positions, the predefined stress scenarios, one limit and a few alerts.
func Seed(s *Store) error {
	global := s.CreatePortfolio("Global Equity", "Diversified developed-market equities", "USD")
	balanced := s.CreatePortfolio("European Balanced", "60/40 euro-denominated mix", "EUR")

	holdings := []struct {
		portfolio                        string
		ticker, name, sector, kind, curr string
		quantity, weight, avgPrice       float64
	}{
		{global.ID, "AAPL", "Apple Inc.", "Technology", "equity", "USD", 120, 0.32, 148.20},
		{global.ID, "MSFT", "Microsoft Corp.", "Technology", "equity", "USD", 60, 0.28, 301.75},
		{global.ID, "JNJ", "Johnson & Johnson", "Healthcare", "equity", "USD", 90, 0.22, 161.40},
		{global.ID, "XOM", "Exxon Mobil Corp.", "Energy", "equity", "USD", 110, 0.18, 104.05},
		{balanced.ID, "ASML", "ASML Holding", "Technology", "equity", "EUR", 25, 0.35, 612.00},
		{balanced.ID, "BUND10", "German Bund 10Y", "Government", "bond", "EUR", 400, 0.40, 98.60},
		{balanced.ID, "SAN", "Sanofi", "Healthcare", "equity", "EUR", 150, 0.25, 89.30},
	}
	for _, h := range holdings {
		asset := s.AddAsset(h.ticker, h.name, h.sector, h.kind, h.curr)
		if _, err := s.AddPosition(h.portfolio, asset.ID, h.quantity, h.weight, h.avgPrice); err != nil {
			return fmt.Errorf("seed position %s: %w", h.ticker, err)
		}
	}

	s.CreateScenario("Market Crash (-20%)", "Simulate a major market downturn", domain.ScenarioMarketCrash,
		domain.Parameters{"market_change": -20.0})
	s.CreateScenario("Interest Rate Hike (+2%)", "Central bank raises rates by 2%", domain.ScenarioRateChange,
		domain.Parameters{"rate_change": 2.0})

	if _, err := s.CalculateRisk(global.ID, 1, 0.95); err != nil {
		return fmt.Errorf("seed risk: %w", err)
	}

	limit, err := s.CreateLimit(global.ID, domain.LimitMaxVaR, 1500)
	if err != nil {
		return fmt.Errorf("seed limit: %w", err)
	}
	if _, err := s.CreateLimit(global.ID, domain.LimitMaxConcentration, 30); err != nil {
		return fmt.Errorf("seed limit: %w", err)
	}

	limitID := limit.ID
	alerts := []struct {
		limitID  *string
		kind     string
		message  string
		severity domain.Severity
	}{
		{&limitID, "limit_breach", "VaR of $1,650 exceeds limit of $1,500", domain.SeverityCritical},
		{nil, "concentration", "AAPL weight 32% above 30% target", domain.SeverityWarning},
	}
	for _, a := range alerts {
		if _, err := s.AddAlert(global.ID, a.limitID, a.kind, a.message, a.severity); err != nil {
			return fmt.Errorf("seed alert: %w", err)
		}
	}
	return nil
}
