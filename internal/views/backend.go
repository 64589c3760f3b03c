package views

import (
	"context"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/domain"
)

// Backend is the subset of the API client the views call.
// *api.Client implements it.
type Backend interface {
	GetPortfolios(ctx context.Context) ([]domain.Portfolio, error)
	CreatePortfolio(ctx context.Context, input api.CreatePortfolioInput) (*domain.Portfolio, error)
	GetPortfolioPositions(ctx context.Context, portfolioID string) ([]domain.Position, error)

	GetLatestRiskCalculation(ctx context.Context, portfolioID string) (*domain.RiskCalculation, error)
	GetRiskHistory(ctx context.Context, portfolioID string, limit int) ([]domain.RiskCalculation, error)
	CalculateRisk(ctx context.Context, portfolioID string, input api.CalculateRiskInput) (*domain.RiskCalculation, error)

	GetScenarios(ctx context.Context) ([]domain.Scenario, error)
	CreateScenario(ctx context.Context, input api.CreateScenarioInput) (*domain.Scenario, error)
	GetScenarioResults(ctx context.Context, portfolioID string) ([]domain.ScenarioResult, error)
	RunScenario(ctx context.Context, portfolioID, scenarioID string) (*domain.ScenarioResult, error)

	GetRiskLimits(ctx context.Context, portfolioID string) ([]domain.RiskLimit, error)
	CreateRiskLimit(ctx context.Context, portfolioID string, input api.CreateRiskLimitInput) (*domain.RiskLimit, error)
	UpdateRiskLimit(ctx context.Context, limitID string, input api.UpdateRiskLimitInput) (*domain.RiskLimit, error)
	GetAlerts(ctx context.Context, portfolioID string, opts api.AlertsOptions) ([]domain.Alert, error)
	MarkAlertRead(ctx context.Context, alertID string) (*domain.Alert, error)
}

var _ Backend = (*api.Client)(nil)

// nonNil normalizes a missing list response to an empty one.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
