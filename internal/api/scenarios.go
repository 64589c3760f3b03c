package api

import (
	"context"
	"net/http"

	"github.com/aristath/riskdesk/internal/domain"
)

// CreateScenarioInput is the body of POST /api/scenarios.
type CreateScenarioInput struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	ScenarioType domain.ScenarioType `json:"scenario_type"`
	Parameters   domain.Parameters   `json:"parameters"`
}

// GetScenarios lists all scenarios.
func (c *Client) GetScenarios(ctx context.Context) ([]domain.Scenario, error) {
	return Fetch[[]domain.Scenario](ctx, c, "/api/scenarios", nil)
}

// CreateScenario creates a scenario definition.
func (c *Client) CreateScenario(ctx context.Context, input CreateScenarioInput) (*domain.Scenario, error) {
	if input.Parameters == nil {
		input.Parameters = domain.Parameters{}
	}
	return Fetch[*domain.Scenario](ctx, c, "/api/scenarios", &Request{Method: http.MethodPost, Body: input})
}

// GetScenarioResults lists the scenario results of a portfolio.
func (c *Client) GetScenarioResults(ctx context.Context, portfolioID string) ([]domain.ScenarioResult, error) {
	return Fetch[[]domain.ScenarioResult](ctx, c, "/api/portfolios/"+PathSegment(portfolioID)+"/scenario-results", nil)
}

// RunScenario runs a scenario against a portfolio.
func (c *Client) RunScenario(ctx context.Context, portfolioID, scenarioID string) (*domain.ScenarioResult, error) {
	path := "/api/portfolios/" + PathSegment(portfolioID) + "/scenarios/" + PathSegment(scenarioID) + "/run"
	return Fetch[*domain.ScenarioResult](ctx, c, path, &Request{Method: http.MethodPost})
}
