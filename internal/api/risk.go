package api

import (
	"context"
	"net/http"

	"github.com/aristath/riskdesk/internal/domain"
)

// DefaultHistoryLimit is used by GetRiskHistory when no positive limit is given.
const DefaultHistoryLimit = 30

// CalculateRiskInput is the body of POST /api/portfolios/{id}/risk/calculate.
type CalculateRiskInput struct {
	HorizonDays     int     `json:"horizon_days"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

// GetLatestRiskCalculation returns the newest calculation, or nil when the
// portfolio has never been calculated.
func (c *Client) GetLatestRiskCalculation(ctx context.Context, portfolioID string) (*domain.RiskCalculation, error) {
	return Fetch[*domain.RiskCalculation](ctx, c, riskPath(portfolioID)+"/latest", nil)
}

// GetRiskHistory returns up to limit calculations.
func (c *Client) GetRiskHistory(ctx context.Context, portfolioID string, limit int) ([]domain.RiskCalculation, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	u := c.BuildURL(riskPath(portfolioID), Query{Param("limit", limit)})
	return Fetch[[]domain.RiskCalculation](ctx, c, u, nil)
}

// CalculateRisk asks the backend to run a risk calculation.
func (c *Client) CalculateRisk(ctx context.Context, portfolioID string, input CalculateRiskInput) (*domain.RiskCalculation, error) {
	return Fetch[*domain.RiskCalculation](ctx, c, riskPath(portfolioID)+"/calculate", &Request{Method: http.MethodPost, Body: input})
}

func riskPath(portfolioID string) string {
	return "/api/portfolios/" + PathSegment(portfolioID) + "/risk"
}
