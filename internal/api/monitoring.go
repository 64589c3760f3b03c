package api

import (
	"context"
	"net/http"

	"github.com/aristath/riskdesk/internal/domain"
)

// CreateRiskLimitInput is the body of POST /api/portfolios/{id}/risk-limits.
type CreateRiskLimitInput struct {
	LimitType      domain.LimitType `json:"limit_type"`
	ThresholdValue float64          `json:"threshold_value"`
}

// UpdateRiskLimitInput is a partial update; nil fields are not sent.
type UpdateRiskLimitInput struct {
	IsActive       *bool    `json:"is_active,omitempty"`
	ThresholdValue *float64 `json:"threshold_value,omitempty"`
}

// AlertsOptions filters GetAlerts. Nil fields are omitted from the query.
type AlertsOptions struct {
	UnreadOnly *bool
	Limit      *int
}

type markReadInput struct {
	IsRead bool `json:"is_read"`
}

// GetRiskLimits lists the risk limits of a portfolio.
func (c *Client) GetRiskLimits(ctx context.Context, portfolioID string) ([]domain.RiskLimit, error) {
	return Fetch[[]domain.RiskLimit](ctx, c, riskLimitsPath(portfolioID), nil)
}

// CreateRiskLimit adds a limit to a portfolio.
func (c *Client) CreateRiskLimit(ctx context.Context, portfolioID string, input CreateRiskLimitInput) (*domain.RiskLimit, error) {
	return Fetch[*domain.RiskLimit](ctx, c, riskLimitsPath(portfolioID), &Request{Method: http.MethodPost, Body: input})
}

// UpdateRiskLimit patches a limit's activation flag and/or threshold.
func (c *Client) UpdateRiskLimit(ctx context.Context, limitID string, input UpdateRiskLimitInput) (*domain.RiskLimit, error) {
	return Fetch[*domain.RiskLimit](ctx, c, "/api/risk-limits/"+PathSegment(limitID), &Request{Method: http.MethodPatch, Body: input})
}

// GetAlerts lists alerts of a portfolio, newest first.
func (c *Client) GetAlerts(ctx context.Context, portfolioID string, opts AlertsOptions) ([]domain.Alert, error) {
	u := c.BuildURL("/api/portfolios/"+PathSegment(portfolioID)+"/alerts", Query{
		Param("unread", opts.UnreadOnly),
		Param("limit", opts.Limit),
	})
	return Fetch[[]domain.Alert](ctx, c, u, nil)
}

// MarkAlertRead flags an alert as read.
func (c *Client) MarkAlertRead(ctx context.Context, alertID string) (*domain.Alert, error) {
	return Fetch[*domain.Alert](ctx, c, "/api/alerts/"+PathSegment(alertID), &Request{Method: http.MethodPatch, Body: markReadInput{IsRead: true}})
}

func riskLimitsPath(portfolioID string) string {
	return "/api/portfolios/" + PathSegment(portfolioID) + "/risk-limits"
}
