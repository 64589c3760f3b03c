package api

import (
	"context"
	"net/http"

	"github.com/aristath/riskdesk/internal/domain"
)

// CreatePortfolioInput is the body of POST /api/portfolios.
type CreatePortfolioInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
}

// GetPortfolios lists all portfolios.
func (c *Client) GetPortfolios(ctx context.Context) ([]domain.Portfolio, error) {
	return Fetch[[]domain.Portfolio](ctx, c, "/api/portfolios", nil)
}

// CreatePortfolio creates a portfolio.
func (c *Client) CreatePortfolio(ctx context.Context, input CreatePortfolioInput) (*domain.Portfolio, error) {
	return Fetch[*domain.Portfolio](ctx, c, "/api/portfolios", &Request{Method: http.MethodPost, Body: input})
}

// GetPortfolioPositions lists the positions of a portfolio.
func (c *Client) GetPortfolioPositions(ctx context.Context, portfolioID string) ([]domain.Position, error) {
	return Fetch[[]domain.Position](ctx, c, "/api/portfolios/"+PathSegment(portfolioID)+"/positions", nil)
}
