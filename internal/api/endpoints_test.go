package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	uri    string
	body   map[string]any
}

// newRecorder returns a client whose backend records the last request and
// replies with reply.
func newRecorder(t *testing.T, reply string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.uri = r.RequestURI
		rec.body = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			require.NoError(t, json.Unmarshal(data, &rec.body))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL, zerolog.Nop()), rec
}

func TestEndpoints_RequestShapes(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name   string
		reply  string
		call   func(c *Client) error
		method string
		uri    string
		body   map[string]any
	}{
		{
			name:  "list portfolios",
			reply: `[]`,
			call: func(c *Client) error {
				_, err := c.GetPortfolios(ctx)
				return err
			},
			method: http.MethodGet,
			uri:    "/api/portfolios",
		},
		{
			name:  "create portfolio",
			reply: `{"id":"p1"}`,
			call: func(c *Client) error {
				_, err := c.CreatePortfolio(ctx, CreatePortfolioInput{Name: "Core", Description: "long only", Currency: "EUR"})
				return err
			},
			method: http.MethodPost,
			uri:    "/api/portfolios",
			body:   map[string]any{"name": "Core", "description": "long only", "currency": "EUR"},
		},
		{
			name:  "positions",
			reply: `[]`,
			call: func(c *Client) error {
				_, err := c.GetPortfolioPositions(ctx, "p/1")
				return err
			},
			method: http.MethodGet,
			uri:    "/api/portfolios/p%2F1/positions",
		},
		{
			name:  "latest risk",
			reply: `null`,
			call: func(c *Client) error {
				_, err := c.GetLatestRiskCalculation(ctx, "p1")
				return err
			},
			method: http.MethodGet,
			uri:    "/api/portfolios/p1/risk/latest",
		},
		{
			name:  "risk history",
			reply: `[]`,
			call: func(c *Client) error {
				_, err := c.GetRiskHistory(ctx, "p1", 12)
				return err
			},
			method: http.MethodGet,
			uri:    "/api/portfolios/p1/risk?limit=12",
		},
		{
			name:  "risk history default limit",
			reply: `[]`,
			call: func(c *Client) error {
				_, err := c.GetRiskHistory(ctx, "p1", 0)
				return err
			},
			method: http.MethodGet,
			uri:    "/api/portfolios/p1/risk?limit=30",
		},
		{
			name:  "calculate risk",
			reply: `{"id":"r1"}`,
			call: func(c *Client) error {
				_, err := c.CalculateRisk(ctx, "p1", CalculateRiskInput{HorizonDays: 10, ConfidenceLevel: 0.99})
				return err
			},
			method: http.MethodPost,
			uri:    "/api/portfolios/p1/risk/calculate",
			body:   map[string]any{"horizon_days": 10.0, "confidence_level": 0.99},
		},
		{
			name:  "list scenarios",
			reply: `[]`,
			call: func(c *Client) error {
				_, err := c.GetScenarios(ctx)
				return err
			},
			method: http.MethodGet,
			uri:    "/api/scenarios",
		},
		{
			name:  "create scenario",
			reply: `{"id":"s1"}`,
			call: func(c *Client) error {
				_, err := c.CreateScenario(ctx, CreateScenarioInput{
					Name:         "Crash",
					Description:  "-20%",
					ScenarioType: domain.ScenarioMarketCrash,
					Parameters:   domain.Parameters{"market_change": -20},
				})
				return err
			},
			method: http.MethodPost,
			uri:    "/api/scenarios",
			body: map[string]any{
				"name": "Crash", "description": "-20%", "scenario_type": "market_crash",
				"parameters": map[string]any{"market_change": -20.0},
			},
		},
		{
			name:  "create scenario without parameters sends empty object",
			reply: `{"id":"s1"}`,
			call: func(c *Client) error {
				_, err := c.CreateScenario(ctx, CreateScenarioInput{Name: "Empty", ScenarioType: domain.ScenarioCustom})
				return err
			},
			method: http.MethodPost,
			uri:    "/api/scenarios",
			body: map[string]any{
				"name": "Empty", "description": "", "scenario_type": "custom",
				"parameters": map[string]any{},
			},
		},
		{
			name:  "scenario results",
			reply: `[]`,
			call: func(c *Client) error {
				_, err := c.GetScenarioResults(ctx, "p1")
				return err
			},
			method: http.MethodGet,
			uri:    "/api/portfolios/p1/scenario-results",
		},
		{
			name:  "run scenario",
			reply: `{"id":"res1"}`,
			call: func(c *Client) error {
				_, err := c.RunScenario(ctx, "p 1", "s#1")
				return err
			},
			method: http.MethodPost,
			uri:    "/api/portfolios/p%201/scenarios/s%231/run",
		},
		{
			name:  "list risk limits",
			reply: `[]`,
			call: func(c *Client) error {
				_, err := c.GetRiskLimits(ctx, "p1")
				return err
			},
			method: http.MethodGet,
			uri:    "/api/portfolios/p1/risk-limits",
		},
		{
			name:  "create risk limit",
			reply: `{"id":"l1"}`,
			call: func(c *Client) error {
				_, err := c.CreateRiskLimit(ctx, "p1", CreateRiskLimitInput{LimitType: domain.LimitMaxVaR, ThresholdValue: 50000})
				return err
			},
			method: http.MethodPost,
			uri:    "/api/portfolios/p1/risk-limits",
			body:   map[string]any{"limit_type": "max_var", "threshold_value": 50000.0},
		},
		{
			name:  "update risk limit activation only",
			reply: `{"id":"l1"}`,
			call: func(c *Client) error {
				_, err := c.UpdateRiskLimit(ctx, "l1", UpdateRiskLimitInput{IsActive: Ptr(false)})
				return err
			},
			method: http.MethodPatch,
			uri:    "/api/risk-limits/l1",
			body:   map[string]any{"is_active": false},
		},
		{
			name:  "update risk limit threshold only",
			reply: `{"id":"l1"}`,
			call: func(c *Client) error {
				_, err := c.UpdateRiskLimit(ctx, "l1", UpdateRiskLimitInput{ThresholdValue: Ptr(0.0)})
				return err
			},
			method: http.MethodPatch,
			uri:    "/api/risk-limits/l1",
			body:   map[string]any{"threshold_value": 0.0},
		},
		{
			name:  "alerts unread with limit",
			reply: `[]`,
			call: func(c *Client) error {
				_, err := c.GetAlerts(ctx, "p1", AlertsOptions{UnreadOnly: Ptr(true), Limit: Ptr(5)})
				return err
			},
			method: http.MethodGet,
			uri:    "/api/portfolios/p1/alerts?unread=true&limit=5",
		},
		{
			name:  "alerts without options",
			reply: `[]`,
			call: func(c *Client) error {
				_, err := c.GetAlerts(ctx, "p1", AlertsOptions{})
				return err
			},
			method: http.MethodGet,
			uri:    "/api/portfolios/p1/alerts",
		},
		{
			name:  "alerts explicit false is sent",
			reply: `[]`,
			call: func(c *Client) error {
				_, err := c.GetAlerts(ctx, "p1", AlertsOptions{UnreadOnly: Ptr(false)})
				return err
			},
			method: http.MethodGet,
			uri:    "/api/portfolios/p1/alerts?unread=false",
		},
		{
			name:  "mark alert read",
			reply: `{"id":"a1","is_read":true}`,
			call: func(c *Client) error {
				_, err := c.MarkAlertRead(ctx, "a1")
				return err
			},
			method: http.MethodPatch,
			uri:    "/api/alerts/a1",
			body:   map[string]any{"is_read": true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, rec := newRecorder(t, tc.reply)
			require.NoError(t, tc.call(client))

			assert.Equal(t, tc.method, rec.method)
			assert.Equal(t, tc.uri, rec.uri)
			assert.Equal(t, tc.body, rec.body)
		})
	}
}

func TestGetLatestRiskCalculation_NullIsNotAnError(t *testing.T) {
	client, _ := newRecorder(t, `null`)

	calc, err := client.GetLatestRiskCalculation(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, calc)
}

func TestGetLatestRiskCalculation_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"portfolio not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	calc, err := client.GetLatestRiskCalculation(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.Nil(t, calc)
	assert.True(t, IsNotFound(err))
}

func TestMarkAlertRead_DecodesAlert(t *testing.T) {
	client, _ := newRecorder(t, `{"id":"a1","portfolio_id":"p1","risk_limit_id":null,"severity":"warning","is_read":true}`)

	alert, err := client.MarkAlertRead(context.Background(), "a1")
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.True(t, alert.IsRead)
	assert.Equal(t, domain.SeverityWarning, alert.Severity)
}
