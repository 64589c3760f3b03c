package views

import (
	"context"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultDashboardAlerts is how many unread alerts the dashboard shows.
const DefaultDashboardAlerts = 5

// Dashboard summarizes the first portfolio: its latest risk calculation and
// its most recent unread alerts.
type Dashboard struct {
	view

	Portfolios []domain.Portfolio
	LatestRisk *domain.RiskCalculation
	Alerts     []domain.Alert

	alertLimit int
}

type dashboardLoadedMsg struct {
	owner      uint64
	portfolios []domain.Portfolio
	latest     *domain.RiskCalculation
	alerts     []domain.Alert
	err        error
}

// NewDashboard creates a dashboard showing up to alertLimit unread alerts.
func NewDashboard(ctx context.Context, backend Backend, log zerolog.Logger, alertLimit int) *Dashboard {
	if alertLimit <= 0 {
		alertLimit = DefaultDashboardAlerts
	}
	return &Dashboard{
		view:       newView(ctx, backend, log, "dashboard"),
		Portfolios: []domain.Portfolio{},
		Alerts:     []domain.Alert{},
		alertLimit: alertLimit,
	}
}

// Portfolio returns the portfolio the summary is about, if any.
func (d *Dashboard) Portfolio() *domain.Portfolio {
	if len(d.Portfolios) == 0 {
		return nil
	}
	p := d.Portfolios[0]
	return &p
}

// CriticalAlerts counts loaded alerts with critical severity.
func (d *Dashboard) CriticalAlerts() int {
	n := 0
	for _, a := range d.Alerts {
		if a.Severity == domain.SeverityCritical {
			n++
		}
	}
	return n
}

// Load fetches the portfolio list, then the latest risk calculation and the
// unread alerts of the first portfolio concurrently.
func (d *Dashboard) Load() tea.Cmd {
	d.begin()
	ctx, backend, owner, limit := d.ctx, d.backend, d.owner, d.alertLimit

	return func() tea.Msg {
		msg := dashboardLoadedMsg{owner: owner}

		portfolios, err := backend.GetPortfolios(ctx)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.portfolios = nonNil(portfolios)
		if len(portfolios) == 0 {
			return msg
		}

		first := portfolios[0].ID
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			latest, err := backend.GetLatestRiskCalculation(gctx, first)
			msg.latest = latest
			return err
		})
		g.Go(func() error {
			alerts, err := backend.GetAlerts(gctx, first, api.AlertsOptions{
				UnreadOnly: api.Ptr(true),
				Limit:      api.Ptr(limit),
			})
			msg.alerts = alerts
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

// Update applies dashboard messages.
func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(dashboardLoadedMsg)
	if !ok || !d.mine(m.owner) {
		return nil
	}

	// The list stays visible even when the follow-up reads fail.
	if m.portfolios != nil {
		d.Portfolios = m.portfolios
	}
	if m.err != nil {
		if !d.Loaded {
			d.LatestRisk = nil
			d.Alerts = []domain.Alert{}
		}
		d.settle(fail(d.log, OpLoadDashboard, m.err))
		return nil
	}

	d.LatestRisk = m.latest
	d.Alerts = nonNil(m.alerts)
	d.settle(nil)
	return nil
}
