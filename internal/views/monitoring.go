package views

import (
	"context"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// MonitoringView manages the risk limits and alerts of the selected portfolio.
type MonitoringView struct {
	view
	Selection

	Limits []domain.RiskLimit
	Alerts []domain.Alert
}

type limitsLoadedMsg struct {
	owner       uint64
	portfolioID string
	limits      []domain.RiskLimit
	err         error
}

type alertsLoadedMsg struct {
	owner       uint64
	portfolioID string
	alerts      []domain.Alert
	err         error
}

// limitChangedMsg reports a create or update of a risk limit.
type limitChangedMsg struct {
	owner       uint64
	op          Op
	portfolioID string
	limit       *domain.RiskLimit
	err         error
}

type alertReadMsg struct {
	owner       uint64
	portfolioID string
	alert       *domain.Alert
	err         error
}

// NewMonitoringView creates an idle monitoring page.
func NewMonitoringView(ctx context.Context, backend Backend, log zerolog.Logger) *MonitoringView {
	v := &MonitoringView{view: newView(ctx, backend, log, "monitoring")}
	v.Selection.clear()
	v.resetDependents()
	return v
}

// Load fetches the portfolio list; limits and alerts follow once the
// selection is known.
func (v *MonitoringView) Load() tea.Cmd {
	v.begin()
	return loadPortfolios(v.ctx, v.backend, v.owner)
}

// Select switches to another portfolio and reloads its limits and alerts.
func (v *MonitoringView) Select(id string) tea.Cmd {
	if !v.choose(id) {
		return nil
	}
	v.resetDependents()
	return v.loadDependents()
}

// UnreadAlerts returns loaded alerts not yet marked read.
func (v *MonitoringView) UnreadAlerts() []domain.Alert {
	out := []domain.Alert{}
	for _, a := range v.Alerts {
		if !a.IsRead {
			out = append(out, a)
		}
	}
	return out
}

// ReadAlerts returns loaded alerts already marked read.
func (v *MonitoringView) ReadAlerts() []domain.Alert {
	out := []domain.Alert{}
	for _, a := range v.Alerts {
		if a.IsRead {
			out = append(out, a)
		}
	}
	return out
}

// ActiveLimitCount counts loaded limits that are switched on.
func (v *MonitoringView) ActiveLimitCount() int {
	n := 0
	for _, l := range v.Limits {
		if l.IsActive {
			n++
		}
	}
	return n
}

// Limit returns a loaded limit by id.
func (v *MonitoringView) Limit(id string) (domain.RiskLimit, bool) {
	for _, l := range v.Limits {
		if l.ID == id {
			return l, true
		}
	}
	return domain.RiskLimit{}, false
}

// CreateLimit adds a limit to the selected portfolio, then reloads limits.
func (v *MonitoringView) CreateLimit(limitType domain.LimitType, threshold float64) tea.Cmd {
	id := v.SelectedID()
	if id == "" {
		return nil
	}
	v.begin()
	ctx, backend, owner := v.ctx, v.backend, v.owner
	input := api.CreateRiskLimitInput{LimitType: limitType, ThresholdValue: threshold}
	return func() tea.Msg {
		l, err := backend.CreateRiskLimit(ctx, id, input)
		return limitChangedMsg{owner: owner, op: OpCreateLimit, portfolioID: id, limit: l, err: err}
	}
}

// ToggleLimit flips the active flag of a loaded limit, then reloads limits.
func (v *MonitoringView) ToggleLimit(limitID string) tea.Cmd {
	l, ok := v.Limit(limitID)
	if !ok {
		return nil
	}
	return v.updateLimit(limitID, api.UpdateRiskLimitInput{IsActive: api.Ptr(!l.IsActive)})
}

// SetThreshold changes the threshold of a loaded limit, then reloads limits.
func (v *MonitoringView) SetThreshold(limitID string, threshold float64) tea.Cmd {
	if _, ok := v.Limit(limitID); !ok {
		return nil
	}
	return v.updateLimit(limitID, api.UpdateRiskLimitInput{ThresholdValue: api.Ptr(threshold)})
}

func (v *MonitoringView) updateLimit(limitID string, input api.UpdateRiskLimitInput) tea.Cmd {
	id := v.SelectedID()
	if id == "" {
		return nil
	}
	v.begin()
	ctx, backend, owner := v.ctx, v.backend, v.owner
	return func() tea.Msg {
		l, err := backend.UpdateRiskLimit(ctx, limitID, input)
		return limitChangedMsg{owner: owner, op: OpUpdateLimit, portfolioID: id, limit: l, err: err}
	}
}

// MarkAlertRead marks an alert read, then reloads alerts.
func (v *MonitoringView) MarkAlertRead(alertID string) tea.Cmd {
	id := v.SelectedID()
	if id == "" {
		return nil
	}
	v.begin()
	ctx, backend, owner := v.ctx, v.backend, v.owner
	return func() tea.Msg {
		a, err := backend.MarkAlertRead(ctx, alertID)
		return alertReadMsg{owner: owner, portfolioID: id, alert: a, err: err}
	}
}

func (v *MonitoringView) resetDependents() {
	v.Limits = []domain.RiskLimit{}
	v.Alerts = []domain.Alert{}
}

// loadDependents issues the limit and alert reads as independent commands.
func (v *MonitoringView) loadDependents() tea.Cmd {
	return tea.Batch(v.loadLimits(), v.loadAlerts())
}

func (v *MonitoringView) loadLimits() tea.Cmd {
	id := v.SelectedID()
	if id == "" {
		return nil
	}
	v.begin()
	ctx, backend, owner := v.ctx, v.backend, v.owner
	return func() tea.Msg {
		limits, err := backend.GetRiskLimits(ctx, id)
		return limitsLoadedMsg{owner: owner, portfolioID: id, limits: limits, err: err}
	}
}

func (v *MonitoringView) loadAlerts() tea.Cmd {
	id := v.SelectedID()
	if id == "" {
		return nil
	}
	v.begin()
	ctx, backend, owner := v.ctx, v.backend, v.owner
	return func() tea.Msg {
		alerts, err := backend.GetAlerts(ctx, id, api.AlertsOptions{})
		return alertsLoadedMsg{owner: owner, portfolioID: id, alerts: alerts, err: err}
	}
}

// Update applies monitoring page messages.
func (v *MonitoringView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case portfoliosLoadedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.err != nil {
			if !v.Loaded {
				v.Selection.clear()
				v.resetDependents()
			}
			v.settle(fail(v.log, OpLoadPortfolios, m.err))
			return nil
		}
		if v.reconcile(m.portfolios) {
			v.resetDependents()
		}
		cmd := v.loadDependents()
		v.settle(nil)
		return cmd

	case limitsLoadedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.portfolioID != v.SelectedID() {
			v.stale(OpLoadLimits, m.portfolioID, v.SelectedID())
			return nil
		}
		if m.err != nil {
			v.settle(fail(v.log, OpLoadLimits, m.err))
			return nil
		}
		v.Limits = nonNil(m.limits)
		v.settle(nil)
		return nil

	case alertsLoadedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.portfolioID != v.SelectedID() {
			v.stale(OpLoadAlerts, m.portfolioID, v.SelectedID())
			return nil
		}
		if m.err != nil {
			v.settle(fail(v.log, OpLoadAlerts, m.err))
			return nil
		}
		v.Alerts = nonNil(m.alerts)
		v.settle(nil)
		return nil

	case limitChangedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.portfolioID != v.SelectedID() {
			v.stale(m.op, m.portfolioID, v.SelectedID())
			return nil
		}
		if m.err != nil {
			v.settle(fail(v.log, m.op, m.err))
			return nil
		}
		cmd := v.loadLimits()
		v.settle(nil)
		return cmd

	case alertReadMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.portfolioID != v.SelectedID() {
			v.stale(OpMarkAlertRead, m.portfolioID, v.SelectedID())
			return nil
		}
		if m.err != nil {
			v.settle(fail(v.log, OpMarkAlertRead, m.err))
			return nil
		}
		cmd := v.loadAlerts()
		v.settle(nil)
		return cmd
	}
	return nil
}
