package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/internal/views"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.opts.MaxWidth > 0 && m.width > m.opts.MaxWidth {
			m.width = m.opts.MaxWidth
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			closed, cmd := m.form.update(msg)
			if closed {
				m.form = nil
			}
			return m, cmd
		}
		return m.handleKey(msg)
	}

	cmd := m.active().Update(msg)
	m.clampCursor()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Reload):
		return m, m.mount(m.page)
	case key.Matches(msg, keys.Dashboard):
		return m, m.mount(PageDashboard)
	case key.Matches(msg, keys.Portfolios):
		return m, m.mount(PagePortfolios)
	case key.Matches(msg, keys.Risk):
		return m, m.mount(PageRisk)
	case key.Matches(msg, keys.Scenarios):
		return m, m.mount(PageScenarios)
	case key.Matches(msg, keys.Monitoring):
		return m, m.mount(PageMonitoring)
	case key.Matches(msg, keys.Focus):
		if m.itemCount() > 0 {
			m.focusItems = !m.focusItems
		}
		return m, nil
	case key.Matches(msg, keys.Up):
		return m, m.move(-1)
	case key.Matches(msg, keys.Down):
		return m, m.move(1)
	}

	switch m.page {
	case PagePortfolios:
		if key.Matches(msg, keys.New) {
			m.form = m.portfolioForm()
		}
	case PageRisk:
		switch {
		case key.Matches(msg, keys.Horizon):
			m.risk.CycleHorizon()
		case key.Matches(msg, keys.Confidence):
			m.risk.CycleConfidence()
		case key.Matches(msg, keys.Calculate):
			if !m.risk.Calculating {
				return m, m.risk.Calculate()
			}
		}
	case PageScenarios:
		switch {
		case key.Matches(msg, keys.Act):
			if m.focusItems && m.cursor < len(m.scenarios.Scenarios) && !m.scenarios.Running {
				return m, m.scenarios.Run(m.scenarios.Scenarios[m.cursor].ID)
			}
		case key.Matches(msg, keys.New):
			m.form = m.scenarioForm()
		case key.Matches(msg, keys.Template):
			m.preset = (m.preset + 1) % len(views.ScenarioTemplates)
		case key.Matches(msg, keys.AddPreset):
			return m, m.scenarios.CreateFromTemplate(m.preset)
		}
	case PageMonitoring:
		switch {
		case key.Matches(msg, keys.Act):
			return m, m.monitoringAct()
		case key.Matches(msg, keys.New):
			if m.monitoring.HasSelection() {
				m.form = m.limitForm()
			}
		case key.Matches(msg, keys.Edit):
			if l, ok := m.focusedLimit(); ok {
				m.form = m.thresholdForm(l)
			}
		}
	}
	return m, nil
}

// move walks the focused list. On the portfolio list this changes the
// selection, which reloads the page's dependent data.
func (m *Model) move(delta int) tea.Cmd {
	if m.focusItems {
		n := m.itemCount()
		if n > 0 {
			m.cursor = (m.cursor + delta + n) % n
		}
		return nil
	}

	sel, page := m.selection()
	if sel == nil || len(sel.Portfolios) == 0 {
		return nil
	}
	i := sel.Index() + delta
	if i < 0 || i >= len(sel.Portfolios) {
		return nil
	}
	m.cursor = 0
	return page.Select(sel.Portfolios[i].ID)
}

func (m *Model) clampCursor() {
	n := m.itemCount()
	if n == 0 {
		m.cursor = 0
		m.focusItems = false
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

// focusedLimit returns the limit under the cursor on the monitoring page.
func (m Model) focusedLimit() (domain.RiskLimit, bool) {
	if !m.focusItems || m.page != PageMonitoring || m.cursor >= len(m.monitoring.Limits) {
		return domain.RiskLimit{}, false
	}
	return m.monitoring.Limits[m.cursor], true
}

// monitoringAct toggles the focused limit or marks the focused alert read.
func (m Model) monitoringAct() tea.Cmd {
	if !m.focusItems {
		return nil
	}
	if l, ok := m.focusedLimit(); ok {
		return m.monitoring.ToggleLimit(l.ID)
	}
	unread := m.monitoring.UnreadAlerts()
	i := m.cursor - len(m.monitoring.Limits)
	if i < 0 || i >= len(unread) {
		return nil
	}
	return m.monitoring.MarkAlertRead(unread[i].ID)
}

func (m Model) portfolioForm() *form {
	return newForm("New portfolio", []formField{
		{label: "Name", placeholder: "Growth"},
		{label: "Description", placeholder: "optional"},
		{label: "Currency", value: "USD"},
	}, func(v []string) (tea.Cmd, error) {
		if v[0] == "" {
			return nil, errors.New("name is required")
		}
		currency := strings.ToUpper(v[2])
		if currency == "" {
			currency = "USD"
		}
		return m.portfolios.CreatePortfolio(api.CreatePortfolioInput{
			Name:        v[0],
			Description: v[1],
			Currency:    currency,
		}), nil
	})
}

func (m Model) scenarioForm() *form {
	return newForm("New scenario", []formField{
		{label: "Name", placeholder: "Oil shock"},
		{label: "Description", placeholder: "optional"},
		{label: "Type", value: string(domain.ScenarioCustom)},
		{label: "Market change %", placeholder: "-10"},
	}, func(v []string) (tea.Cmd, error) {
		if v[0] == "" {
			return nil, errors.New("name is required")
		}
		scenarioType := domain.ScenarioType(strings.ToLower(v[2]))
		if !scenarioType.Known() {
			return nil, fmt.Errorf("unknown scenario type %q", v[2])
		}
		params := domain.Parameters{}
		if v[3] != "" {
			change, err := strconv.ParseFloat(v[3], 64)
			if err != nil {
				return nil, fmt.Errorf("market change must be a number")
			}
			params["market_change"] = change
		}
		return m.scenarios.Create(api.CreateScenarioInput{
			Name:         v[0],
			Description:  v[1],
			ScenarioType: scenarioType,
			Parameters:   params,
		}), nil
	})
}

func (m Model) limitForm() *form {
	return newForm("New risk limit", []formField{
		{label: "Type", value: string(domain.LimitMaxVaR)},
		{label: "Threshold", placeholder: "1500"},
	}, func(v []string) (tea.Cmd, error) {
		limitType := domain.LimitType(strings.ToLower(v[0]))
		if !limitType.Known() {
			return nil, fmt.Errorf("unknown limit type %q", v[0])
		}
		threshold, err := strconv.ParseFloat(v[1], 64)
		if err != nil {
			return nil, fmt.Errorf("threshold must be a number")
		}
		return m.monitoring.CreateLimit(limitType, threshold), nil
	})
}

func (m Model) thresholdForm(l domain.RiskLimit) *form {
	return newForm("Edit "+l.LimitType.Label(), []formField{
		{label: "Threshold", value: strconv.FormatFloat(l.ThresholdValue, 'f', -1, 64)},
	}, func(v []string) (tea.Cmd, error) {
		threshold, err := strconv.ParseFloat(v[0], 64)
		if err != nil {
			return nil, fmt.Errorf("threshold must be a number")
		}
		return m.monitoring.SetThreshold(l.ID, threshold), nil
	})
}
