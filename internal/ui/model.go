// Package ui is the bubbletea terminal dashboard.
package ui

import (
	"context"

	"github.com/aristath/riskdesk/internal/theme"
	"github.com/aristath/riskdesk/internal/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Page is one of the dashboard screens.
type Page int

const (
	PageDashboard Page = iota
	PagePortfolios
	PageRisk
	PageScenarios
	PageMonitoring
)

var pageNames = [...]string{"Dashboard", "Portfolios", "Risk", "Scenarios", "Monitoring"}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return "Unknown"
	}
	return pageNames[p]
}

// Options tune the pages.
type Options struct {
	APIURL          string
	DashboardAlerts int
	HistoryLimit    int
	HorizonDays     int
	Confidence      float64
	MaxWidth        int
}

// Model is the root bubbletea model. Exactly one page view is mounted at a
// time; switching pages mounts a fresh view and reloads it.
type Model struct {
	ctx     context.Context
	backend views.Backend
	log     zerolog.Logger
	opts    Options
	theme   theme.Theme
	styles  theme.Styles

	page       Page
	dashboard  *views.Dashboard
	portfolios *views.PortfolioView
	risk       *views.RiskView
	scenarios  *views.ScenarioView
	monitoring *views.MonitoringView

	// Item list state for pages with a second list.
	focusItems bool
	cursor     int
	preset     int

	form *form

	// initCmd loads the page mounted by NewModel.
	initCmd tea.Cmd

	width  int
	height int
}

// selectable is implemented by every page that keeps a portfolio selection.
type selectable interface {
	Select(id string) tea.Cmd
}

// NewModel creates the dashboard with the Dashboard page mounted. Init
// returns its load command.
func NewModel(ctx context.Context, backend views.Backend, log zerolog.Logger, opts Options) Model {
	m := Model{
		ctx:     ctx,
		backend: backend,
		log:     log.With().Str("component", "ui").Logger(),
		opts:    opts,
		theme:   theme.Default,
		styles:  theme.NewStyles(theme.Default),
		page:    PageDashboard,
	}
	m.initCmd = m.mountCmd()
	return m
}

// Init loads the initial page.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// mount replaces the page view with a fresh instance and returns its load command.
func (m *Model) mount(p Page) tea.Cmd {
	m.page = p
	m.form = nil
	m.focusItems = false
	m.cursor = 0
	return m.mountCmd()
}

func (m *Model) mountCmd() tea.Cmd {
	m.dashboard, m.portfolios, m.risk, m.scenarios, m.monitoring = nil, nil, nil, nil, nil

	switch m.page {
	case PagePortfolios:
		m.portfolios = views.NewPortfolioView(m.ctx, m.backend, m.log)
		return m.portfolios.Load()
	case PageRisk:
		m.risk = views.NewRiskView(m.ctx, m.backend, m.log, views.RiskOptions{
			HistoryLimit: m.opts.HistoryLimit,
			HorizonDays:  m.opts.HorizonDays,
			Confidence:   m.opts.Confidence,
		})
		return m.risk.Load()
	case PageScenarios:
		m.scenarios = views.NewScenarioView(m.ctx, m.backend, m.log)
		return m.scenarios.Load()
	case PageMonitoring:
		m.monitoring = views.NewMonitoringView(m.ctx, m.backend, m.log)
		return m.monitoring.Load()
	default:
		m.dashboard = views.NewDashboard(m.ctx, m.backend, m.log, m.opts.DashboardAlerts)
		return m.dashboard.Load()
	}
}

// active returns the mounted page view.
func (m Model) active() views.Model {
	switch m.page {
	case PagePortfolios:
		return m.portfolios
	case PageRisk:
		return m.risk
	case PageScenarios:
		return m.scenarios
	case PageMonitoring:
		return m.monitoring
	default:
		return m.dashboard
	}
}

// lifecycle returns the status of the mounted page.
func (m Model) lifecycle() *views.Lifecycle {
	switch m.page {
	case PagePortfolios:
		return &m.portfolios.Lifecycle
	case PageRisk:
		return &m.risk.Lifecycle
	case PageScenarios:
		return &m.scenarios.Lifecycle
	case PageMonitoring:
		return &m.monitoring.Lifecycle
	default:
		return &m.dashboard.Lifecycle
	}
}

// selection returns the portfolio selection of the mounted page, if it has one.
func (m Model) selection() (*views.Selection, selectable) {
	switch m.page {
	case PagePortfolios:
		return &m.portfolios.Selection, m.portfolios
	case PageRisk:
		return &m.risk.Selection, m.risk
	case PageScenarios:
		return &m.scenarios.Selection, m.scenarios
	case PageMonitoring:
		return &m.monitoring.Selection, m.monitoring
	default:
		return nil, nil
	}
}

// itemCount is the length of the page's second list.
func (m Model) itemCount() int {
	switch m.page {
	case PageScenarios:
		return len(m.scenarios.Scenarios)
	case PageMonitoring:
		return len(m.monitoring.Limits) + len(m.monitoring.UnreadAlerts())
	default:
		return 0
	}
}
