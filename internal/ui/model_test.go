package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/domain"
	"github.com/aristath/riskdesk/internal/stubapi"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestModel returns a model whose initial page has finished loading.
func newTestModel(t *testing.T) (Model, *stubapi.Server) {
	t.Helper()
	m, srv := newStartingModel(t)
	return run(m, m.Init()), srv
}

// newStartingModel returns a model as handed to tea.NewProgram.
func newStartingModel(t *testing.T) (Model, *stubapi.Server) {
	t.Helper()
	store := stubapi.NewStore()
	require.NoError(t, stubapi.Seed(store))
	srv := stubapi.New(stubapi.Config{Log: zerolog.Nop(), Store: store})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL, zerolog.Nop())
	return NewModel(context.Background(), client, zerolog.Nop(), Options{APIURL: ts.URL}), srv
}

// run executes cmd and everything it leads to, feeding messages to m.
func run(m Model, cmd tea.Cmd) Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			updated, c := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, c)
		}
	}
	return m
}

func press(m Model, k string) Model {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, cmd := m.Update(msg)
	return run(updated.(Model), cmd)
}

// typeText enters text into the open form. Cursor blink commands are dropped.
func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func TestModel_InitLoadsDashboard(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, PageDashboard, m.page)
	require.True(t, m.dashboard.Loaded)
	view := m.View()
	assert.Contains(t, view, "Global Equity")
	assert.Contains(t, view, "CRITICAL")
}

// The program keeps the model returned by NewModel, renders it right after
// Init and then feeds it the result of the init command.
func TestModel_StartupSequence(t *testing.T) {
	m, _ := newStartingModel(t)

	cmd := m.Init()
	require.NotNil(t, cmd)
	require.NotPanics(t, func() { _ = m.View() })
	assert.Contains(t, m.View(), "Loading...")

	updated, next := m.Update(cmd())
	m = run(updated.(Model), next)
	assert.True(t, m.dashboard.Loaded)
	assert.Contains(t, m.View(), "Global Equity")
}

func TestModel_StartupWithFailingBackend(t *testing.T) {
	m, srv := newStartingModel(t)
	srv.FailRoute(http.MethodGet, "/api/portfolios", http.StatusBadGateway)

	cmd := m.Init()
	require.NotPanics(t, func() { _ = m.View() })

	updated, next := m.Update(cmd())
	m = run(updated.(Model), next)
	assert.Contains(t, m.View(), "Failed to load dashboard data from backend API.")
}

func TestModel_ErrorBanner(t *testing.T) {
	m, srv := newTestModel(t)
	srv.FailRoute(http.MethodGet, "/api/portfolios", http.StatusInternalServerError)

	m = press(m, "r")
	assert.Contains(t, m.View(), "Failed to load dashboard data from backend API.")
}

func TestModel_SwitchPagesMountsFreshViews(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "3")
	require.Equal(t, PageRisk, m.page)
	assert.Nil(t, m.dashboard)
	require.NotNil(t, m.risk)
	assert.Equal(t, "Global Equity", m.risk.Selected.Name)
	assert.Contains(t, m.View(), "Horizon")

	m = press(m, "1")
	assert.Nil(t, m.risk)
	assert.NotNil(t, m.dashboard)
}

func TestModel_MoveSelection(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "2")
	require.Equal(t, "Global Equity", m.portfolios.Selected.Name)

	m = press(m, "down")
	assert.Equal(t, "European Balanced", m.portfolios.Selected.Name)
	assert.Len(t, m.portfolios.Positions, 3)

	m = press(m, "down")
	assert.Equal(t, "European Balanced", m.portfolios.Selected.Name, "stops at the end of the list")

	m = press(m, "up")
	assert.Equal(t, "Global Equity", m.portfolios.Selected.Name)
}

func TestModel_CreatePortfolioForm(t *testing.T) {
	m, srv := newTestModel(t)
	m = press(m, "2")

	m = press(m, "n")
	require.NotNil(t, m.form)

	m = press(m, "enter")
	require.NotNil(t, m.form, "an empty name keeps the form open")
	assert.Equal(t, "name is required", m.form.err)

	m = typeText(m, "Income")
	m = press(m, "enter")
	assert.Nil(t, m.form)
	require.NotNil(t, m.portfolios.Created)
	assert.Equal(t, "Income", m.portfolios.Created.Name)
	assert.Len(t, m.portfolios.Portfolios, 3)
	assert.Len(t, srv.Store().Portfolios(), 3)
}

func TestModel_FormSwallowsPageKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "2")
	m = press(m, "n")

	m = typeText(m, "3")
	assert.Equal(t, PagePortfolios, m.page)
	assert.Equal(t, "3", m.form.values()[0])

	m = press(m, "esc")
	assert.Nil(t, m.form)
	assert.Len(t, m.portfolios.Portfolios, 2)
}

func TestModel_CalculateRisk(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "3")
	before := len(m.risk.History)

	m = press(m, "h")
	assert.Equal(t, 10, m.risk.HorizonDays)
	m = press(m, "f")
	assert.Equal(t, 0.99, m.risk.Confidence)

	m = press(m, "c")
	require.NotNil(t, m.risk.Latest)
	assert.Equal(t, 10, m.risk.Latest.HorizonDays)
	assert.Equal(t, 0.99, m.risk.Latest.ConfidenceLevel)
	assert.Len(t, m.risk.History, before+1)
	assert.Contains(t, m.View(), "VaR % history")
}

func TestModel_RunScenario(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "4")
	require.Len(t, m.scenarios.Scenarios, 2)

	m = press(m, "enter")
	assert.Empty(t, m.scenarios.Results, "enter does nothing until the list is focused")

	m = press(m, "tab")
	m = press(m, "down")
	assert.Equal(t, 1, m.cursor)
	m = press(m, "enter")
	require.Len(t, m.scenarios.Results, 1)
	assert.Equal(t, m.scenarios.Scenarios[1].ID, m.scenarios.Results[0].ScenarioID)
	assert.Contains(t, m.View(), "Last run: "+m.scenarios.Scenarios[1].Name)
}

func TestModel_AddPresetScenario(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "4")

	m = press(m, "p")
	m = press(m, "p")
	m = press(m, "a")
	require.Len(t, m.scenarios.Scenarios, 3)
	assert.Contains(t, m.View(), "Sector Rotation")
}

func TestModel_CustomScenarioValidation(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "4")
	m = press(m, "n")

	m = typeText(m, "Oil shock")
	m = press(m, "tab")
	m = press(m, "tab")
	m = press(m, "tab")
	m = typeText(m, "lots")
	m = press(m, "enter")
	require.NotNil(t, m.form)
	assert.Equal(t, "market change must be a number", m.form.err)
}

func TestModel_ToggleLimitAndMarkRead(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "5")
	require.Len(t, m.monitoring.Limits, 2)
	require.Len(t, m.monitoring.UnreadAlerts(), 2)
	require.True(t, m.monitoring.Limits[0].IsActive)

	m = press(m, "tab")
	m = press(m, "enter")
	assert.False(t, m.monitoring.Limits[0].IsActive)

	m = press(m, "down")
	m = press(m, "down")
	m = press(m, "enter")
	assert.Len(t, m.monitoring.UnreadAlerts(), 1)
	assert.Len(t, m.monitoring.ReadAlerts(), 1)
}

func TestModel_EditThreshold(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "5")
	m = press(m, "tab")

	m = press(m, "e")
	require.NotNil(t, m.form)
	assert.Equal(t, "1500", m.form.values()[0])

	m.form.inputs[0].SetValue("2500")
	m = press(m, "enter")
	assert.Nil(t, m.form)
	assert.Equal(t, 2500.0, m.monitoring.Limits[0].ThresholdValue)
}

func TestModel_NewLimitRejectsUnknownType(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "5")
	m = press(m, "n")
	require.NotNil(t, m.form)

	m.form.inputs[0].SetValue("max_leverage")
	m.form.inputs[1].SetValue("3")
	m = press(m, "enter")
	assert.Contains(t, m.form.err, "unknown limit type")

	m.form.inputs[0].SetValue(string(domain.LimitMaxVolatility))
	m = press(m, "enter")
	assert.Nil(t, m.form)
	assert.Len(t, m.monitoring.Limits, 3)
}

func TestModel_WindowSizeCapped(t *testing.T) {
	m := NewModel(context.Background(), nil, zerolog.Nop(), Options{MaxWidth: 100})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 180, Height: 40})
	m = updated.(Model)
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 40, m.height)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
