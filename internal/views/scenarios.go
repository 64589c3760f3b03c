package views

import (
	"context"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ScenarioTemplate is a predefined stress scenario offered for one-step creation.
type ScenarioTemplate struct {
	Name        string
	Description string
	Type        domain.ScenarioType
	Parameters  domain.Parameters
}

// Input returns the create request for the template.
func (t ScenarioTemplate) Input() api.CreateScenarioInput {
	params := make(domain.Parameters, len(t.Parameters))
	for k, v := range t.Parameters {
		params[k] = v
	}
	return api.CreateScenarioInput{
		Name:         t.Name,
		Description:  t.Description,
		ScenarioType: t.Type,
		Parameters:   params,
	}
}

// ScenarioTemplates lists the predefined scenarios.
var ScenarioTemplates = []ScenarioTemplate{
	{
		Name:        "Market Crash (-20%)",
		Description: "Simulate a major market downturn",
		Type:        domain.ScenarioMarketCrash,
		Parameters:  domain.Parameters{"market_change": -20.0},
	},
	{
		Name:        "Interest Rate Hike (+2%)",
		Description: "Central bank raises rates by 2%",
		Type:        domain.ScenarioRateChange,
		Parameters:  domain.Parameters{"rate_change": 2.0},
	},
	{
		Name:        "Sector Rotation",
		Description: "Tech -15%, Value +10%",
		Type:        domain.ScenarioSectorRotation,
		Parameters:  domain.Parameters{"tech_change": -15.0, "value_change": 10.0},
	},
	{
		Name:        "Currency Crisis",
		Description: "Base currency devalues by 10%",
		Type:        domain.ScenarioCurrencyCrisis,
		Parameters:  domain.Parameters{"currency_change": -10.0},
	},
}

// ScenarioView lists scenarios, runs them against the selected portfolio and
// shows its results.
type ScenarioView struct {
	view
	Selection

	Scenarios []domain.Scenario
	Results   []domain.ScenarioResult
	Running   bool
	// LastRun is the result returned by the last successful run.
	LastRun *domain.ScenarioResult
}

type scenarioDataLoadedMsg struct {
	owner      uint64
	portfolios []domain.Portfolio
	scenarios  []domain.Scenario
	err        error
}

type resultsLoadedMsg struct {
	owner       uint64
	portfolioID string
	results     []domain.ScenarioResult
	err         error
}

type scenarioRunMsg struct {
	owner       uint64
	portfolioID string
	result      *domain.ScenarioResult
	err         error
}

type scenarioCreatedMsg struct {
	owner    uint64
	scenario *domain.Scenario
	err      error
}

// NewScenarioView creates an idle scenario page.
func NewScenarioView(ctx context.Context, backend Backend, log zerolog.Logger) *ScenarioView {
	v := &ScenarioView{view: newView(ctx, backend, log, "scenarios")}
	v.Selection.clear()
	v.Scenarios = []domain.Scenario{}
	v.Results = []domain.ScenarioResult{}
	return v
}

// Load fetches portfolios and scenarios concurrently; results follow once
// the selection is known.
func (v *ScenarioView) Load() tea.Cmd {
	v.begin()
	ctx, backend, owner := v.ctx, v.backend, v.owner
	return func() tea.Msg {
		msg := scenarioDataLoadedMsg{owner: owner}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			portfolios, err := backend.GetPortfolios(gctx)
			msg.portfolios = portfolios
			return err
		})
		g.Go(func() error {
			scenarios, err := backend.GetScenarios(gctx)
			msg.scenarios = scenarios
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

// Select switches to another portfolio and reloads its results.
func (v *ScenarioView) Select(id string) tea.Cmd {
	if !v.choose(id) {
		return nil
	}
	v.Results = []domain.ScenarioResult{}
	return v.loadResults()
}

// Run runs a scenario against the selected portfolio, then reloads results.
func (v *ScenarioView) Run(scenarioID string) tea.Cmd {
	id := v.SelectedID()
	if id == "" {
		return nil
	}
	v.Running = true
	v.begin()

	ctx, backend, owner := v.ctx, v.backend, v.owner
	return func() tea.Msg {
		res, err := backend.RunScenario(ctx, id, scenarioID)
		return scenarioRunMsg{owner: owner, portfolioID: id, result: res, err: err}
	}
}

// Create stores a new scenario and reloads the page.
func (v *ScenarioView) Create(input api.CreateScenarioInput) tea.Cmd {
	v.begin()
	ctx, backend, owner := v.ctx, v.backend, v.owner
	return func() tea.Msg {
		sc, err := backend.CreateScenario(ctx, input)
		return scenarioCreatedMsg{owner: owner, scenario: sc, err: err}
	}
}

// CreateFromTemplate creates the i-th predefined scenario.
func (v *ScenarioView) CreateFromTemplate(i int) tea.Cmd {
	if i < 0 || i >= len(ScenarioTemplates) {
		return nil
	}
	return v.Create(ScenarioTemplates[i].Input())
}

// ScenarioName returns the name of a loaded scenario, falling back to its id.
func (v *ScenarioView) ScenarioName(id string) string {
	for _, sc := range v.Scenarios {
		if sc.ID == id {
			return sc.Name
		}
	}
	return id
}

func (v *ScenarioView) loadResults() tea.Cmd {
	id := v.SelectedID()
	if id == "" {
		return nil
	}
	v.begin()
	ctx, backend, owner := v.ctx, v.backend, v.owner
	return func() tea.Msg {
		results, err := backend.GetScenarioResults(ctx, id)
		return resultsLoadedMsg{owner: owner, portfolioID: id, results: results, err: err}
	}
}

// Update applies scenario page messages.
func (v *ScenarioView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case scenarioDataLoadedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.err != nil {
			if !v.Loaded {
				v.Selection.clear()
				v.Results = []domain.ScenarioResult{}
			}
			v.settle(fail(v.log, OpLoadScenarios, m.err))
			return nil
		}
		v.Scenarios = nonNil(m.scenarios)
		if v.reconcile(m.portfolios) {
			v.Results = []domain.ScenarioResult{}
		}
		cmd := v.loadResults()
		v.settle(nil)
		return cmd

	case resultsLoadedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.portfolioID != v.SelectedID() {
			v.stale(OpLoadScenarioResults, m.portfolioID, v.SelectedID())
			return nil
		}
		v.Running = false
		if m.err != nil {
			v.settle(fail(v.log, OpLoadScenarioResults, m.err))
			return nil
		}
		v.Results = nonNil(m.results)
		v.settle(nil)
		return nil

	case scenarioRunMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.portfolioID != v.SelectedID() {
			v.Running = false
			v.stale(OpRunScenario, m.portfolioID, v.SelectedID())
			return nil
		}
		if m.err != nil {
			v.Running = false
			v.settle(fail(v.log, OpRunScenario, m.err))
			return nil
		}
		v.LastRun = m.result
		cmd := v.loadResults()
		v.settle(nil)
		return cmd

	case scenarioCreatedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.err != nil {
			v.settle(fail(v.log, OpCreateScenario, m.err))
			return nil
		}
		cmd := v.Load()
		v.settle(nil)
		return cmd
	}
	return nil
}
