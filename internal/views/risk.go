package views

import (
	"context"
	"slices"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RiskOptions configures a RiskView. Zero values take the defaults.
type RiskOptions struct {
	HistoryLimit int
	HorizonDays  int
	Confidence   float64
}

// RiskView shows the latest calculation and recent history of the selected
// portfolio and runs new calculations.
type RiskView struct {
	view
	Selection

	Latest  *domain.RiskCalculation
	History []domain.RiskCalculation

	HorizonDays int
	Confidence  float64
	Calculating bool

	historyLimit int
}

type riskLoadedMsg struct {
	owner       uint64
	portfolioID string
	latest      *domain.RiskCalculation
	history     []domain.RiskCalculation
	err         error
}

type riskCalculatedMsg struct {
	owner       uint64
	portfolioID string
	calc        *domain.RiskCalculation
	err         error
}

// NewRiskView creates an idle risk page.
func NewRiskView(ctx context.Context, backend Backend, log zerolog.Logger, opts RiskOptions) *RiskView {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = api.DefaultHistoryLimit
	}
	if !slices.Contains(config.HorizonOptions, opts.HorizonDays) {
		opts.HorizonDays = config.HorizonOptions[0]
	}
	if !slices.Contains(config.ConfidenceOptions, opts.Confidence) {
		opts.Confidence = 0.95
	}

	v := &RiskView{
		view:         newView(ctx, backend, log, "risk"),
		HorizonDays:  opts.HorizonDays,
		Confidence:   opts.Confidence,
		historyLimit: opts.HistoryLimit,
	}
	v.Selection.clear()
	v.History = []domain.RiskCalculation{}
	return v
}

// Load fetches the portfolio list; risk data follows once the selection is known.
func (v *RiskView) Load() tea.Cmd {
	v.begin()
	return loadPortfolios(v.ctx, v.backend, v.owner)
}

// Select switches to another portfolio and reloads its risk data.
func (v *RiskView) Select(id string) tea.Cmd {
	if !v.choose(id) {
		return nil
	}
	v.resetRisk()
	return v.loadRisk()
}

// SetHorizon picks one of the offered horizons. Other values are ignored.
func (v *RiskView) SetHorizon(days int) bool {
	if !slices.Contains(config.HorizonOptions, days) {
		return false
	}
	v.HorizonDays = days
	return true
}

// SetConfidence picks one of the offered confidence levels. Other values are ignored.
func (v *RiskView) SetConfidence(level float64) bool {
	if !slices.Contains(config.ConfidenceOptions, level) {
		return false
	}
	v.Confidence = level
	return true
}

// CycleHorizon advances to the next horizon option.
func (v *RiskView) CycleHorizon() {
	v.HorizonDays = cycle(config.HorizonOptions, v.HorizonDays)
}

// CycleConfidence advances to the next confidence option.
func (v *RiskView) CycleConfidence() {
	v.Confidence = cycle(config.ConfidenceOptions, v.Confidence)
}

func cycle[T comparable](options []T, current T) T {
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

// Calculate runs a calculation with the chosen horizon and confidence, then
// reloads risk data.
func (v *RiskView) Calculate() tea.Cmd {
	id := v.SelectedID()
	if id == "" {
		return nil
	}
	v.Calculating = true
	v.begin()

	ctx, backend, owner := v.ctx, v.backend, v.owner
	input := api.CalculateRiskInput{HorizonDays: v.HorizonDays, ConfidenceLevel: v.Confidence}
	return func() tea.Msg {
		calc, err := backend.CalculateRisk(ctx, id, input)
		return riskCalculatedMsg{owner: owner, portfolioID: id, calc: calc, err: err}
	}
}

func (v *RiskView) resetRisk() {
	v.Latest = nil
	v.History = []domain.RiskCalculation{}
}

func (v *RiskView) loadRisk() tea.Cmd {
	id := v.SelectedID()
	if id == "" {
		return nil
	}
	v.begin()

	ctx, backend, owner, limit := v.ctx, v.backend, v.owner, v.historyLimit
	return func() tea.Msg {
		msg := riskLoadedMsg{owner: owner, portfolioID: id}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			latest, err := backend.GetLatestRiskCalculation(gctx, id)
			msg.latest = latest
			return err
		})
		g.Go(func() error {
			history, err := backend.GetRiskHistory(gctx, id, limit)
			msg.history = history
			return err
		})
		msg.err = g.Wait()
		return msg
	}
}

// Update applies risk page messages.
func (v *RiskView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case portfoliosLoadedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.err != nil {
			if !v.Loaded {
				v.Selection.clear()
				v.resetRisk()
			}
			v.settle(fail(v.log, OpLoadPortfolios, m.err))
			return nil
		}
		if v.reconcile(m.portfolios) {
			v.resetRisk()
		}
		cmd := v.loadRisk()
		v.settle(nil)
		return cmd

	case riskLoadedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.portfolioID != v.SelectedID() {
			v.stale(OpLoadRisk, m.portfolioID, v.SelectedID())
			return nil
		}
		v.Calculating = false
		if m.err != nil {
			v.settle(fail(v.log, OpLoadRisk, m.err))
			return nil
		}
		v.Latest = m.latest
		v.History = nonNil(m.history)
		v.settle(nil)
		return nil

	case riskCalculatedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.portfolioID != v.SelectedID() {
			v.Calculating = false
			v.stale(OpCalculateRisk, m.portfolioID, v.SelectedID())
			return nil
		}
		if m.err != nil {
			v.Calculating = false
			v.settle(fail(v.log, OpCalculateRisk, m.err))
			return nil
		}
		cmd := v.loadRisk()
		v.settle(nil)
		return cmd
	}
	return nil
}
