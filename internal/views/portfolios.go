package views

import (
	"context"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// PortfolioView lists portfolios and the positions of the selected one.
type PortfolioView struct {
	view
	Selection

	Positions []domain.Position
	// Created is the portfolio returned by the last successful create.
	Created *domain.Portfolio
}

type portfoliosLoadedMsg struct {
	owner      uint64
	portfolios []domain.Portfolio
	err        error
}

type positionsLoadedMsg struct {
	owner       uint64
	portfolioID string
	positions   []domain.Position
	err         error
}

type portfolioCreatedMsg struct {
	owner     uint64
	portfolio *domain.Portfolio
	err       error
}

// NewPortfolioView creates an idle portfolio page.
func NewPortfolioView(ctx context.Context, backend Backend, log zerolog.Logger) *PortfolioView {
	v := &PortfolioView{view: newView(ctx, backend, log, "portfolios")}
	v.Selection.clear()
	v.Positions = []domain.Position{}
	return v
}

// Load fetches the portfolio list; positions follow once the selection is known.
func (v *PortfolioView) Load() tea.Cmd {
	v.begin()
	return loadPortfolios(v.ctx, v.backend, v.owner)
}

// Select switches to another portfolio and reloads its positions.
func (v *PortfolioView) Select(id string) tea.Cmd {
	if !v.choose(id) {
		return nil
	}
	v.Positions = []domain.Position{}
	return v.loadPositions()
}

// CreatePortfolio creates a portfolio and reloads the list.
func (v *PortfolioView) CreatePortfolio(input api.CreatePortfolioInput) tea.Cmd {
	v.begin()
	ctx, backend, owner := v.ctx, v.backend, v.owner
	return func() tea.Msg {
		p, err := backend.CreatePortfolio(ctx, input)
		return portfolioCreatedMsg{owner: owner, portfolio: p, err: err}
	}
}

func (v *PortfolioView) loadPositions() tea.Cmd {
	id := v.SelectedID()
	if id == "" {
		return nil
	}
	v.begin()
	ctx, backend, owner := v.ctx, v.backend, v.owner
	return func() tea.Msg {
		positions, err := backend.GetPortfolioPositions(ctx, id)
		return positionsLoadedMsg{owner: owner, portfolioID: id, positions: positions, err: err}
	}
}

// Update applies portfolio page messages.
func (v *PortfolioView) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case portfoliosLoadedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.err != nil {
			if !v.Loaded {
				v.Selection.clear()
				v.Positions = []domain.Position{}
			}
			v.settle(fail(v.log, OpLoadPortfolios, m.err))
			return nil
		}
		if v.reconcile(m.portfolios) {
			v.Positions = []domain.Position{}
		}
		cmd := v.loadPositions()
		v.settle(nil)
		return cmd

	case positionsLoadedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.portfolioID != v.SelectedID() {
			v.stale(OpLoadPositions, m.portfolioID, v.SelectedID())
			return nil
		}
		if m.err != nil {
			v.settle(fail(v.log, OpLoadPositions, m.err))
			return nil
		}
		v.Positions = nonNil(m.positions)
		v.settle(nil)
		return nil

	case portfolioCreatedMsg:
		if !v.mine(m.owner) {
			return nil
		}
		if m.err != nil {
			v.settle(fail(v.log, OpCreatePortfolio, m.err))
			return nil
		}
		v.Created = m.portfolio
		cmd := v.Load()
		v.settle(nil)
		return cmd
	}
	return nil
}

// loadPortfolios is shared by every page that keeps a Selection.
func loadPortfolios(ctx context.Context, backend Backend, owner uint64) tea.Cmd {
	return func() tea.Msg {
		portfolios, err := backend.GetPortfolios(ctx)
		return portfoliosLoadedMsg{owner: owner, portfolios: portfolios, err: err}
	}
}
