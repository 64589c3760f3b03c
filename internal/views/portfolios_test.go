package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioView_LoadSelectsFirst(t *testing.T) {
	srv, client := newBackend(t, true)
	portfolios := srv.Store().Portfolios()

	v := NewPortfolioView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	require.Equal(t, StatusReady, v.Status)
	assert.Len(t, v.Portfolios, 2)
	assert.Equal(t, portfolios[0].ID, v.SelectedID())
	assert.Len(t, v.Positions, 4)
}

func TestPortfolioView_SelectionChangeClearsPositions(t *testing.T) {
	srv, client := newBackend(t, true)
	portfolios := srv.Store().Portfolios()

	v := NewPortfolioView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())
	require.Len(t, v.Positions, 4)

	cmd := v.Select(portfolios[1].ID)
	require.NotNil(t, cmd)
	assert.Empty(t, v.Positions, "positions of the previous portfolio are dropped before the fetch")
	assert.Equal(t, StatusLoading, v.Status)

	Drive(v, cmd)
	require.Equal(t, StatusReady, v.Status)
	require.Len(t, v.Positions, 3)
	for _, p := range v.Positions {
		assert.Equal(t, portfolios[1].ID, p.PortfolioID)
	}
}

func TestPortfolioView_SelectNoOps(t *testing.T) {
	_, client := newBackend(t, true)

	v := NewPortfolioView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	assert.Nil(t, v.Select(v.SelectedID()))
	assert.Nil(t, v.Select("missing"))
	assert.Len(t, v.Positions, 4)
}

func TestPortfolioView_StaleResponseDiscarded(t *testing.T) {
	srv, client := newBackend(t, true)
	portfolios := srv.Store().Portfolios()
	a, b := portfolios[0].ID, portfolios[1].ID

	v := NewPortfolioView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	toB := v.Select(b)
	backToA := v.Select(a)

	// The reply for B arrives after A was selected again.
	assert.Nil(t, v.Update(toB()))
	assert.Empty(t, v.Positions)
	assert.Equal(t, StatusLoading, v.Status)

	Drive(v, backToA)
	assert.Equal(t, StatusReady, v.Status)
	require.Len(t, v.Positions, 4)
	for _, p := range v.Positions {
		assert.Equal(t, a, p.PortfolioID)
	}
}

func TestPortfolioView_EmptyBackend(t *testing.T) {
	_, client := newBackend(t, false)

	v := NewPortfolioView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	assert.Equal(t, StatusReady, v.Status)
	assert.False(t, v.HasSelection())
	assert.NotNil(t, v.Portfolios)
	assert.NotNil(t, v.Positions)
	assert.Empty(t, v.Positions)
}

func TestPortfolioView_EmptyPositionsNormalized(t *testing.T) {
	srv, client := newBackend(t, false)
	srv.Store().CreatePortfolio("Cash only", "", "USD")

	v := NewPortfolioView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	require.Equal(t, StatusReady, v.Status)
	assert.NotNil(t, v.Positions)
	assert.Empty(t, v.Positions)
}

func TestPortfolioView_CreateReconciles(t *testing.T) {
	srv, client := newBackend(t, true)
	first := srv.Store().Portfolios()[0]

	v := NewPortfolioView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	Drive(v, v.CreatePortfolio(api.CreatePortfolioInput{Name: "Income", Description: "Dividend payers", Currency: "GBP"}))

	require.Equal(t, StatusReady, v.Status)
	require.NotNil(t, v.Created)
	assert.Equal(t, "Income", v.Created.Name)
	assert.Len(t, v.Portfolios, 3)
	_, found := v.Find(v.Created.ID)
	assert.True(t, found)
	assert.Equal(t, first.ID, v.SelectedID(), "selection is kept across the reload")
}

func TestPortfolioView_CreateFailureLeavesState(t *testing.T) {
	srv, client := newBackend(t, true)

	v := NewPortfolioView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())
	failing(srv, http.MethodPost, "/api/portfolios")

	Drive(v, v.CreatePortfolio(api.CreatePortfolioInput{Name: "Income", Currency: "GBP"}))

	assert.Equal(t, StatusError, v.Status)
	assert.Equal(t, "Failed to create portfolio via backend API.", v.ErrorMessage())
	assert.Len(t, v.Portfolios, 2)
	assert.Len(t, v.Positions, 4)
	assert.Nil(t, v.Created)
}

func TestPortfolioView_InitialLoadFailure(t *testing.T) {
	srv, client := newBackend(t, true)
	failing(srv, http.MethodGet, "/api/portfolios")

	v := NewPortfolioView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	assert.Equal(t, StatusError, v.Status)
	assert.Equal(t, "Failed to load portfolios from backend API.", v.ErrorMessage())
	assert.False(t, v.HasSelection())
	assert.Equal(t, []domain.Position{}, v.Positions)

	srv.ClearFaults()
	Drive(v, v.Load())
	assert.Equal(t, StatusReady, v.Status)
	assert.True(t, v.HasSelection())
}

func TestPortfolioView_PositionsFailureKeepsList(t *testing.T) {
	srv, client := newBackend(t, true)
	portfolios := srv.Store().Portfolios()

	v := NewPortfolioView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())
	failing(srv, http.MethodGet, "/api/portfolios/*/positions")

	Drive(v, v.Select(portfolios[1].ID))

	assert.Equal(t, StatusError, v.Status)
	assert.Equal(t, "Failed to load positions from backend API.", v.ErrorMessage())
	assert.Len(t, v.Portfolios, 2)
	assert.Equal(t, portfolios[1].ID, v.SelectedID())
	assert.Empty(t, v.Positions)
}
