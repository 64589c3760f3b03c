package views

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/aristath/riskdesk/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// phantomBackend lists a portfolio the backend does not know about first.
type phantomBackend struct {
	*api.Client
}

func (b phantomBackend) GetPortfolios(ctx context.Context) ([]domain.Portfolio, error) {
	portfolios, err := b.Client.GetPortfolios(ctx)
	if err != nil {
		return nil, err
	}
	phantom := domain.Portfolio{ID: "does-not-exist", Name: "Deleted elsewhere", Currency: "USD"}
	return append([]domain.Portfolio{phantom}, portfolios...), nil
}

func TestRiskView_Load(t *testing.T) {
	srv, client := newBackend(t, true)
	global := srv.Store().Portfolios()[0]

	v := NewRiskView(context.Background(), client, zerolog.Nop(), RiskOptions{})
	Drive(v, v.Load())

	require.Equal(t, StatusReady, v.Status)
	assert.Equal(t, global.ID, v.SelectedID())
	require.NotNil(t, v.Latest)
	assert.Len(t, v.History, 1)
	assert.Equal(t, 1, v.HorizonDays)
	assert.Equal(t, 0.95, v.Confidence)
}

func TestRiskView_NoCalculationYet(t *testing.T) {
	srv, client := newBackend(t, true)
	balanced := srv.Store().Portfolios()[1]

	v := NewRiskView(context.Background(), client, zerolog.Nop(), RiskOptions{})
	Drive(v, v.Load())
	Drive(v, v.Select(balanced.ID))

	assert.Equal(t, StatusReady, v.Status, "a null latest calculation is not an error")
	assert.Nil(t, v.Latest)
	assert.NotNil(t, v.History)
	assert.Empty(t, v.History)
}

func TestRiskView_NotFoundKeepsListSelectable(t *testing.T) {
	srv, client := newBackend(t, true)
	global := srv.Store().Portfolios()[0]

	v := NewRiskView(context.Background(), phantomBackend{client}, zerolog.Nop(), RiskOptions{})
	Drive(v, v.Load())

	require.Equal(t, StatusError, v.Status)
	assert.Equal(t, "Failed to load risk data from backend API.", v.ErrorMessage())
	assert.True(t, api.IsNotFound(v.Err))
	assert.Len(t, v.Portfolios, 3)
	assert.Equal(t, "does-not-exist", v.SelectedID())
	assert.Nil(t, v.Latest)

	Drive(v, v.Select(global.ID))
	assert.Equal(t, StatusReady, v.Status)
	assert.Empty(t, v.ErrorMessage())
	require.NotNil(t, v.Latest)
	assert.Equal(t, global.ID, v.Latest.PortfolioID)
}

func TestRiskView_Calculate(t *testing.T) {
	_, client := newBackend(t, true)

	v := NewRiskView(context.Background(), client, zerolog.Nop(), RiskOptions{HistoryLimit: 10})
	Drive(v, v.Load())

	require.True(t, v.SetHorizon(10))
	require.True(t, v.SetConfidence(0.99))
	assert.False(t, v.SetHorizon(7))
	assert.False(t, v.SetConfidence(0.5))

	cmd := v.Calculate()
	require.NotNil(t, cmd)
	assert.True(t, v.Calculating)

	Drive(v, cmd)
	assert.False(t, v.Calculating)
	require.Equal(t, StatusReady, v.Status)
	require.NotNil(t, v.Latest)
	assert.Equal(t, 10, v.Latest.HorizonDays)
	assert.Equal(t, 0.99, v.Latest.ConfidenceLevel)
	assert.Len(t, v.History, 2)
	assert.Equal(t, v.Latest.ID, v.History[0].ID)
}

func TestRiskView_CalculateFailure(t *testing.T) {
	srv, client := newBackend(t, true)

	v := NewRiskView(context.Background(), client, zerolog.Nop(), RiskOptions{})
	Drive(v, v.Load())
	before := v.Latest
	srv.FailRoute(http.MethodPost, "/api/portfolios/*/risk/calculate", http.StatusUnprocessableEntity)

	Drive(v, v.Calculate())

	assert.False(t, v.Calculating)
	assert.Equal(t, StatusError, v.Status)
	assert.Equal(t, "Risk calculation failed via backend API.", v.ErrorMessage())
	assert.Equal(t, before, v.Latest)
	assert.Equal(t, http.StatusUnprocessableEntity, api.StatusCode(v.Err))

	var opErr *OpError
	require.True(t, errors.As(v.Err, &opErr))
	assert.Equal(t, OpCalculateRisk, opErr.Op)
}

func TestRiskView_CalculateWithoutSelection(t *testing.T) {
	_, client := newBackend(t, false)

	v := NewRiskView(context.Background(), client, zerolog.Nop(), RiskOptions{})
	Drive(v, v.Load())

	assert.Nil(t, v.Calculate())
	assert.False(t, v.Calculating)
	assert.Equal(t, StatusReady, v.Status)
}

func TestRiskView_Options(t *testing.T) {
	_, client := newBackend(t, false)

	v := NewRiskView(context.Background(), client, zerolog.Nop(), RiskOptions{HorizonDays: 30, Confidence: 0.90})
	assert.Equal(t, 30, v.HorizonDays)
	assert.Equal(t, 0.90, v.Confidence)

	v.CycleHorizon()
	assert.Equal(t, 90, v.HorizonDays)
	v.CycleHorizon()
	assert.Equal(t, 1, v.HorizonDays)

	v.CycleConfidence()
	assert.Equal(t, 0.95, v.Confidence)

	fallback := NewRiskView(context.Background(), client, zerolog.Nop(), RiskOptions{HorizonDays: 7, Confidence: 0.5})
	assert.Equal(t, 1, fallback.HorizonDays)
	assert.Equal(t, 0.95, fallback.Confidence)
}

func TestRiskView_SelectionChangeClearsRisk(t *testing.T) {
	srv, client := newBackend(t, true)
	balanced := srv.Store().Portfolios()[1]

	v := NewRiskView(context.Background(), client, zerolog.Nop(), RiskOptions{})
	Drive(v, v.Load())
	require.NotNil(t, v.Latest)

	cmd := v.Select(balanced.ID)
	assert.Nil(t, v.Latest)
	assert.Empty(t, v.History)
	Drive(v, cmd)
	assert.Nil(t, v.Latest)
}
