package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitoringView_Load(t *testing.T) {
	_, client := newBackend(t, true)

	v := NewMonitoringView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	require.Equal(t, StatusReady, v.Status)
	assert.Len(t, v.Limits, 2)
	assert.Len(t, v.Alerts, 2)
	assert.Equal(t, 2, v.ActiveLimitCount())
	assert.Len(t, v.UnreadAlerts(), 2)
	assert.Empty(t, v.ReadAlerts())
}

func TestMonitoringView_CreateLimitReconciles(t *testing.T) {
	_, client := newBackend(t, true)

	v := NewMonitoringView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	Drive(v, v.CreateLimit(domain.LimitMaxDrawdown, 25))

	require.Equal(t, StatusReady, v.Status)
	require.Len(t, v.Limits, 3)
	created := v.Limits[2]
	assert.Equal(t, domain.LimitMaxDrawdown, created.LimitType)
	assert.Equal(t, 25.0, created.ThresholdValue)
	assert.True(t, created.IsActive)
	assert.Equal(t, 3, v.ActiveLimitCount())
}

func TestMonitoringView_ToggleAndThreshold(t *testing.T) {
	_, client := newBackend(t, true)

	v := NewMonitoringView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())
	id := v.Limits[0].ID

	Drive(v, v.ToggleLimit(id))
	l, ok := v.Limit(id)
	require.True(t, ok)
	assert.False(t, l.IsActive)
	assert.Equal(t, 1, v.ActiveLimitCount())

	Drive(v, v.ToggleLimit(id))
	l, _ = v.Limit(id)
	assert.True(t, l.IsActive)

	Drive(v, v.SetThreshold(id, 2500))
	l, _ = v.Limit(id)
	assert.Equal(t, 2500.0, l.ThresholdValue)
	assert.True(t, l.IsActive)

	assert.Nil(t, v.ToggleLimit("missing"))
	assert.Nil(t, v.SetThreshold("missing", 1))
}

func TestMonitoringView_MarkAlertReadReconciles(t *testing.T) {
	_, client := newBackend(t, true)

	v := NewMonitoringView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())
	id := v.Alerts[0].ID

	Drive(v, v.MarkAlertRead(id))

	require.Equal(t, StatusReady, v.Status)
	require.Len(t, v.Alerts, 2)
	for _, a := range v.Alerts {
		if a.ID == id {
			assert.True(t, a.IsRead)
		}
	}
	assert.Len(t, v.UnreadAlerts(), 1)
	require.Len(t, v.ReadAlerts(), 1)
	assert.Equal(t, id, v.ReadAlerts()[0].ID)
}

func TestMonitoringView_SelectionChangeClears(t *testing.T) {
	srv, client := newBackend(t, true)
	balanced := srv.Store().Portfolios()[1]

	v := NewMonitoringView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())
	require.NotEmpty(t, v.Limits)
	require.NotEmpty(t, v.Alerts)

	cmd := v.Select(balanced.ID)
	assert.Empty(t, v.Limits)
	assert.Empty(t, v.Alerts)

	Drive(v, cmd)
	require.Equal(t, StatusReady, v.Status)
	assert.NotNil(t, v.Limits)
	assert.Empty(t, v.Limits)
	assert.NotNil(t, v.Alerts)
	assert.Empty(t, v.Alerts)
}

func TestMonitoringView_LimitsFailureKeepsAlerts(t *testing.T) {
	srv, client := newBackend(t, true)
	failing(srv, http.MethodGet, "/api/portfolios/*/risk-limits")

	v := NewMonitoringView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	assert.Equal(t, StatusError, v.Status)
	assert.Equal(t, "Failed to load risk limits from backend API.", v.ErrorMessage())
	assert.Empty(t, v.Limits)
	assert.Len(t, v.Alerts, 2)
	assert.Len(t, v.Portfolios, 2)
}

func TestMonitoringView_MutationFailures(t *testing.T) {
	srv, client := newBackend(t, true)

	v := NewMonitoringView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())
	limitID := v.Limits[0].ID
	alertID := v.Alerts[0].ID

	failing(srv, http.MethodPost, "/api/portfolios/*/risk-limits")
	Drive(v, v.CreateLimit(domain.LimitMaxVaR, 1))
	assert.Equal(t, "Failed to create risk limit via backend API.", v.ErrorMessage())
	assert.Len(t, v.Limits, 2)

	failing(srv, http.MethodPatch, "/api/risk-limits/*")
	Drive(v, v.ToggleLimit(limitID))
	assert.Equal(t, "Failed to update risk limit via backend API.", v.ErrorMessage())
	l, _ := v.Limit(limitID)
	assert.True(t, l.IsActive)

	failing(srv, http.MethodPatch, "/api/alerts/*")
	Drive(v, v.MarkAlertRead(alertID))
	assert.Equal(t, "Failed to mark alert as read via backend API.", v.ErrorMessage())
	assert.Len(t, v.UnreadAlerts(), 2)
}

func TestMonitoringView_NoSelectionNoOps(t *testing.T) {
	_, client := newBackend(t, false)

	v := NewMonitoringView(context.Background(), client, zerolog.Nop())
	Drive(v, v.Load())

	assert.Equal(t, StatusReady, v.Status)
	assert.Nil(t, v.CreateLimit(domain.LimitMaxVaR, 1))
	assert.Nil(t, v.MarkAlertRead("a1"))
	assert.Nil(t, v.ToggleLimit("l1"))
	assert.Equal(t, StatusReady, v.Status)
}
