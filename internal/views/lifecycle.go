// Package views holds the state of each riskdesk page.
//
// A view is a plain struct mutated only by its Update method. Operations
// return a tea.Cmd that performs the backend call off the UI loop; the
// resulting message is fed back through Update, which may return follow-up
// commands. The bubbletea program drives views interactively and Drive runs
// them to completion for headless callers.
package views

import (
	"errors"
	"sync/atomic"

	"github.com/aristath/riskdesk/internal/api"
	"github.com/rs/zerolog"
)

// Status is the lifecycle state of a view.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Op names a user-facing operation. Failures are reported per operation.
type Op string

const (
	OpLoadDashboard       Op = "load_dashboard"
	OpLoadPortfolios      Op = "load_portfolios"
	OpLoadPositions       Op = "load_positions"
	OpCreatePortfolio     Op = "create_portfolio"
	OpLoadRisk            Op = "load_risk"
	OpCalculateRisk       Op = "calculate_risk"
	OpLoadScenarios       Op = "load_scenarios"
	OpLoadScenarioResults Op = "load_scenario_results"
	OpRunScenario         Op = "run_scenario"
	OpCreateScenario      Op = "create_scenario"
	OpLoadLimits          Op = "load_limits"
	OpLoadAlerts          Op = "load_alerts"
	OpCreateLimit         Op = "create_limit"
	OpUpdateLimit         Op = "update_limit"
	OpMarkAlertRead       Op = "mark_alert_read"
)

var opMessages = map[Op]string{
	OpLoadDashboard:       "Failed to load dashboard data from backend API.",
	OpLoadPortfolios:      "Failed to load portfolios from backend API.",
	OpLoadPositions:       "Failed to load positions from backend API.",
	OpCreatePortfolio:     "Failed to create portfolio via backend API.",
	OpLoadRisk:            "Failed to load risk data from backend API.",
	OpCalculateRisk:       "Risk calculation failed via backend API.",
	OpLoadScenarios:       "Failed to load scenarios data from backend API.",
	OpLoadScenarioResults: "Failed to load scenario results from backend API.",
	OpRunScenario:         "Failed to run scenario via backend API.",
	OpCreateScenario:      "Failed to create scenario via backend API.",
	OpLoadLimits:          "Failed to load risk limits from backend API.",
	OpLoadAlerts:          "Failed to load alerts from backend API.",
	OpCreateLimit:         "Failed to create risk limit via backend API.",
	OpUpdateLimit:         "Failed to update risk limit via backend API.",
	OpMarkAlertRead:       "Failed to mark alert as read via backend API.",
}

// OpError is an operation failure. Message is safe to show to users; the
// wrapped error keeps the transport detail for logs and errors.As.
type OpError struct {
	Op  Op
	Err error
}

// Message returns the static, user-facing text for the failed operation.
func (e *OpError) Message() string {
	if msg, ok := opMessages[e.Op]; ok {
		return msg
	}
	return "Request to backend API failed."
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return e.Message() + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Lifecycle tracks idle → loading → ready/error for a view.
//
// Several requests may be in flight at once; the view is ready only when all
// of them have settled without error.
type Lifecycle struct {
	Status Status
	Err    *OpError
	// Loaded is set once any load has completed successfully.
	Loaded bool

	pending int
}

// Loading reports whether requests are outstanding.
func (l *Lifecycle) Loading() bool {
	return l.Status == StatusLoading
}

// ErrorMessage returns the user-facing error text, or "" when healthy.
func (l *Lifecycle) ErrorMessage() string {
	if l.Err == nil {
		return ""
	}
	return l.Err.Message()
}

func (l *Lifecycle) begin() {
	l.pending++
	l.Status = StatusLoading
	l.Err = nil
}

func (l *Lifecycle) settle(err *OpError) {
	if l.pending > 0 {
		l.pending--
	}
	if err != nil {
		l.Status = StatusError
		l.Err = err
		return
	}
	if l.Err != nil {
		return
	}
	l.Loaded = true
	if l.pending == 0 {
		l.Status = StatusReady
	}
}

// discard settles a request whose response no longer applies.
func (l *Lifecycle) discard() {
	if l.pending > 0 {
		l.pending--
	}
	if l.pending == 0 && l.Status == StatusLoading {
		l.Status = StatusReady
	}
}

var owners atomic.Uint64

// nextOwner returns a token identifying one view instance. Messages carry
// it so a remounted page ignores replies addressed to its predecessor.
func nextOwner() uint64 {
	return owners.Add(1)
}

// fail wraps err for op and logs the transport detail.
func fail(log zerolog.Logger, op Op, err error) *OpError {
	event := log.Error().Err(err).Str("op", string(op))
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		event = event.
			Int("status", apiErr.Status).
			Str("url", apiErr.URL).
			Str("body", apiErr.BodyText)
	}
	event.Msg(opMessages[op])
	return &OpError{Op: op, Err: err}
}
