package stubapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aristath/riskdesk/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler serves the backend routes from a Store.
type Handler struct {
	store *Store
	log   zerolog.Logger
}

// NewHandler creates a new handler over store.
func NewHandler(store *Store, log zerolog.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log.With().Str("handler", "stubapi").Logger(),
	}
}

type createPortfolioRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
}

type calculateRiskRequest struct {
	HorizonDays     int     `json:"horizon_days"`
	ConfidenceLevel float64 `json:"confidence_level"`
}

type createScenarioRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	ScenarioType domain.ScenarioType `json:"scenario_type"`
	Parameters   domain.Parameters   `json:"parameters"`
}

type createLimitRequest struct {
	LimitType      domain.LimitType `json:"limit_type"`
	ThresholdValue *float64         `json:"threshold_value"`
}

type updateLimitRequest struct {
	IsActive       *bool    `json:"is_active"`
	ThresholdValue *float64 `json:"threshold_value"`
}

type updateAlertRequest struct {
	IsRead *bool `json:"is_read"`
}

// HandleHealth handles GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleGetPortfolios handles GET /api/portfolios
func (h *Handler) HandleGetPortfolios(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Portfolios())
}

// HandleCreatePortfolio handles POST /api/portfolios
func (h *Handler) HandleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req createPortfolioRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	p := h.store.CreatePortfolio(req.Name, req.Description, strings.ToUpper(req.Currency))
	h.log.Info().Str("portfolio_id", p.ID).Str("name", p.Name).Msg("Portfolio created")
	h.writeJSON(w, http.StatusCreated, p)
}

// HandleGetPositions handles GET /api/portfolios/{portfolioID}/positions
func (h *Handler) HandleGetPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.store.Positions(pathParam(r, "portfolioID"))
	if err != nil {
		h.writeStoreError(w, err, "portfolio")
		return
	}
	h.writeJSON(w, http.StatusOK, positions)
}

// HandleGetLatestRisk handles GET /api/portfolios/{portfolioID}/risk/latest
//
// Answers null when no calculation has been run for the portfolio.
func (h *Handler) HandleGetLatestRisk(w http.ResponseWriter, r *http.Request) {
	calc, err := h.store.LatestRisk(pathParam(r, "portfolioID"))
	if err != nil {
		h.writeStoreError(w, err, "portfolio")
		return
	}
	h.writeJSON(w, http.StatusOK, calc)
}

// HandleGetRiskHistory handles GET /api/portfolios/{portfolioID}/risk
func (h *Handler) HandleGetRiskHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.intQuery(w, r, "limit")
	if !ok {
		return
	}
	history, err := h.store.RiskHistory(pathParam(r, "portfolioID"), limit)
	if err != nil {
		h.writeStoreError(w, err, "portfolio")
		return
	}
	h.writeJSON(w, http.StatusOK, history)
}

// HandleCalculateRisk handles POST /api/portfolios/{portfolioID}/risk/calculate
func (h *Handler) HandleCalculateRisk(w http.ResponseWriter, r *http.Request) {
	var req calculateRiskRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.HorizonDays <= 0 {
		h.writeError(w, http.StatusBadRequest, "horizon_days must be positive")
		return
	}
	if req.ConfidenceLevel <= 0 || req.ConfidenceLevel >= 1 {
		h.writeError(w, http.StatusBadRequest, "confidence_level must be between 0 and 1")
		return
	}

	calc, err := h.store.CalculateRisk(pathParam(r, "portfolioID"), req.HorizonDays, req.ConfidenceLevel)
	if err != nil {
		h.writeStoreError(w, err, "portfolio")
		return
	}
	h.writeJSON(w, http.StatusCreated, calc)
}

// HandleGetScenarios handles GET /api/scenarios
func (h *Handler) HandleGetScenarios(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Scenarios())
}

// HandleCreateScenario handles POST /api/scenarios
func (h *Handler) HandleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var req createScenarioRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.ScenarioType == "" {
		h.writeError(w, http.StatusBadRequest, "scenario_type is required")
		return
	}

	sc := h.store.CreateScenario(req.Name, req.Description, req.ScenarioType, req.Parameters)
	h.writeJSON(w, http.StatusCreated, sc)
}

// HandleGetScenarioResults handles GET /api/portfolios/{portfolioID}/scenario-results
func (h *Handler) HandleGetScenarioResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.ScenarioResults(pathParam(r, "portfolioID"))
	if err != nil {
		h.writeStoreError(w, err, "portfolio")
		return
	}
	h.writeJSON(w, http.StatusOK, results)
}

// HandleRunScenario handles POST /api/portfolios/{portfolioID}/scenarios/{scenarioID}/run
func (h *Handler) HandleRunScenario(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.RunScenario(pathParam(r, "portfolioID"), pathParam(r, "scenarioID"))
	if err != nil {
		h.writeStoreError(w, err, "portfolio or scenario")
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}

// HandleGetRiskLimits handles GET /api/portfolios/{portfolioID}/risk-limits
func (h *Handler) HandleGetRiskLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.store.Limits(pathParam(r, "portfolioID"))
	if err != nil {
		h.writeStoreError(w, err, "portfolio")
		return
	}
	h.writeJSON(w, http.StatusOK, limits)
}

// HandleCreateRiskLimit handles POST /api/portfolios/{portfolioID}/risk-limits
func (h *Handler) HandleCreateRiskLimit(w http.ResponseWriter, r *http.Request) {
	var req createLimitRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.LimitType == "" || req.ThresholdValue == nil {
		h.writeError(w, http.StatusBadRequest, "limit_type and threshold_value are required")
		return
	}

	l, err := h.store.CreateLimit(pathParam(r, "portfolioID"), req.LimitType, *req.ThresholdValue)
	if err != nil {
		h.writeStoreError(w, err, "portfolio")
		return
	}
	h.writeJSON(w, http.StatusCreated, l)
}

// HandleUpdateRiskLimit handles PATCH /api/risk-limits/{limitID}
func (h *Handler) HandleUpdateRiskLimit(w http.ResponseWriter, r *http.Request) {
	var req updateLimitRequest
	if !h.decode(w, r, &req) {
		return
	}

	l, err := h.store.UpdateLimit(pathParam(r, "limitID"), req.IsActive, req.ThresholdValue)
	if err != nil {
		h.writeStoreError(w, err, "risk limit")
		return
	}
	h.writeJSON(w, http.StatusOK, l)
}

// HandleGetAlerts handles GET /api/portfolios/{portfolioID}/alerts
func (h *Handler) HandleGetAlerts(w http.ResponseWriter, r *http.Request) {
	unread := false
	if raw := r.URL.Query().Get("unread"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "unread must be a boolean")
			return
		}
		unread = parsed
	}
	limit, ok := h.intQuery(w, r, "limit")
	if !ok {
		return
	}

	alerts, err := h.store.Alerts(pathParam(r, "portfolioID"), unread, limit)
	if err != nil {
		h.writeStoreError(w, err, "portfolio")
		return
	}
	h.writeJSON(w, http.StatusOK, alerts)
}

// HandleUpdateAlert handles PATCH /api/alerts/{alertID}
func (h *Handler) HandleUpdateAlert(w http.ResponseWriter, r *http.Request) {
	var req updateAlertRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.IsRead == nil {
		h.writeError(w, http.StatusBadRequest, "is_read is required")
		return
	}

	a, err := h.store.MarkAlertRead(pathParam(r, "alertID"), *req.IsRead)
	if err != nil {
		h.writeStoreError(w, err, "alert")
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

// pathParam returns the decoded value of a route parameter. chi matches on
// the escaped path when one is present, so ids containing reserved
// characters arrive percent-encoded.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (h *Handler) intQuery(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		h.writeError(w, http.StatusBadRequest, key+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, ErrNotFound) {
		h.writeError(w, http.StatusNotFound, what+" not found")
		return
	}
	h.log.Error().Err(err).Msg("Store operation failed")
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
